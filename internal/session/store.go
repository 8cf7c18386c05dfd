package session

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Storeはbearerトークンを1つだけ永続化するスロット。
// ログアウトか期限切れまでアプリ全体で共有される。
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Tokenは毎回ファイルから読む。呼び出し時点の値を返す。
func (s *Store) Token() (string, bool) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return "", false
	}
	return tok, true
}

func (s *Store) SetToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clearはログアウト。スロットを消す。
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Subjectはトークンのsub（メールアドレス）。
// 署名検証はしない。信頼境界はバックエンド側。
func (s *Store) Subject() string {
	claims, ok := s.decode()
	if !ok {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

// Roleはauthoritiesの先頭（ROLE_BUYERなど）。
func (s *Store) Role() string {
	claims, ok := s.decode()
	if !ok {
		return ""
	}

	auths, ok := claims["authorities"].([]interface{})
	if !ok || len(auths) == 0 {
		return ""
	}
	role, _ := auths[0].(string)
	return role
}

// ペイロード部だけデコードする。壊れたトークンはfalse。
func (s *Store) decode() (jwt.MapClaims, bool) {
	tok, ok := s.Token()
	if !ok {
		return nil, false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok, claims); err != nil {
		return nil, false
	}
	return claims, true
}
