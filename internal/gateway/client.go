package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookstore/internal/session"

	"github.com/sirupsen/logrus"
)

// 認証必須の操作でトークンが無い（リクエストは送らない）
var ErrNoSession = errors.New("no session")

type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewAPIError(status int, message string) error {
	return &APIError{
		Status:  status,
		Message: message,
	}
}

func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	ok := errors.As(err, &ae)
	return ae, ok
}

// Clientはバックエンド1操作＝1リクエストのゲートウェイ。
// リトライしない。失敗はそのまま呼び出し側に返す。
type Client struct {
	baseURL string
	http    *http.Client
	store   *session.Store
	log     *logrus.Logger
}

// DI
func New(baseURL string, timeout time.Duration, store *session.Store, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
		log:     log,
	}
}

const (
	authNone   = false
	authBearer = true
)

// 一部のエンドポイントは{success,message,error,data}で包んでくる。
// ゲートウェイの外にはこの形を出さない。
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// doJSONは1リクエストを組み立てて送る。
// bearerはディスパッチ直前にストアから読む（先読みキャッシュしない）。
func (c *Client) doJSON(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	auth bool,
	in any,
	out any,
) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if auth {
		token, ok := c.store.Token()
		if !ok {
			return ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.WithFields(logrus.Fields{"method": method, "path": path}).Debug("gateway dispatch")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewAPIError(resp.StatusCode, errorMessage(raw))
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doEnvelopeはenvelope形式のエンドポイント用。
// 成功判定はHTTPステータスとsuccessフラグで行う（メッセージ文字列は見ない）。
func (c *Client) doEnvelope(
	ctx context.Context,
	method string,
	path string,
	auth bool,
	in any,
	out any,
) error {
	var env envelope
	if err := c.doJSON(ctx, method, path, nil, auth, in, &env); err != nil {
		return err
	}

	if env.Success != nil && !*env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = "operation failed"
		}
		return NewAPIError(http.StatusUnprocessableEntity, msg)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// エラーボディから人間向けメッセージを拾う
func errorMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}

	s := strings.TrimSpace(string(raw))
	if s == "" {
		return "request failed"
	}
	return s
}
