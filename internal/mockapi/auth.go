package mockapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"bookstore/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	ctxEmailKey = "user_email"
	ctxRoleKey  = "user_role"
)

const accessTokenTTL = 24 * time.Hour

// IssueTokenは本物のバックエンドと同じclaim構成で署名する。
// sub=メール、authorities=[ロール]。
func IssueToken(secret []byte, user model.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":         user.Email,
		"authorities": []string{string(user.Role)},
		"iat":         now.Unix(),
		"exp":         now.Add(accessTokenTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(secret)
}

// bearer検証ミドルウェア
func authJWT(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//JWTをパースして検証する
			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return secret, nil
			})
			if err != nil || token == nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			email, _ := claims["sub"].(string)
			if email == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			role := parseRole(claims["authorities"])
			if role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(ctxEmailKey, email)
			c.Set(ctxRoleKey, role)

			return next(c)
		}
	}
}

// ロールチェック
func requireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ctxRoleKey).(string)
			for _, r := range roles {
				if role == string(r) {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
		}
	}
}

func currentEmail(c echo.Context) string {
	email, _ := c.Get(ctxEmailKey).(string)
	return email
}

func parseRole(v interface{}) string {
	auths, ok := v.([]interface{})
	if !ok || len(auths) == 0 {
		return ""
	}
	role, _ := auths[0].(string)
	return role
}
