package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Ryavnn/Restaurant-Management-System/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxIdentityKey = "identity" // usecase.Identity
)

// bearerAuth用のJWT検証ミドルウェア。トークンの発行は外部の認証サービス。
func AuthJWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Missing authorization token"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid authorization header"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid authorization header"))
			}

			//JWTをパースして検証する（exp含む）
			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || token == nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid or expired token"))
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid or expired token"))
			}

			//subは必須（メールアドレス）
			sub, _ := claims["sub"].(string)
			if strings.TrimSpace(sub) == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid or expired token"))
			}

			//roleは任意（判定はAuthorizationGateがDBで行う）
			role, _ := claims["role"].(string)

			c.Set(CtxIdentityKey, usecase.Identity{Subject: sub, Role: role})
			return next(c)
		}
	}
}

// AuthJWTが入れたIdentityを取り出す
func IdentityFromContext(c echo.Context) (usecase.Identity, bool) {
	who, ok := c.Get(CtxIdentityKey).(usecase.Identity)
	if !ok || who.Subject == "" {
		return usecase.Identity{}, false
	}
	return who, true
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Success: false, Message: msg}
}
