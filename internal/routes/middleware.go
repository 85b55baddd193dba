package routes

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-todo-portal/internal/claims"
)

// コンテキストおよびヘッダーのキー。
const (
	RequestIDHeader = "X-Request-ID"
	ClaimsKey       = "claims"
)

// RequestID は各リクエストに一意のIDを割り当て、レスポンスヘッダーと
// コンテキストに設定するミドルウェアです。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// BearerClaims はAuthorizationヘッダーにトークンが付いていればクレームを
// デコードしてコンテキストに設定するミドルウェアです。
//
// 認可は行いません。トークンが無い・壊れている場合でもリクエストは
// 素通りします（リソース操作はセッション状態に依存しない仕様のため）。
func BearerClaims() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			token = "" // "Bearer " プレフィックスなしは未提示として扱う
		}

		cs, err := claims.Parse(token)
		if err != nil {
			log.Printf("malformed credential on request %v: %v", c.GetString("request_id"), err)
			cs = claims.ClaimSet{}
		}
		c.Set(ClaimsKey, cs)
		c.Next()
	}
}
