package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Getinger96/KannMind-Backend/pkg/helpers"
	"github.com/Getinger96/KannMind-Backend/pkg/response"
)

// CtxUserIDKey is the context key under which the authenticated
// principal's id is stored.
const CtxUserIDKey = "userID"

// Auth validates the access token and ensures an active session exists
// in Redis with a matching session id. It sets userID, userName and
// userEmail in the Gin context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.AbortError[any](c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError[any](c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		key := "user:session:" + claims.UserID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			response.AbortError[any](c, http.StatusUnauthorized, "session not found", nil)
			return
		}

		c.Set(CtxUserIDKey, data["user_id"])
		c.Set("userName", data["fullname"])
		c.Set("userEmail", data["email"])
		c.Next()
	}
}
