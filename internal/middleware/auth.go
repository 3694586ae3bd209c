package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/sbasnet/pscprep/internal/dto"
)

// UserIDKey is the gin context key carrying the authenticated user id.
const UserIDKey = "userID"

type claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Auth extracts the user id from a Bearer token. Token issuance lives in the
// external auth service; this service only verifies and reads.
func Auth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing bearer token"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		var c claims
		token, err := jwt.ParseWithClaims(tokenStr, &c, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || c.UserID == 0 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid token"})
			return
		}

		ctx.Set(UserIDKey, c.UserID)
		ctx.Next()
	}
}

// CurrentUserID reads the authenticated user id set by Auth.
func CurrentUserID(ctx *gin.Context) uint {
	return ctx.GetUint(UserIDKey)
}
