package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID uint, expiry time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func authTestRouter() (*gin.Engine, *uint) {
	gin.SetMode(gin.TestMode)
	var seenUserID uint
	r := gin.New()
	r.GET("/protected", Auth(testSecret), func(ctx *gin.Context) {
		seenUserID = CurrentUserID(ctx)
		ctx.Status(http.StatusOK)
	})
	return r, &seenUserID
}

func TestAuthAcceptsValidToken(t *testing.T) {
	router, seenUserID := authTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, 42, time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if *seenUserID != 42 {
		t.Errorf("user id = %d, want 42", *seenUserID)
	}
}

func TestAuthRejections(t *testing.T) {
	router, _ := authTestRouter()

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "wrong secret", header: "Bearer " + signToken(t, "other-secret", 42, time.Now().Add(time.Hour))},
		{name: "expired", header: "Bearer " + signToken(t, testSecret, 42, time.Now().Add(-time.Hour))},
		{name: "zero user id", header: "Bearer " + signToken(t, testSecret, 0, time.Now().Add(time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}
