package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prepos_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret, "prepos-idp"), func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.String(http.StatusOK, claims.UID()+"|"+claims.Name)
	})
	return r
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	token, err := util.GenerateJWT("uid-1", "Asha", "asha@example.com", "", testSecret, "prepos-idp", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "uid-1|Asha", w.Body.String())
}

func TestAuthMiddlewareRejects(t *testing.T) {
	wrongSecret, _ := util.GenerateJWT("uid-1", "", "", "", "another-secret-that-is-long-enough-xx", "prepos-idp", time.Hour)
	expired, _ := util.GenerateJWT("uid-1", "", "", "", testSecret, "prepos-idp", -time.Minute)
	wrongIssuer, _ := util.GenerateJWT("uid-1", "", "", "", testSecret, "someone-else", time.Hour)
	noSubject, _ := util.GenerateJWT("", "", "", "", testSecret, "prepos-idp", time.Hour)

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Token abc",
		"wrong secret":   "Bearer " + wrongSecret,
		"expired":        "Bearer " + expired,
		"wrong issuer":   "Bearer " + wrongIssuer,
		"no subject":     "Bearer " + noSubject,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			newRouter().ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
