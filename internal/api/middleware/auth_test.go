package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awesome-index/internal/pkg/config"
	"awesome-index/internal/pkg/jwt"
	"awesome-index/pkg/responses"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()

	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{
			JWT: config.JWTConfig{Secret: "test-secret", AccessTokenExpire: 3600},
		},
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		responses.Success(c, gin.H{"username": c.GetString("username")})
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, authHeader string) responses.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp responses.Response
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r := newAuthRouter(t)
	resp := doRequest(t, r, "")
	assert.Equal(t, responses.CodeUnauthorized, resp.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	r := newAuthRouter(t)
	resp := doRequest(t, r, "Token abc")
	assert.Equal(t, responses.CodeUnauthorized, resp.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := newAuthRouter(t)
	resp := doRequest(t, r, "Bearer not-a-token")
	assert.Equal(t, responses.CodeUnauthorized, resp.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	r := newAuthRouter(t)

	token, err := jwt.GenerateAccessToken("admin")
	require.NoError(t, err)

	resp := doRequest(t, r, "Bearer "+token)
	assert.Equal(t, responses.CodeSuccess, resp.Code)
}
