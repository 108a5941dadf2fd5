package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminRouter(staticTokens []string, jwtSecret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AdminAuth(staticTokens, jwtSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func getWithAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthStaticToken(t *testing.T) {
	r := adminRouter([]string{"s3cret"}, "")

	assert.Equal(t, http.StatusOK, getWithAuth(r, "Bearer s3cret").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithAuth(r, "Bearer wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithAuth(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithAuth(r, "s3cret").Code)
}

func TestAdminAuthJWT(t *testing.T) {
	secret := "jwt_secret"
	r := adminRouter(nil, secret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, getWithAuth(r, "Bearer "+signed).Code)

	forged, err := token.SignedString([]byte("other_secret"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, getWithAuth(r, "Bearer "+forged).Code)
}

func TestAdminAuthJWTRejectsExpired(t *testing.T) {
	secret := "jwt_secret"
	r := adminRouter(nil, secret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, getWithAuth(r, "Bearer "+signed).Code)
}
