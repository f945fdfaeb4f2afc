package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func whoAmI(c *gin.Context) {
	id, ok := c.Get(UserIDKey)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"user_id": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": id})
}

func serve(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	raw, err := tokens.Issue(7)
	require.NoError(t, err)

	id, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestTokensRejectForeignAndExpired(t *testing.T) {
	other, err := NewTokens("other", time.Hour).Issue(7)
	require.NoError(t, err)
	_, err = NewTokens("secret", time.Hour).Parse(other)
	assert.Error(t, err)

	expired, err := NewTokens("secret", -time.Minute).Issue(7)
	require.NoError(t, err)
	_, err = NewTokens("secret", time.Hour).Parse(expired)
	assert.Error(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = NewTokens("secret", time.Hour).Parse(noUser)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	r := gin.New()
	r.GET("/", AuthMiddleware(tokens), whoAmI)

	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "garbage").Code)

	raw, err := tokens.Issue(3)
	require.NoError(t, err)
	w := serve(r, raw)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":3}`, w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	r := gin.New()
	r.GET("/", OptionalAuth(tokens), whoAmI)

	w := serve(r, "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0}`, w.Body.String())

	raw, err := tokens.Issue(5)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":5}`, serve(r, raw).Body.String())
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := serve(r, "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
}

func TestRequestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(RequestID(), RequestLogger(log))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, "")
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, http.StatusNoContent, entry.Data["status"])
	assert.NotEmpty(t, entry.Data["request_id"])

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
