package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func echoRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		c.String(http.StatusOK, string(body))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	r.ServeHTTP(w, req)
	return w
}

func TestBodySizeLimit(t *testing.T) {
	r := echoRouter(BodySizeLimit(8))

	w := post(r, "small")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "small", w.Body.String())

	w = post(r, "this body is too large")
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
}

func TestBodySizeLimitWithoutContentLength(t *testing.T) {
	r := echoRouter(BodySizeLimit(8))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", io.NopCloser(strings.NewReader("this body is too large")))
	req.ContentLength = -1
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Second)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow(), "burst exhausted")

	now = now.Add(500 * time.Millisecond)
	assert.True(t, rl.Allow(), "one token refilled")
	assert.False(t, rl.Allow())
}

func TestRateLimitMiddleware(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return now }
	r := echoRouter(rateLimitWith(rl, time.Minute))

	assert.Equal(t, http.StatusOK, post(r, "a").Code)

	w := post(r, "b")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestDeduplication(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d := NewDeduplicator(time.Second)
	d.now = func() time.Time { return now }
	r := echoRouter(d.Middleware())

	w := post(r, `{"filename":"a.png"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"filename":"a.png"}`, w.Body.String(), "body is restored for the handler")

	assert.Equal(t, http.StatusTooManyRequests, post(r, `{"filename":"a.png"}`).Code)
	assert.Equal(t, http.StatusOK, post(r, `{"filename":"b.png"}`).Code)

	now = now.Add(2 * time.Second)
	assert.Equal(t, http.StatusOK, post(r, `{"filename":"a.png"}`).Code)
}

func TestRecovery(t *testing.T) {
	r := echoRouter(Recovery(), Logger())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}
