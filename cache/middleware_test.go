package cache

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ETag())
	router.GET("/page", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<p>hello</p>"))
	})
	router.GET("/session", func(c *gin.Context) {
		http.SetCookie(c.Writer, &http.Cookie{Name: "s", Value: "1"})
		c.String(http.StatusOK, "changed")
	})
	router.GET("/missing", func(c *gin.Context) {
		c.String(http.StatusNotFound, "nope")
	})
	router.GET("/moved", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/page")
	})
	return router
}

func get(router *gin.Engine, path, ifNoneMatch string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if ifNoneMatch != "" {
		req.Header.Set("If-None-Match", ifNoneMatch)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestETag_SetsTag(t *testing.T) {
	router := setupTestRouter()

	w := get(router, "/page", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<p>hello</p>", w.Body.String())
	assert.Equal(t, generateTag([]byte("<p>hello</p>")), w.Header().Get("ETag"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestETag_NotModified(t *testing.T) {
	router := setupTestRouter()
	tag := get(router, "/page", "").Header().Get("ETag")

	w := get(router, "/page", tag)

	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestETag_StaleTag(t *testing.T) {
	router := setupTestRouter()

	w := get(router, "/page", `"0000000000000000"`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<p>hello</p>", w.Body.String())
}

func TestETag_SessionChangeAlwaysSent(t *testing.T) {
	router := setupTestRouter()
	tag := get(router, "/session", "").Header().Get("ETag")

	w := get(router, "/session", tag)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "changed", w.Body.String())
}

func TestETag_SkipsErrorsAndRedirects(t *testing.T) {
	router := setupTestRouter()

	w := get(router, "/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "nope", w.Body.String())
	assert.Empty(t, w.Header().Get("ETag"))

	w = get(router, "/moved", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/page", w.Header().Get("Location"))
	assert.Empty(t, w.Header().Get("ETag"))
}

func TestMatches(t *testing.T) {
	tag := `"abc"`

	assert.True(t, matches(`"abc"`, tag))
	assert.True(t, matches(`W/"abc"`, tag))
	assert.True(t, matches(`"x", "abc"`, tag))
	assert.True(t, matches("*", tag))
	assert.False(t, matches("", tag))
	assert.False(t, matches(`"abd"`, tag))
}
