package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupLimitedRouter(t *testing.T, rdb *redis.Client, limit int) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimiter(rdb, limit, 1*time.Minute))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Forwarded-For", ip)
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	t.Run("Allow Requests under limit", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer rdb.Close()

		limit := 5
		router := setupLimitedRouter(t, rdb, limit)

		for i := 1; i <= limit; i++ {
			w := doRequest(router, "192.168.1.100")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, fmt.Sprintf("%d", limit), w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, fmt.Sprintf("%d", limit-i), w.Header().Get("X-RateLimit-Remaining"))
		}
	})

	t.Run("Block Requests over limit", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer rdb.Close()

		router := setupLimitedRouter(t, rdb, 2)
		ip := "192.168.1.101"

		assert.Equal(t, http.StatusOK, doRequest(router, ip).Code, "Request 1 should pass")
		assert.Equal(t, http.StatusOK, doRequest(router, ip).Code, "Request 2 should pass")

		w := doRequest(router, ip)
		assert.Equal(t, http.StatusTooManyRequests, w.Code, "Request 3 should be blocked")
		assert.Contains(t, w.Body.String(), "too many requests")
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("Window reset restores budget", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer rdb.Close()

		router := setupLimitedRouter(t, rdb, 1)
		ip := "192.168.1.102"

		assert.Equal(t, http.StatusOK, doRequest(router, ip).Code)
		assert.Equal(t, http.StatusTooManyRequests, doRequest(router, ip).Code)

		mr.FastForward(2 * time.Minute)

		assert.Equal(t, http.StatusOK, doRequest(router, ip).Code, "budget must reset once the window expires")
	})

	t.Run("Fail Open (Redis Down)", func(t *testing.T) {
		badRdb := redis.NewClient(&redis.Options{
			Addr: "localhost:9999",
		})

		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(RateLimiter(badRdb, 5, 1*time.Minute))
		router.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "passed")
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "passed", w.Body.String())
	})
}
