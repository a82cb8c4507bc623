package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func doRequest(h http.Handler, addr string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestLimiter_Allows_Up_To_Max_Per_Window(t *testing.T) {
	req := require.New(t)
	h := New(2, time.Minute).Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req.Equal(http.StatusOK, doRequest(h, "10.0.0.1:1111"))
	req.Equal(http.StatusOK, doRequest(h, "10.0.0.1:1111"))
	req.Equal(http.StatusTooManyRequests, doRequest(h, "10.0.0.1:1111"))
}

func TestLimiter_Buckets_Are_Per_IP(t *testing.T) {
	req := require.New(t)
	h := New(1, time.Minute).Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req.Equal(http.StatusOK, doRequest(h, "10.0.0.1:1111"))
	req.Equal(http.StatusTooManyRequests, doRequest(h, "10.0.0.1:2222"))
	req.Equal(http.StatusOK, doRequest(h, "10.0.0.2:1111"))
}
