package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/campuslab/feedback-back/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type Middleware func(http.HandlerFunc) http.HandlerFunc

func WithMidWare(finalHandler http.HandlerFunc, middlwares ...Middleware) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := finalHandler
		for _, m := range middlwares {
			f = m(f)
		}
		f(w, r)
	}
}

// AccessLog 为每个请求生成请求ID并记录耗时
func AccessLog(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		h.ServeHTTP(w, r)
		slog.Info("access", "id", requestID, "method", r.Method, "path", r.URL.Path, "cost", time.Since(start))
	}
}

// RateLimit 全局限流，超出配额直接返回429
func RateLimit(limiter *rate.Limiter) Middleware {
	return func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				utils.WriteHttpError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			h.ServeHTTP(w, r)
		}
	}
}
