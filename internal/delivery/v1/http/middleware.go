package http

import (
	"net/http"
	"time"

	"github.com/catalogcraft/catalog-api/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger пишет строку на каждый запрос: метод, путь, статус, размер, длительность.
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				log.Infof("%s %s %d %dB %s reqID=%s",
					r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start), middleware.GetReqID(r.Context()))
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
