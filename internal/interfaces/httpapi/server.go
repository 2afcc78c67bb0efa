package httpapi

import (
	"net/http"

	"github.com/clubkit/roster-service/internal/platform/logging"
)

// RouterConfig carries everything the HTTP surface needs beyond the handler
// itself.
type RouterConfig struct {
	AllowedOrigins   []string
	InternalJobToken string
}

// NewRouter assembles the full middleware chain around the route mux. Order
// matters: tracing wraps logging so request logs carry trace ids, and panic
// recovery sits innermost so a panicking handler still produces an envelope.
func NewRouter(handler *Handler, verifier TokenVerifier, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPublicRoutes(mux, handler)
	registerManagementRoutes(mux, handler, verifier)
	registerAdminRoutes(mux, handler, verifier)
	registerInternalJobRoutes(mux, handler, cfg.InternalJobToken)

	return RequestTracing(RequestLogging(logger, CORS(cfg.AllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered in http handler",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
