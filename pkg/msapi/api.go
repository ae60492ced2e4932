package msapi

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/quatton/metashare/pkg/msapi/routes"
	"github.com/quatton/metashare/pkg/msapi/services"
	"github.com/quatton/metashare/pkg/mslog"
)

type Options struct {
	Logger *mslog.Logger
	// RateLimit is requests per second per caller. Zero disables limiting.
	RateLimit      float64
	RateLimitBurst int
}

type Api struct {
	Api    huma.API
	Router *chi.Mux

	logger  *mslog.Logger
	limiter *rateLimiter
}

func NewApi(opts Options) *Api {
	logger := opts.Logger
	if logger == nil {
		logger = mslog.NewDefault()
	}

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	config := huma.DefaultConfig("MetaShare API", "1.0.0")

	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
			Description:  "Access token from /api/auth/refresh",
		},
	}

	api := humachi.New(router, config)

	a := &Api{Api: api, Router: router, logger: logger}
	if opts.RateLimit > 0 {
		a.limiter = newRateLimiter(opts.RateLimit, opts.RateLimitBurst)
	}
	return a
}

// Mount installs authentication and rate limiting, then registers every
// route against svcs.
func (a *Api) Mount(svcs *services.Services) {
	a.Api.UseMiddleware(svcs.IAM.Middleware())
	if a.limiter != nil {
		a.Api.UseMiddleware(a.limiter.Middleware(a.Api, callerKey(svcs.IAM)))
	}
	routes.RegisterAPI(a.Api, svcs, a.logger)
}

func requestLogger(logger *mslog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
