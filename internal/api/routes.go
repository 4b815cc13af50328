package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/gsarma/judgerelay/internal/submission"
)

// Options tunes the HTTP surface.
type Options struct {
	// StrictStatusCodes answers upstream failures with 502 and storage
	// failures with 500. When false every failure is a 400.
	StrictStatusCodes bool
	RateLimitRPS      float64
	RateLimitBurst    int
	Logger            *slog.Logger
}

func RegisterRoutes(r *gin.Engine, svc *submission.Service, opts Options) *Handler {
	h := &Handler{
		svc:    svc,
		strict: opts.StrictStatusCodes,
		log:    opts.Logger,
	}
	if h.log == nil {
		h.log = slog.Default()
	}

	r.Use(CORS())
	if opts.RateLimitRPS > 0 {
		r.Use(RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	}

	r.GET("/health", h.Health)
	r.GET("/languages", h.ListLanguages)

	r.POST("/submit", h.Submit)
	r.GET("/submissions", h.ListSubmissions)
	r.GET("/result/:token", h.GetResult)

	return h
}
