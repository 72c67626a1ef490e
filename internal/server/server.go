// Package server exposes the summarization pipeline over HTTP for
// running sigsum as a service.
package server

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/crimson-sun/sigsum/internal/activity"
	"github.com/crimson-sun/sigsum/internal/assembler"
)

var (
	registerOnce sync.Once

	summaries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sigsum",
			Subsystem: "http",
			Name:      "summaries_total",
			Help:      "Summaries produced, by protocol.",
		},
		[]string{"protocol"},
	)
)

func registerMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(summaries)
	})
}

// Server wraps a gin engine with the sigsum routes mounted.
type Server struct {
	router   *gin.Engine
	maxItems int
}

// New builds a Server. maxItems bounds every summary produced over
// HTTP when the request does not say.
func New(maxItems int) *Server {
	registerMetrics()

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		router:   gin.New(),
		maxItems: maxItems,
	}
	s.router.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	log.Info().Str("addr", addr).Msg("http server listening")
	return s.router.Run(addr)
}

type summarizeRequest struct {
	Protocol    string `json:"protocol" binding:"required"`
	Annotations string `json:"annotations" binding:"required"`
	MaxItems    int    `json:"max_items"`
}

type activityRequest struct {
	Samples string `json:"samples" binding:"required"`
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "sigsum",
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")

	v1.GET("/protocols", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"protocols": assembler.Protocols()})
	})

	v1.POST("/summarize", func(c *gin.Context) {
		var req summarizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		max := req.MaxItems
		if max <= 0 {
			max = s.maxItems
		}
		summaries.WithLabelValues(req.Protocol).Inc()
		c.JSON(http.StatusOK, gin.H{
			"protocol": req.Protocol,
			"summary":  assembler.Summarize(req.Annotations, req.Protocol, max),
		})
	})

	v1.POST("/activity", func(c *gin.Context) {
		var req activityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"summary": activity.Summarize(req.Samples),
		})
	})
}
