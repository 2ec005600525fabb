// Package server exposes the invoice engine as a JSON API.
package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkvoice/inkvoice/internal/config"
	"github.com/inkvoice/inkvoice/internal/service"
)

// Server wires the HTTP surface to the invoice service.
type Server struct {
	cfg      config.Config
	invoices *service.InvoiceService
	router   *gin.Engine
}

// New builds the router with all routes and middleware registered.
func New(cfg config.Config, invoices *service.InvoiceService) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{cfg: cfg, invoices: invoices, router: gin.New()}
	s.router.Use(RequestID(), RequestLogger(), CORS(), gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.Group("/api")
	{
		api.GET("/invoices/new", s.handleNewInvoice)
		api.POST("/invoices/totals", s.handleTotals)
		api.POST("/invoices/validate", s.handleValidate)
		api.POST("/invoices/export", s.handleExport)
		api.POST("/invoices/share", s.handleShare)

		api.POST("/invoices", s.handleSave)
		api.GET("/invoices", s.handleList)
		api.GET("/invoices/:id", s.handleLoad)
		api.DELETE("/invoices/:id", s.handleDelete)

		api.POST("/logo", s.handleLogoUpload)
	}

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Handler exposes the router for tests.
func (s *Server) Handler() *gin.Engine {
	return s.router
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%d", s.cfg.Port))
}
