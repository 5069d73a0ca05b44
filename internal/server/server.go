// Package server exposes the order, cart and catalog operations over an
// authenticated HTTP API.
package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"posOrderManagement/internal/apperr"
	"posOrderManagement/internal/auth"
	"posOrderManagement/internal/cart"
	"posOrderManagement/internal/metrics"
	"posOrderManagement/internal/order"
	"posOrderManagement/repository"
)

// Server bundles the services and repositories the HTTP handlers call.
type Server struct {
	Orders   *order.Service
	Carts    *cart.Service
	Products *repository.ProductRepository
	AddOns   *repository.AddOnRepository
	Charges  *repository.ChargesRepository
	Partners *repository.PartnerRepository

	log *zap.Logger
}

// New builds the gin engine with auth, logging and metrics middleware and all
// routes registered. Health and metrics endpoints bypass authentication.
func New(
	jwtSecret string,
	orders *order.Service,
	carts *cart.Service,
	products *repository.ProductRepository,
	addOns *repository.AddOnRepository,
	charges *repository.ChargesRepository,
	partners *repository.PartnerRepository,
	m *metrics.Metrics,
	log *zap.Logger,
) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		Orders:   orders,
		Carts:    carts,
		Products: products,
		AddOns:   addOns,
		Charges:  charges,
		Partners: partners,
		log:      log,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	if m != nil {
		r.Use(m.Middleware())
	}
	r.Use(auth.Middleware(jwtSecret, "/healthz", "/metrics"))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if m != nil {
		r.GET("/metrics", m.Handler())
	}

	api := r.Group("/api/v1")
	{
		api.POST("/orders", s.upsertOrder)
		api.GET("/orders", s.listOrders)
		api.GET("/orders/:id", s.getOrder)
		api.DELETE("/orders/:id", s.deleteOrder)
		api.POST("/orders/:id/place", s.placeOrder)

		api.GET("/orders/:id/cart", s.getCartItem)
		api.POST("/orders/:id/products/:productId/increase", s.increaseQuantity)
		api.POST("/orders/:id/products/:productId/decrease", s.decreaseQuantity)
		api.POST("/orders/:id/addons/:itemId/toggle", s.toggleAddOn)
		api.POST("/orders/:id/charges/:chargesId/toggle", s.toggleCharge)
		api.PUT("/orders/:id/partner", s.updatePartner)

		api.PUT("/selected", s.selectOrder)
		api.GET("/selected", s.currentSelected)

		api.GET("/products", s.listProducts)
		api.GET("/addons", s.listAddOns)
		api.GET("/charges", s.listCharges)
		api.GET("/partners", s.listPartners)

		adminOnly := api.Group("", auth.RequireAdmin)
		{
			adminOnly.POST("/products", s.createProduct)
			adminOnly.PUT("/products/:id", s.updateProduct)
			adminOnly.DELETE("/products/:id", s.deleteProduct)
			adminOnly.POST("/addons", s.createAddOn)
			adminOnly.PUT("/addons/:id", s.updateAddOn)
			adminOnly.DELETE("/addons/:id", s.deleteAddOn)
			adminOnly.POST("/charges", s.createCharges)
			adminOnly.PUT("/charges/:id", s.updateCharges)
			adminOnly.DELETE("/charges/:id", s.deleteCharges)
			adminOnly.POST("/partners", s.createPartner)
			adminOnly.PUT("/partners/:id", s.updatePartnerName)
			adminOnly.DELETE("/partners/:id", s.deletePartner)
		}
	}

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

// writeError maps the error taxonomy onto HTTP status codes. Store failures
// surface as 500 and keep their wrapped cause out of the response body.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.log.Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
