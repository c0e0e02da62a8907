// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sellerops/margin-backend/internal/calculator"
	"github.com/sellerops/margin-backend/internal/config"
	"github.com/sellerops/margin-backend/internal/handlers"
	"github.com/sellerops/margin-backend/internal/middleware"
	"github.com/sellerops/margin-backend/internal/models"
	"github.com/sellerops/margin-backend/internal/services"
	"github.com/sellerops/margin-backend/internal/utils"
)

const version = "1.0.0"

func Initialize(cfg *config.Config, logger *logrus.Logger, engine *calculator.Engine, limiter *middleware.RateLimiter) (*gin.Engine, error) {
	// Initialize services
	calculatorService := services.NewCalculatorService(engine, logger)
	productService := services.NewProductService(cfg.Simulation.DefaultDollarRate, logger)
	supplierService := services.NewSupplierService(logger)

	if cfg.SeedSamples {
		if err := supplierService.SeedSamples(); err != nil {
			return nil, fmt.Errorf("seed sample partners: %w", err)
		}
	}

	schedule := engine.Schedule()
	utils.RegisterCategories(schedule.Categories)

	// Initialize handlers
	calculatorHandler := handlers.NewCalculatorHandler(calculatorService)
	catalogHandler := handlers.NewCatalogHandler(calculatorService)
	productHandler := handlers.NewProductHandler(productService, schedule.Currency)
	supplierHandler := handlers.NewSupplierHandler(supplierService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	if limiter != nil {
		r.Use(limiter.Middleware())
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":           "healthy",
			"version":          version,
			"schedule_version": schedule.Version,
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		v1.GET("/categories", catalogHandler.GetCategories)
		v1.GET("/fee-schedule", catalogHandler.GetFeeSchedule)
		v1.GET("/fee-schedule/logistics", catalogHandler.QuoteLogistics)

		calc := v1.Group("/calculator")
		{
			calc.POST("/calculate", calculatorHandler.Calculate)
		}

		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.POST("", productHandler.RegisterProduct)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("/:id/simulate", productHandler.SimulateProduct)
			products.PATCH("/:id/simulation", productHandler.PatchSimulation)
			products.POST("/:id/save", productHandler.SaveProduct)
			products.PUT("/:id/status", productHandler.UpdateStatus)
		}

		registerPartnerRoutes(v1.Group("/suppliers"), supplierHandler, models.PartnerTypeSupplier)
		registerPartnerRoutes(v1.Group("/prep-centers"), supplierHandler, models.PartnerTypePrepCenter)
	}

	return r, nil
}

func registerPartnerRoutes(g *gin.RouterGroup, h *handlers.SupplierHandler, partnerType models.PartnerType) {
	g.GET("", h.GetPartners(partnerType))
	g.POST("", h.RegisterPartner(partnerType))
	g.GET("/:id", h.GetPartner(partnerType))
	g.GET("/:id/service-costs", h.GetServiceCosts(partnerType))
	g.POST("/:id/service-costs", h.AddServiceCost(partnerType))
	g.GET("/:id/negotiations", h.GetNegotiations(partnerType))
	g.POST("/:id/negotiations", h.AddNegotiation(partnerType))
}
