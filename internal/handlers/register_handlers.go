package handlers

import (
	"net/http"

	"github.com/SscSPs/currency_converter_app/cmd/docs"
	portssvc "github.com/SscSPs/currency_converter_app/internal/core/ports/services"
	"github.com/SscSPs/currency_converter_app/internal/middleware"
	"github.com/SscSPs/currency_converter_app/internal/platform/config"
	"github.com/SscSPs/currency_converter_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	m *metrics.Metrics,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	limiterInstance, err := middleware.NewIPRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", m.Handler())

	v1 := r.Group("/api/v1", middleware.RateLimit(limiterInstance))
	RegisterCurrencyRoutes(v1, services.ExchangeRate)
	RegisterExchangeRateRoutes(v1, services.ExchangeRate)
	RegisterConversionRoutes(v1, services.Conversion, cfg.JWTSecret, cfg.DecimalPlaces)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
