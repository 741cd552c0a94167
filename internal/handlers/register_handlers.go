package handlers

import (
	"github.com/SscSPs/fx_rate_service/cmd/docs"
	portssvc "github.com/SscSPs/fx_rate_service/internal/core/ports/services"
	"github.com/SscSPs/fx_rate_service/internal/metrics"
	"github.com/SscSPs/fx_rate_service/internal/middleware"
	"github.com/SscSPs/fx_rate_service/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// APIBasePath is where the exchange rate API is mounted.
const APIBasePath = "/api/fx"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// m and rateLimiter may be nil, which leaves /metrics unmounted and the API unthrottled.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	m *metrics.Metrics,
	rateLimiter *limiter.Limiter,
) {
	r.GET("/health", healthHandler(services.Health))

	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	setupExchangeRateRoutes(r, cfg, services, rateLimiter)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupExchangeRateRoutes configures the /api/fx group with CORS and per-IP rate limiting.
func setupExchangeRateRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	fx := r.Group(APIBasePath, middleware.CORS(cfg.CORSAllowedOrigins))
	if rateLimiter != nil {
		fx.Use(middleware.RateLimit(rateLimiter))
	}

	RegisterExchangeRateRoutes(fx, services.ExchangeRate)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = APIBasePath
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
