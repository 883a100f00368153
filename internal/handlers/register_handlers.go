package handlers

import (
	"time"

	"github.com/SscSPs/property_billing_app/cmd/docs"
	portssvc "github.com/SscSPs/property_billing_app/internal/core/ports/services"
	"github.com/SscSPs/property_billing_app/internal/dto"
	"github.com/SscSPs/property_billing_app/internal/middleware"
	"github.com/SscSPs/property_billing_app/internal/platform/config"
	"github.com/SscSPs/property_billing_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Deps carries the optional collaborators of the router. Nil fields are skipped.
type Deps struct {
	Metrics     *metrics.Metrics
	RateLimiter *limiter.Limiter
	DB          Pinger
	Now         func() time.Time
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps Deps,
) error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return err
		}
	}

	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	r.GET("/health", getHealth(deps.DB))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	setupAPIV1Routes(r, cfg, services, deps.RateLimiter, now)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
	now func() time.Time,
) {
	v1 := r.Group("/api/v1")
	if rateLimiter != nil {
		v1.Use(middleware.RateLimit(rateLimiter))
	}
	v1.Use(middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerLedgerRoutes(v1, service.Ledger, cfg.Currency, now)
	registerPaymentRoutes(v1, service.Payment, service.Balance, now)
	registerConsolidatedPaymentRoutes(v1, service.ConsolidatedPayment)
	registerReportingRoutes(v1, service.Reporting, now)
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
