package handlers

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SscSPs/school_ledger/cmd/docs"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/middleware"
	"github.com/SscSPs/school_ledger/internal/platform/config"
)

var registerValidatorsOnce sync.Once

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	registerValidatorsOnce.Do(registerDecimalValidation)

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	if err := registerAuthRoutes(r, cfg); err != nil {
		return err
	}

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	if err := setupAPIV1Routes(r, cfg, services); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) error {
	apiLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("api rate limit: %w", err)
	}

	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.RateLimit(apiLimiter), middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerAccountRoutes(v1, service.Ledger)
	registerJournalRoutes(v1, service.Ledger)
	registerLedgerRoutes(v1, service.Ledger)
	registerStudentRoutes(v1, service.Ledger, service.Operations)
	registerSupplierRoutes(v1, service.Ledger, service.Operations)
	registerStaffRoutes(v1, service.Ledger, service.Operations)
	registerFeeTemplateRoutes(v1, service.Ledger, service.Operations)
	registerBudgetRoutes(v1, service.Ledger, service.Reporting)
	registerAssetRoutes(v1, service.Ledger, service.Operations)
	registerReportingRoutes(v1, service.Ledger, service.Reporting)
	registerAuditRoutes(v1, service.Ledger)
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

// registerDecimalValidation lets binding tags such as gte=0 and required
// inspect decimal.Decimal fields as numbers.
func registerDecimalValidation() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}
