package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/agrolink/livestock-api/docs"
	"github.com/agrolink/livestock-api/internal/api/handler"
	"github.com/agrolink/livestock-api/internal/api/middleware"
	"github.com/agrolink/livestock-api/internal/core/credential"
	"github.com/agrolink/livestock-api/internal/core/domain"
	"github.com/agrolink/livestock-api/internal/core/ports"
	"github.com/agrolink/livestock-api/internal/core/service"
	"github.com/agrolink/livestock-api/internal/core/token"
	mongostore "github.com/agrolink/livestock-api/internal/infrastructure/db/mongo"
	redisstore "github.com/agrolink/livestock-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("livestock"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	issuer := token.NewIssuer(jwtSecret)

	adminRepo := mongostore.NewAdminRepository(db)
	customerRepo := mongostore.NewCustomerRepository(db)
	listingRepo := mongostore.NewListingRepository(db)
	breedRepo := mongostore.NewBreedRepository(db)
	proposalRepo := mongostore.NewProposalRepository(db)

	accountService := service.NewAccountService(adminRepo, customerRepo, credential.NewHasher(), issuer, audit, log)
	catalogService := service.NewCatalogService(listingRepo, breedRepo, log)
	proposalService := service.NewProposalService(proposalRepo, log)

	adminHandler := handler.NewAdminHandler(accountService)
	customerHandler := handler.NewCustomerHandler(accountService)
	listingHandler := handler.NewListingHandler(catalogService)
	breedHandler := handler.NewBreedHandler(catalogService)
	proposalHandler := handler.NewProposalHandler(proposalService)

	requireToken := middleware.Auth(issuer)
	limiter := redisstore.NewAttemptLimiter(rdb)

	// --- Administrator accounts ---
	e.POST("/admins", adminHandler.Register)
	e.POST("/admins/login", adminHandler.Login,
		middleware.LoginThrottle(limiter, string(domain.KindAdmin), log))
	e.GET("/admins", adminHandler.List, requireToken)

	// --- Customer accounts ---
	e.POST("/customers", customerHandler.Register)
	e.POST("/customers/login", customerHandler.Login,
		middleware.LoginThrottle(limiter, string(domain.KindCustomer), log))
	e.PUT("/customers/:national_id/password", customerHandler.ResetPassword)
	e.POST("/customers/check", customerHandler.Check)
	e.GET("/customers", customerHandler.List, requireToken)
	e.GET("/customers/:id", customerHandler.Get, requireToken)

	// --- Listings ---
	e.GET("/listings", listingHandler.List)
	e.GET("/listings/:id", listingHandler.Get)
	e.GET("/listings/search/:term", listingHandler.Search)
	e.POST("/listings", listingHandler.Create, requireToken)
	e.PUT("/listings/:id", listingHandler.Update, requireToken)
	e.DELETE("/listings/:id", listingHandler.Delete, requireToken)

	// --- Breeds ---
	e.GET("/breeds", breedHandler.List)
	e.POST("/breeds", breedHandler.Create, requireToken)
	e.PUT("/breeds/:id", breedHandler.Update, requireToken)
	e.DELETE("/breeds/:id", breedHandler.Delete, requireToken)

	// --- Proposals ---
	e.GET("/proposals", proposalHandler.List, requireToken)
	e.GET("/proposals/customer/:customerID", proposalHandler.ListByCustomer)
	e.POST("/proposals", proposalHandler.Create)
	e.PATCH("/proposals/:id", proposalHandler.Answer, requireToken)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
