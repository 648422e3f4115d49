package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/kgconnect/alumni-portal/docs"
	"github.com/kgconnect/alumni-portal/internal/api/handler"
	"github.com/kgconnect/alumni-portal/internal/api/middleware"
	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/service"
	mongorepo "github.com/kgconnect/alumni-portal/internal/infrastructure/db/mongo"
	redisinfra "github.com/kgconnect/alumni-portal/internal/infrastructure/db/redis"
	"github.com/kgconnect/alumni-portal/internal/infrastructure/queue"
	"github.com/kgconnect/alumni-portal/internal/infrastructure/storage"
)

// RouterDeps carries the external dependencies the router wires together.
type RouterDeps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	UploadDir string
	Logger    zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the payment event dispatcher, which the caller must Start.
func NewRouter(deps RouterDeps) (*echo.Echo, *queue.Dispatcher, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(deps.Mongo)
	registryRepo := mongorepo.NewRegistryRepository(deps.Mongo)
	eventRepo := mongorepo.NewEventRepository(deps.Mongo)
	jobRepo := mongorepo.NewJobRepository(deps.Mongo)
	connectionRepo := mongorepo.NewConnectionRepository(deps.Mongo)
	donationRepo := mongorepo.NewDonationRepository(deps.Mongo)
	chatRepo := mongorepo.NewChatRepository(deps.Mongo)

	// --- Services ---
	authService := service.NewAuthService(userRepo, registryRepo, deps.JWTSecret, 7*24*time.Hour, deps.Logger)
	rosterService := service.NewRosterService(userRepo, registryRepo, deps.Logger)
	eventService := service.NewEventService(eventRepo, deps.Logger)
	jobService := service.NewJobService(jobRepo, deps.Logger)
	connectionService := service.NewConnectionService(connectionRepo, userRepo, deps.Logger)
	donationService := service.NewDonationService(donationRepo, deps.Logger)

	dedup := redisinfra.NewDedupChecker(deps.Redis)
	paymentService := service.NewPaymentEventService(donationRepo, dedup, deps.Logger)
	dispatcher := queue.NewDispatcher(0, paymentService, deps.Logger)

	chatService := service.NewChatService(chatRepo, deps.Logger)

	uploads, err := storage.NewUploadStore(deps.UploadDir)
	if err != nil {
		return nil, nil, err
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	rosterHandler := handler.NewRosterHandler(rosterService, uploads)
	eventHandler := handler.NewEventHandler(eventService)
	jobHandler := handler.NewJobHandler(jobService)
	connectionHandler := handler.NewConnectionHandler(connectionService)
	donationHandler := handler.NewDonationHandler(donationService)
	paymentHandler := handler.NewPaymentHandler(dispatcher)
	chatHandler := handler.NewChatHandler(chatService)

	auth := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	alumniOrAdmin := middleware.RBAC(domain.RoleAlumni, domain.RoleAdmin)
	studentsOnly := middleware.RBAC(domain.RoleStudent)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/claim", authHandler.Claim)
	e.GET("/api/auth/me", authHandler.Me, auth)

	// --- Roster imports (admin only) ---
	e.POST("/api/roster/students", rosterHandler.ImportStudents, auth, adminOnly)
	e.POST("/api/roster/alumni", rosterHandler.ImportAlumni, auth, adminOnly)

	// --- Events ---
	e.GET("/api/events", eventHandler.List, auth)
	e.GET("/api/events/mine", eventHandler.Mine, auth, alumniOrAdmin)
	e.POST("/api/events", eventHandler.Create, auth, alumniOrAdmin)
	e.PUT("/api/events/:id", eventHandler.Update, auth, alumniOrAdmin)
	e.PATCH("/api/events/:id/status", eventHandler.UpdateStatus, auth, adminOnly)
	e.DELETE("/api/events/:id", eventHandler.Delete, auth, alumniOrAdmin)

	// --- Jobs ---
	e.GET("/api/jobs", jobHandler.List, auth)
	e.GET("/api/jobs/:id", jobHandler.Get, auth)
	e.POST("/api/jobs", jobHandler.Create, auth, alumniOrAdmin)
	e.PATCH("/api/jobs/:id/status", jobHandler.UpdateStatus, auth, alumniOrAdmin)
	e.DELETE("/api/jobs/:id", jobHandler.Delete, auth, alumniOrAdmin)
	e.POST("/api/jobs/:id/apply", jobHandler.Apply, auth, studentsOnly)

	// --- Connections ---
	e.POST("/api/connections", connectionHandler.Request, auth, studentsOnly)
	e.GET("/api/connections", connectionHandler.Mine, auth)
	e.PATCH("/api/connections/:id", connectionHandler.Respond, auth, middleware.RBAC(domain.RoleAlumni))
	e.GET("/api/connections/stats", connectionHandler.Stats, auth, adminOnly)

	// --- Donations ---
	e.POST("/api/donations", donationHandler.Create, auth, middleware.RBAC(domain.RoleAlumni))
	e.GET("/api/donations", donationHandler.Mine, auth)
	e.GET("/api/donations/all", donationHandler.All, auth, adminOnly)

	// --- Payment gateway webhook (gateway-authenticated upstream, no JWT) ---
	e.POST("/api/payments/events", paymentHandler.Receive)

	// --- Assistant ---
	e.POST("/api/chat", chatHandler.Send, auth)
	e.GET("/api/chat/history", chatHandler.History, auth)
	e.DELETE("/api/chat/history", chatHandler.Clear, auth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher, nil
}
