package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/Melinia-CIT/melinia-api/docs"
	v1 "github.com/Melinia-CIT/melinia-api/internal/api/handler/v1"
	"github.com/Melinia-CIT/melinia-api/internal/api/middleware"
	"github.com/Melinia-CIT/melinia-api/internal/config"
	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/repository"
	"github.com/Melinia-CIT/melinia-api/internal/repository/dao"
	"github.com/Melinia-CIT/melinia-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	lookupHandler := s.initLookupHandler(db)
	checkInHandler := s.initCheckInHandler(db)
	resultHandler := s.initResultHandler(db)
	eventHandler := s.initEventHandler(db)
	teamHandler := s.initTeamHandler(db)
	couponHandler := s.initCouponHandler(db)
	paymentHandler := s.initPaymentHandler(db)
	s.MountHandlers(authHandler, userHandler, lookupHandler, checkInHandler, resultHandler, eventHandler, teamHandler, couponHandler, paymentHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	tokenRepo := repository.NewRefreshTokenRepository(dao.NewRefreshTokenDAO(db))
	refreshTTL := time.Duration(s.Config.API.RefreshTokenTTLHours) * time.Hour
	svc := service.NewAuthService(userRepo, tokenRepo, refreshTTL)

	return v1.NewAuthHandler(s.Config.API, svc)
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewUserService(repo)

	return v1.NewUserHandler(svc)
}

func (s *Server) initLookupHandler(db *gorm.DB) *v1.LookupHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	checkInRepo := repository.NewCheckInRepository(dao.NewCheckInDAO(db))
	svc := service.NewLookupService(userRepo, teamRepo, eventRepo, checkInRepo)

	return v1.NewLookupHandler(svc)
}

func (s *Server) initCheckInHandler(db *gorm.DB) *v1.CheckInHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	checkInRepo := repository.NewCheckInRepository(dao.NewCheckInDAO(db))
	svc := service.NewCheckInService(userRepo, teamRepo, eventRepo, checkInRepo)

	return v1.NewCheckInHandler(svc)
}

func (s *Server) initResultHandler(db *gorm.DB) *v1.ResultHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	resultRepo := repository.NewRoundResultRepository(dao.NewRoundResultDAO(db))
	svc := service.NewResultService(userRepo, teamRepo, eventRepo, resultRepo)

	return v1.NewResultHandler(svc)
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewEventService(eventRepo, teamRepo)
	teamSvc := service.NewTeamService(teamRepo)
	uSvc := service.NewUserService(userRepo)

	return v1.NewEventHandler(svc, teamSvc, uSvc)
}

func (s *Server) initTeamHandler(db *gorm.DB) *v1.TeamHandler {
	repo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	svc := service.NewTeamService(repo)

	return v1.NewTeamHandler(svc)
}

func (s *Server) initCouponHandler(db *gorm.DB) *v1.CouponHandler {
	repo := repository.NewCouponRepository(dao.NewCouponDAO(db))
	svc := service.NewCouponService(repo)

	return v1.NewCouponHandler(svc)
}

func (s *Server) initPaymentHandler(db *gorm.DB) *v1.PaymentHandler {
	paymentRepo := repository.NewPaymentRepository(dao.NewPaymentDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	couponSvc := service.NewCouponService(repository.NewCouponRepository(dao.NewCouponDAO(db)))
	svc := service.NewPaymentService(s.Config.Stripe, paymentRepo, userRepo, couponSvc)

	return v1.NewPaymentHandler(svc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	lookupHandler *v1.LookupHandler,
	checkInHandler *v1.CheckInHandler,
	resultHandler *v1.ResultHandler,
	eventHandler *v1.EventHandler,
	teamHandler *v1.TeamHandler,
	couponHandler *v1.CouponHandler,
	paymentHandler *v1.PaymentHandler,
) {
	const basePath = "/api/v1"

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()
	staffOnly := middleware.RequireRole(domain.RoleOrganizer, domain.RoleAdmin)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)
		public.POST("/auth/refresh", authHandler.HandleRefresh)
		public.POST("/payments/webhook", paymentHandler.HandleStripeWebhook)
	}

	authed := s.Router.Group(basePath, verifyJWT)
	{
		authed.POST("/auth/logout", authHandler.HandleLogout)

		authed.GET("/users/me", userHandler.HandleGetMe)
		authed.GET("/users/:userID", userHandler.HandleGetUser)

		authed.GET("/events", eventHandler.HandleListEvents)
		authed.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authed.POST("/events/:eventID/register", eventHandler.HandleRegister)

		authed.POST("/teams", teamHandler.HandleCreateTeam)
		authed.POST("/teams/join", teamHandler.HandleJoinTeam)
		authed.GET("/teams/:teamID", teamHandler.HandleGetTeam)
		authed.POST("/teams/:teamID/leave", teamHandler.HandleLeaveTeam)

		authed.GET("/coupons/:code", couponHandler.HandlePeekCoupon)
		authed.POST("/payments/intent", paymentHandler.HandleCreatePaymentIntent)
	}

	staff := s.Router.Group(basePath, verifyJWT, staffOnly)
	{
		staff.GET("/users", userHandler.HandleSearchUsers)
		staff.POST("/events", eventHandler.HandleCreateEvent)

		staff.GET("/events/:eventID/rounds/:roundNo/lookup", lookupHandler.HandleLookup)
		staff.POST("/events/:eventID/rounds/:roundNo/checkin", checkInHandler.HandleCheckIn)
		staff.POST("/events/:eventID/rounds/:roundNo/results", resultHandler.HandleAssignResults)
	}

	admin := s.Router.Group(basePath, verifyJWT, adminOnly)
	{
		admin.PUT("/users/:userID/status", userHandler.HandleUpdateUserStatus)
		admin.POST("/users/:userID/exempt", userHandler.HandleExemptPayment)
		admin.POST("/coupons", couponHandler.HandleCreateCoupon)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Melinia API"
	docs.SwaggerInfo.Description = "Registration, check-in and results backend for the Melinia college fest."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
