package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/asclub/club-api/docs"
	v1 "github.com/asclub/club-api/internal/api/handler/v1"
	"github.com/asclub/club-api/internal/api/middleware"
	"github.com/asclub/club-api/internal/config"
	"github.com/asclub/club-api/internal/repository"
	"github.com/asclub/club-api/internal/service"
)

const basePath = "/api/v1"

// Deps are the collaborators that live outside the database. Leave Mailer,
// Gateway and CountCache nil to run without SMTP, Stripe or Redis.
type Deps struct {
	Revoker    service.TokenRevoker
	CountCache service.ReactionCountCache
	Mailer     service.ConfirmationMailer
	Gateway    service.PaymentGateway
	Bucket     service.Bucket
}

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	Hub       *v1.MatchHub
	Auth      *service.AuthService
	Reactions *service.ReactionService
}

type handlers struct {
	auth         *v1.AuthHandler
	players      *v1.PlayerHandler
	staff        *v1.StaffHandler
	competitions *v1.CompetitionHandler
	matches      *v1.MatchHandler
	articles     *v1.ArticleHandler
	galleries    *v1.GalleryHandler
	donations    *v1.DonationHandler
	subs         *v1.SubscriptionHandler
	reactions    *v1.ReactionHandler
	compositions *v1.CompositionHandler
	uploads      *v1.UploadHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB, deps Deps) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()
	// ClientIP feeds voter identity, so forwarded headers only count from known proxies.
	if err := engine.SetTrustedProxies(conf.API.TrustedProxies); err != nil {
		zap.L().Warn("invalid trusted proxies, ignoring forwarded headers", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	s := &Server{
		Config: conf,
		Router: engine,
		Hub:    v1.NewMatchHub(conf.API.AllowedCORSDomains),
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(db, deps))

	return s
}

func (s *Server) initHandlers(db *gorm.DB, deps Deps) handlers {
	playerRepo := repository.NewPlayerRepository(db)
	players := service.NewPlayerService(playerRepo)

	s.Auth = service.NewAuthService(repository.NewUserRepository(db), deps.Revoker)
	s.Reactions = service.NewReactionService(repository.NewReactionRepository(db), deps.CountCache)

	donations := service.NewDonationService(repository.NewDonationRepository(db), deps.Gateway, service.DonationSettings{
		Goal:     s.Config.Donations.Goal,
		Currency: s.Config.Donations.Currency,
		PageURL:  s.Config.Donations.PageURL,
	})

	return handlers{
		auth:         v1.NewAuthHandler(s.Config.API, s.Auth),
		players:      v1.NewPlayerHandler(players),
		staff:        v1.NewStaffHandler(service.NewStaffService(repository.NewStaffRepository(db))),
		competitions: v1.NewCompetitionHandler(service.NewCompetitionService(repository.NewCompetitionRepository(db))),
		matches:      v1.NewMatchHandler(service.NewMatchService(repository.NewMatchRepository(db), s.Hub)),
		articles:     v1.NewArticleHandler(service.NewArticleService(repository.NewArticleRepository(db))),
		galleries:    v1.NewGalleryHandler(service.NewGalleryService(repository.NewGalleryRepository(db))),
		donations:    v1.NewDonationHandler(donations),
		subs:         v1.NewSubscriptionHandler(service.NewSubscriptionService(repository.NewSubscriptionRepository(db), deps.Mailer)),
		reactions:    v1.NewReactionHandler(s.Config.API.JWTSigningKey, s.Config.API.VoterTokenTTL, s.Reactions),
		compositions: v1.NewCompositionHandler(service.NewCompositionService(repository.NewCompositionRepository(db), players)),
		uploads:      v1.NewUploadHandler(service.NewUploadService(deps.Bucket, s.Config.Storage.MaxUploadBytes, s.Config.Storage.ThumbnailWidth, s.Config.Storage.MaxThumbnailPixels)),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	public := s.Router.Group(basePath)
	{
		public.GET("/", v1.HandleHealthcheck)

		public.POST("/auth/login", h.auth.HandleLogin)

		public.GET("/players", h.players.HandleListPlayers)
		public.GET("/players/:id", h.players.HandleGetPlayer)
		public.GET("/staff", h.staff.HandleListStaff)
		public.GET("/staff/:id", h.staff.HandleGetStaff)
		public.GET("/competitions", h.competitions.HandleListCompetitions)
		public.GET("/competitions/:id", h.competitions.HandleGetCompetition)

		public.GET("/matches", h.matches.HandleListMatches)
		public.GET("/matches/next", h.matches.HandleNextMatch)
		public.GET("/matches/results", h.matches.HandleResults)
		public.GET("/matches/live", s.Hub.HandleLive)
		public.GET("/matches/:id", h.matches.HandleGetMatch)

		public.GET("/articles", h.articles.HandleListArticles)
		public.GET("/articles/:id", h.articles.HandleGetArticle)
		public.GET("/galleries", h.galleries.HandleListGalleries)
		public.GET("/galleries/:id", h.galleries.HandleGetGallery)

		public.POST("/donations", h.donations.HandleDonate)
		public.GET("/donations/progress", h.donations.HandleDonationProgress)
		public.GET("/donations/qrcode", h.donations.HandleDonationQRCode)

		public.POST("/subscriptions", h.subs.HandleSubscribe)

		public.GET("/formations", h.compositions.HandleListFormations)
		public.GET("/compositions/:id/board", h.compositions.HandleGetBoard)

		public.POST("/voter-token", h.reactions.HandleVoterToken)
		public.GET("/reactions/:entityType", h.reactions.HandleReactionSummary)
	}

	reactions := s.Router.Group(basePath+"/reactions", middleware.IdentifyVoter(s.Config.API.JWTSigningKey))
	{
		reactions.GET("/:entityType/:entityID", h.reactions.HandleGetReactions)
		reactions.POST("/:entityType/:entityID", h.reactions.HandleReact)
	}

	s.Router.Static(basePath+"/uploads", s.Config.Storage.Dir)

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey, s.Auth)
	admin := s.Router.Group(basePath+"/admin", authenticator.VerifyJWT())
	{
		admin.POST("/auth/logout", h.auth.HandleLogout)
		admin.GET("/auth/session", h.auth.HandleSession)
		admin.PUT("/auth/password", h.auth.HandleChangePassword)

		admin.GET("/players", h.players.HandleAdminListPlayers)
		admin.GET("/players/:id", h.players.HandleGetPlayer)
		admin.POST("/players", h.players.HandleCreatePlayer)
		admin.PUT("/players/:id", h.players.HandleUpdatePlayer)
		admin.DELETE("/players/:id", h.players.HandleDeletePlayer)

		admin.GET("/staff", h.staff.HandleAdminListStaff)
		admin.GET("/staff/:id", h.staff.HandleGetStaff)
		admin.POST("/staff", h.staff.HandleCreateStaff)
		admin.PUT("/staff/:id", h.staff.HandleUpdateStaff)
		admin.DELETE("/staff/:id", h.staff.HandleDeleteStaff)

		admin.GET("/competitions", h.competitions.HandleAdminListCompetitions)
		admin.GET("/competitions/:id", h.competitions.HandleGetCompetition)
		admin.POST("/competitions", h.competitions.HandleCreateCompetition)
		admin.PUT("/competitions/:id", h.competitions.HandleUpdateCompetition)
		admin.DELETE("/competitions/:id", h.competitions.HandleDeleteCompetition)

		admin.GET("/matches", h.matches.HandleListMatches)
		admin.GET("/matches/:id", h.matches.HandleGetMatch)
		admin.POST("/matches", h.matches.HandleCreateMatch)
		admin.PUT("/matches/:id", h.matches.HandleUpdateMatch)
		admin.DELETE("/matches/:id", h.matches.HandleDeleteMatch)

		admin.GET("/articles", h.articles.HandleAdminListArticles)
		admin.GET("/articles/:id", h.articles.HandleAdminGetArticle)
		admin.POST("/articles", h.articles.HandleCreateArticle)
		admin.PUT("/articles/:id", h.articles.HandleUpdateArticle)
		admin.DELETE("/articles/:id", h.articles.HandleDeleteArticle)

		admin.GET("/galleries", h.galleries.HandleListGalleries)
		admin.GET("/galleries/:id", h.galleries.HandleGetGallery)
		admin.POST("/galleries", h.galleries.HandleCreateGallery)
		admin.PUT("/galleries/:id", h.galleries.HandleUpdateGallery)
		admin.DELETE("/galleries/:id", h.galleries.HandleDeleteGallery)
		admin.GET("/galleries/:id/photos", h.galleries.HandleListPhotos)
		admin.POST("/galleries/:id/photos", h.galleries.HandleAddPhoto)
		admin.PUT("/galleries/:id/photos/:photoID", h.galleries.HandleUpdatePhoto)
		admin.DELETE("/galleries/:id/photos/:photoID", h.galleries.HandleDeletePhoto)

		admin.GET("/donations", h.donations.HandleAdminListDonations)
		admin.GET("/donations/:id", h.donations.HandleAdminGetDonation)
		admin.POST("/donations", h.donations.HandleAdminCreateDonation)
		admin.PUT("/donations/:id", h.donations.HandleAdminUpdateDonation)
		admin.DELETE("/donations/:id", h.donations.HandleAdminDeleteDonation)

		admin.GET("/subscriptions", h.subs.HandleAdminListSubscriptions)
		admin.GET("/subscriptions/:id", h.subs.HandleAdminGetSubscription)
		admin.POST("/subscriptions", h.subs.HandleAdminCreateSubscription)
		admin.PUT("/subscriptions/:id", h.subs.HandleAdminUpdateSubscription)
		admin.POST("/subscriptions/:id/unsubscribe", h.subs.HandleAdminUnsubscribe)
		admin.DELETE("/subscriptions/:id", h.subs.HandleAdminDeleteSubscription)

		admin.GET("/compositions", h.compositions.HandleListCompositions)
		admin.GET("/compositions/:id", h.compositions.HandleGetComposition)
		admin.POST("/compositions", h.compositions.HandleCreateComposition)
		admin.PUT("/compositions/:id", h.compositions.HandleUpdateComposition)
		admin.DELETE("/compositions/:id", h.compositions.HandleDeleteComposition)
		admin.PUT("/compositions/:id/positions/:playerID", h.compositions.HandleMovePlayer)
		admin.DELETE("/compositions/:id/positions", h.compositions.HandleResetPositions)

		admin.POST("/uploads", h.uploads.HandleUpload)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "AS Club API"
	docs.SwaggerInfo.Description = "Public website and back office API of the football club."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
