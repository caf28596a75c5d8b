package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/volleyhub/registration-api/docs"
	v1 "github.com/volleyhub/registration-api/internal/api/handler/v1"
	"github.com/volleyhub/registration-api/internal/api/middleware"
	"github.com/volleyhub/registration-api/internal/cascade"
	"github.com/volleyhub/registration-api/internal/config"
	"github.com/volleyhub/registration-api/internal/repository"
	"github.com/volleyhub/registration-api/internal/repository/dao"
	"github.com/volleyhub/registration-api/internal/service"
)

type Server struct {
	Config   *config.AppConfig
	Router   *gin.Engine
	Services *Services

	auth *middleware.Authenticator
}

type handlers struct {
	auth         *v1.AuthHandler
	user         *v1.UserHandler
	tournament   *v1.TournamentHandler
	team         *v1.TeamHandler
	registration *v1.RegistrationHandler
	roster       *v1.RosterHandler
}

// Services are shared by several handlers; they are built once per server.
type Services struct {
	Auth         *service.AuthService
	User         *service.UserService
	Tournament   *service.TournamentService
	Team         *service.TeamService
	Registration *service.RegistrationService
	Roster       *service.RosterService
}

func NewServer(conf *config.AppConfig, db *gorm.DB, storage service.ObjectStorage) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	svcs := NewServices(conf, db, storage)
	s := &Server{
		Config:   conf,
		Router:   engine,
		Services: svcs,
		auth:     middleware.NewAuthenticator(conf.API.JWTSigningKey),
	}

	s.MountMiddlewares()
	s.MountHandlers(handlers{
		auth:         v1.NewAuthHandler(conf.API, svcs.Auth, svcs.User),
		user:         v1.NewUserHandler(svcs.User),
		tournament:   v1.NewTournamentHandler(svcs.Tournament),
		team:         v1.NewTeamHandler(svcs.Team),
		registration: v1.NewRegistrationHandler(svcs.Registration),
		roster:       v1.NewRosterHandler(svcs.Roster),
	})

	return s
}

// NewServices wires DAOs, repositories and services on top of db.
func NewServices(conf *config.AppConfig, db *gorm.DB, storage service.ObjectStorage) *Services {
	tournaments := repository.NewTournamentRepository(dao.NewTournamentDAO(db))
	teams := repository.NewTeamRepository(dao.NewTeamDAO(db))
	players := repository.NewPlayerRepository(dao.NewPlayerDAO(db))
	officials := repository.NewOfficialRepository(dao.NewOfficialDAO(db))
	jerseys := repository.NewJerseyRepository(dao.NewJerseyDAO(db))
	registrations := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	users := repository.NewUserRepository(dao.NewUserDAO(db))

	cascadeDAO := dao.NewCascadeDAO(db)
	executor := cascade.NewExecutor(cascadeDAO)

	return &Services{
		Auth:         service.NewAuthService(users),
		User:         service.NewUserService(users),
		Tournament:   service.NewTournamentService(tournaments, teams, players, executor, cascadeDAO, storage),
		Team:         service.NewTeamService(teams, tournaments, executor, cascadeDAO, storage, conf.Team.TokenMaxAttempts),
		Registration: service.NewRegistrationService(registrations, tournaments, teams),
		Roster:       service.NewRosterService(teams, tournaments, players, officials, jerseys, executor, cascadeDAO, storage),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.Timeout(s.Config.API.RequestTimeout))
	s.Router.Use(s.auth.Session())
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/login", h.auth.HandleLogin)
		auth.POST("/auth/logout", h.auth.HandleLogout)
		auth.GET("/auth/me", s.auth.RequireUser(), h.auth.HandleMe)
	}

	admin := s.Router.Group(basePath+"/admin", s.auth.RequireAdmin())
	{
		admin.POST("/users", h.user.HandleCreateUser)
		admin.GET("/users/:userID", h.user.HandleGetUser)

		admin.GET("/tournaments", h.tournament.HandleListTournaments)
		admin.POST("/tournaments", h.tournament.HandleCreateTournament)
		admin.GET("/tournaments/:tournamentID", h.tournament.HandleGetTournament)
		admin.PUT("/tournaments/:tournamentID", h.tournament.HandleUpdateTournament)
		admin.DELETE("/tournaments/:tournamentID", h.tournament.HandleDeleteTournament)
		admin.GET("/tournaments/:tournamentID/teams", h.team.HandleListTeams)
		admin.GET("/tournaments/:tournamentID/registrations", h.registration.HandleListRegistrations)
		admin.POST("/tournaments/:tournamentID/registrations", h.registration.HandleCreateRegistration)

		admin.POST("/teams", h.team.HandleCreateTeam)
		admin.GET("/teams/:teamID", h.team.HandleGetTeam)
		admin.PUT("/teams/:teamID", h.team.HandleUpdateTeam)
		admin.DELETE("/teams/:teamID", h.team.HandleDeleteTeam)

		admin.PATCH("/registrations/:registrationID", h.registration.HandleUpdateRegistration)
	}

	public := s.Router.Group(basePath + "/public")
	{
		public.GET("/tournaments", h.tournament.HandleListOpenTournaments)
		public.GET("/tournaments/:tournamentID", h.tournament.HandleGetOpenTournament)
	}

	roster := s.Router.Group(basePath + "/teams/:token")
	{
		roster.GET("", h.roster.HandleGetRoster)

		roster.GET("/players", h.roster.HandleListPlayers)
		roster.POST("/players", h.roster.HandleCreatePlayer)
		roster.GET("/players/:playerID", h.roster.HandleGetPlayer)
		roster.PUT("/players/:playerID", h.roster.HandleUpdatePlayer)
		roster.DELETE("/players/:playerID", h.roster.HandleDeletePlayer)
		roster.GET("/players/:playerID/documents", h.roster.HandleListDocuments)
		roster.POST("/players/:playerID/documents", h.roster.HandleCreateDocument)

		roster.GET("/officials", h.roster.HandleListOfficials)
		roster.POST("/officials", h.roster.HandleCreateOfficial)
		roster.GET("/officials/:officialID", h.roster.HandleGetOfficial)
		roster.PUT("/officials/:officialID", h.roster.HandleUpdateOfficial)
		roster.DELETE("/officials/:officialID", h.roster.HandleDeleteOfficial)

		roster.GET("/jersey", h.roster.HandleGetJersey)
		roster.PUT("/jersey", h.roster.HandleSaveJersey)
		roster.DELETE("/jersey", h.roster.HandleDeleteJersey)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Volleyball tournament registration API"
	docs.SwaggerInfo.Description = "Tournament administration and token-scoped team rosters."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
