package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/chahin-fh/laboissimlocal/docs"
	v1 "github.com/chahin-fh/laboissimlocal/internal/api/handler/v1"
	"github.com/chahin-fh/laboissimlocal/internal/api/middleware"
	"github.com/chahin-fh/laboissimlocal/internal/config"
	"github.com/chahin-fh/laboissimlocal/internal/media"
	"github.com/chahin-fh/laboissimlocal/internal/repository"
	"github.com/chahin-fh/laboissimlocal/internal/repository/dao"
	"github.com/chahin-fh/laboissimlocal/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

type handlers struct {
	auth        *v1.AuthHandler
	user        *v1.UserHandler
	admin       *v1.AdminHandler
	siteContent *v1.SiteContentHandler
	project     *v1.ProjectHandler
	publication *v1.PublicationHandler
	external    *v1.ExternalHandler
	file        *v1.FileHandler
	event       *v1.EventHandler
	message     *v1.MessageHandler
	chatHub     *v1.ChatHub
}

func NewServer(conf *config.AppConfig, gormDB *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	store, err := media.NewStore(conf.Media)
	if err != nil {
		return nil, fmt.Errorf("media.NewStore -> %w", err)
	}

	h := s.initHandlers(gormDB, store)
	go h.chatHub.Run()
	s.MountHandlers(h, store)

	return s, nil
}

func (s *Server) initHandlers(gormDB *gorm.DB, store *media.Store) *handlers {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(gormDB))
	projectRepo := repository.NewProjectRepository(dao.NewProjectDAO(gormDB))
	publicationRepo := repository.NewPublicationRepository(dao.NewPublicationDAO(gormDB))
	externalRepo := repository.NewExternalRepository(dao.NewExternalDAO(gormDB))
	fileRepo := repository.NewFileRepository(dao.NewFileDAO(gormDB))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(gormDB))
	messageRepo := repository.NewMessageRepository(dao.NewMessageDAO(gormDB))
	siteContentRepo := repository.NewSiteContentRepository(dao.NewSiteContentDAO(gormDB))

	googleConf := &oauth2.Config{
		ClientID:     s.Config.Google.ClientID,
		ClientSecret: s.Config.Google.ClientSecret,
		RedirectURL:  s.Config.Google.RedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	uSvc := service.NewUserService(userRepo)
	messageSvc := service.NewMessageService(messageRepo, userRepo)
	chatHub := v1.NewChatHub(messageSvc, uSvc)

	return &handlers{
		auth:        v1.NewAuthHandler(s.Config.API, service.NewAuthService(userRepo, googleConf)),
		user:        v1.NewUserHandler(uSvc),
		admin:       v1.NewAdminHandler(service.NewAdminService(userRepo), uSvc),
		siteContent: v1.NewSiteContentHandler(service.NewSiteContentService(siteContentRepo), uSvc),
		project:     v1.NewProjectHandler(service.NewProjectService(projectRepo, userRepo), uSvc, store),
		publication: v1.NewPublicationHandler(service.NewPublicationService(publicationRepo, userRepo, externalRepo), uSvc),
		external:    v1.NewExternalHandler(service.NewExternalService(externalRepo), uSvc, store),
		file:        v1.NewFileHandler(service.NewFileService(fileRepo), uSvc, store),
		event:       v1.NewEventHandler(service.NewEventService(eventRepo), uSvc),
		message:     v1.NewMessageHandler(messageSvc, uSvc, chatHub),
		chatHub:     chatHub,
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h *handlers, store *media.Store) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", h.auth.HandleSignup)
		public.POST("/auth/login", h.auth.HandleLogin)
		public.POST("/auth/google", h.auth.HandleGoogleLogin)

		public.GET("/team-members", h.user.HandleGetTeamMembers)
		public.GET("/site-content", h.siteContent.HandleGetSiteContent)

		public.GET("/publications", h.publication.HandleListPublications)
		public.GET("/publications/:publicationID", h.publication.HandleGetPublication)

		public.GET("/external-members", h.external.HandleListExternals)
		public.GET("/external-members/:externalID", h.external.HandleGetExternal)

		public.POST("/contact-messages", h.message.HandleCreateContactMessage)
		public.POST("/account-requests", h.message.HandleCreateAccountRequest)
	}

	// Event reads are public but enriched for signed-in callers.
	events := s.Router.Group(basePath, authenticator.OptionalJWT())
	{
		events.GET("/events", h.event.HandleListEvents)
		events.GET("/events/:eventID", h.event.HandleGetEvent)
	}

	private := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		private.GET("/user", h.user.HandleGetCurrentUser)
		private.GET("/user/profile", h.user.HandleGetProfile)
		private.PUT("/user/profile", h.user.HandleUpdateProfile)
		private.PATCH("/user/profile", h.user.HandleUpdateProfile)
		private.GET("/users", h.user.HandleListUsers)
		private.GET("/users/:userID", h.user.HandleGetUser)

		private.POST("/admin/update-user-role/:userID", h.admin.HandleUpdateUserRole)
		private.POST("/admin/ban-user/:userID", h.admin.HandleBanUser)
		private.POST("/admin/unban-user/:userID", h.admin.HandleUnbanUser)
		private.DELETE("/admin/delete-user/:userID", h.admin.HandleDeleteUser)

		private.PUT("/site-content", h.siteContent.HandleUpdateSiteContent)

		private.GET("/projects", h.project.HandleListProjects)
		private.POST("/projects", h.project.HandleCreateProject)
		private.GET("/projects/:projectID", h.project.HandleGetProject)
		private.PUT("/projects/:projectID", h.project.HandleUpdateProject)
		private.DELETE("/projects/:projectID", h.project.HandleDeleteProject)
		private.POST("/projects/:projectID/add_team_member", h.project.HandleAddTeamMember)
		private.POST("/projects/:projectID/remove_team_member", h.project.HandleRemoveTeamMember)

		private.GET("/project-documents", h.project.HandleListDocuments)
		private.POST("/project-documents", h.project.HandleCreateDocument)
		private.GET("/project-documents/:documentID", h.project.HandleGetDocument)
		private.DELETE("/project-documents/:documentID", h.project.HandleDeleteDocument)

		private.POST("/publications", h.publication.HandleCreatePublication)
		private.PUT("/publications/:publicationID", h.publication.HandleUpdatePublication)
		private.DELETE("/publications/:publicationID", h.publication.HandleDeletePublication)
		private.GET("/publications/search_members", h.publication.HandleSearchMembers)
		private.GET("/publications/search_externals", h.publication.HandleSearchExternals)

		private.POST("/external-members", h.external.HandleCreateExternal)
		private.PUT("/external-members/:externalID", h.external.HandleUpdateExternal)
		private.DELETE("/external-members/:externalID", h.external.HandleDeleteExternal)

		private.GET("/files", h.file.HandleListFiles)
		private.POST("/files", h.file.HandleUploadFile)
		private.GET("/files/:fileID", h.file.HandleGetFile)
		private.PATCH("/files/:fileID", h.file.HandleRenameFile)
		private.DELETE("/files/:fileID", h.file.HandleDeleteFile)

		private.POST("/events", h.event.HandleCreateEvent)
		private.PUT("/events/:eventID", h.event.HandleUpdateEvent)
		private.DELETE("/events/:eventID", h.event.HandleDeleteEvent)
		private.POST("/events/:eventID/register", h.event.HandleRegister)
		private.POST("/events/:eventID/unregister", h.event.HandleUnregister)
		private.GET("/events/:eventID/registrations", h.event.HandleEventRegistrations)
		private.PATCH("/events/:eventID/update_registration_status", h.event.HandleUpdateRegistrationStatus)
		private.GET("/event-registrations", h.event.HandleMyRegistrations)

		private.GET("/contact-messages", h.message.HandleListContactMessages)
		private.PATCH("/contact-messages/:messageID", h.message.HandleUpdateContactStatus)
		private.DELETE("/contact-messages/:messageID", h.message.HandleDeleteContactMessage)

		private.GET("/account-requests", h.message.HandleListAccountRequests)
		private.POST("/account-requests/:requestID/approve", h.message.HandleApproveAccountRequest)
		private.POST("/account-requests/:requestID/reject", h.message.HandleRejectAccountRequest)
		private.DELETE("/account-requests/:requestID", h.message.HandleDeleteAccountRequest)

		private.GET("/messages", h.message.HandleInbox)
		private.POST("/messages", h.message.HandleSendMessage)
		private.GET("/messages/conversations", h.message.HandleConversations)
		private.GET("/messages/conversation", h.message.HandleConversation)
		private.POST("/messages/:messageID/mark_as_read", h.message.HandleMarkAsRead)
		private.GET("/messages/unread_count", h.message.HandleUnreadCount)
		private.DELETE("/messages/:messageID", h.message.HandleDeleteMessage)
		private.GET("/messages/ws", h.chatHub.HandleWebSocket)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.Static(s.Config.Media.BaseURL, store.Root())

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Laboissim API"
	docs.SwaggerInfo.Description = "Laboratory site backend."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
