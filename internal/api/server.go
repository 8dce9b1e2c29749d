package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vietanh2810/eventdesk/docs"
	v1 "github.com/vietanh2810/eventdesk/internal/api/handler/v1"
	"github.com/vietanh2810/eventdesk/internal/api/middleware"
	"github.com/vietanh2810/eventdesk/internal/config"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, facade v1.Facade, feed v1.ChangeFeed) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()
	s.MountHandlers(
		v1.NewAuthHandler(conf.API, facade),
		v1.NewEventHandler(facade),
		v1.NewStaffHandler(facade),
		v1.NewVendorHandler(facade),
		v1.NewRegistrationHandler(facade),
		v1.NewChangesHandler(feed, conf.API.AllowedCORSDomains),
	)

	return s
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
	eventHandler *v1.EventHandler,
	staffHandler *v1.StaffHandler,
	vendorHandler *v1.VendorHandler,
	registrationHandler *v1.RegistrationHandler,
	changesHandler *v1.ChangesHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/:role/signup", authHandler.HandleSignup)
		auth.POST("/auth/:role/login", authHandler.HandleLogin)
	}

	api := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		api.GET("/events", eventHandler.HandleListEvents)
		api.POST("/events", eventHandler.HandleCreateEvent)
		api.GET("/events/:eventID", eventHandler.HandleGetEvent)
		api.PATCH("/events/:eventID", eventHandler.HandleUpdateEvent)
		api.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		api.GET("/events/:eventID/summary", eventHandler.HandleEventSummary)

		api.GET("/events/:eventID/staff", staffHandler.HandleListStaff)
		api.POST("/events/:eventID/staff", staffHandler.HandleAddStaff)
		api.PUT("/staff/:staffID", staffHandler.HandleUpdateStaff)
		api.DELETE("/staff/:staffID", staffHandler.HandleDeleteStaff)

		api.GET("/events/:eventID/vendors", vendorHandler.HandleListVendors)
		api.POST("/events/:eventID/vendors", vendorHandler.HandleAddVendor)
		api.PUT("/vendors/:vendorID", vendorHandler.HandleUpdateVendor)
		api.DELETE("/vendors/:vendorID", vendorHandler.HandleDeleteVendor)

		api.GET("/events/:eventID/registrations", registrationHandler.HandleListEventRegistrations)
		api.POST("/events/:eventID/registrations", registrationHandler.HandleRegister)
		api.PATCH("/events/:eventID/registrations/:customerID", registrationHandler.HandleUpdateFeeStatus)
		api.GET("/customers/:customerID/registrations", registrationHandler.HandleCustomerRegistrations)

		api.GET("/changes", changesHandler.HandleChanges)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "eventdesk API"
	docs.SwaggerInfo.Description = "Local API over the event data files shared with the console process."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
