package api

import (
	"context"
	"crypto/rsa"
	"net/http"
	"time"

	"github.com/RichardKnop/machinery/v1"
	"github.com/RichardKnop/machinery/v1/tasks"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/samscloud-io/trace-api/exposure"
	"github.com/samscloud-io/trace-api/external/geoinfo"
	"github.com/samscloud-io/trace-api/logmodule"
	"github.com/samscloud-io/trace-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store store.TraceCore

	// JWT private key
	jwtPrivateKey *rsa.PrivateKey

	// job pool enqueuer
	background *machinery.Server

	// http client for calling external services
	httpClient *http.Client
}

// NewServer new instance of server
func NewServer(
	ormDB *gorm.DB,
	geoClient geoinfo.GeoInfo,
	backgroundServer *machinery.Server,
	jwtKey *rsa.PrivateKey) *Server {
	httpClient := &http.Client{
		Timeout: 5 * time.Minute,
	}

	return &Server{
		store:         store.NewTraceStore(ormDB, geoClient),
		jwtPrivateKey: jwtKey,
		background:    backgroundServer,
		httpClient:    httpClient,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))

	apiRoute.POST("/auth", s.requestJWT)
	apiRoute.POST("/accounts", s.accountRegister)

	// api route other than `/auth` and registration will apply the
	// following middleware
	apiRoute.Use(s.authMiddleware())
	apiRoute.Use(s.recognizeSubjectMiddleware())

	accountRoute := apiRoute.Group("/accounts")
	{
		accountRoute.GET("/me", s.accountDetail)
		accountRoute.GET("/me/score", s.accountScore)
		accountRoute.PATCH("/me", s.accountUpdate)
		accountRoute.DELETE("/me", s.accountDelete)
	}

	reportRoute := apiRoute.Group("/reports")
	{
		reportRoute.GET("", s.getMyReport)
		reportRoute.POST("", s.submitReport)
	}

	contactRoute := apiRoute.Group("/contacts")
	{
		contactRoute.GET("", s.listContacts)
		contactRoute.POST("", s.createContact)
		contactRoute.DELETE("/:contactID", s.deleteContact)
	}

	locationRoute := apiRoute.Group("/locations")
	{
		locationRoute.GET("", s.listLocations)
		locationRoute.POST("", s.createLocation)
		locationRoute.GET("/stats", s.locationStats)
		locationRoute.PATCH("/:locationID/hide", s.hideLocation)
		locationRoute.DELETE("/:locationID", s.deleteLocation)
	}

	flightRoute := apiRoute.Group("/flights")
	{
		flightRoute.GET("", s.listFlights)
		flightRoute.POST("", s.createFlight)
		flightRoute.DELETE("/:flightID", s.deleteFlight)
	}

	apiRoute.GET("/symptoms", s.getSymptoms)
	apiRoute.GET("/diseases", s.getDiseases)
	apiRoute.GET("/carriers", s.getCarriers)

	metricRoute := r.Group("/metrics")
	metricRoute.Use(logmodule.Ginrus("Metric"))
	metricRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))
	metricRoute.Use(s.apikeyAuthentication(viper.GetString("server.apikey.metric")))
	{
		metricRoute.GET("/locations", s.locationStats)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

// dispatchAlerts hands risk flips to the background workers. The
// exposure state is already committed; a queue hiccup loses at worst a
// notification, never data, so failures only get logged.
func (s *Server) dispatchAlerts(result *exposure.Result) {
	if result == nil || s.background == nil {
		return
	}

	if len(result.NewlyAtRisk) > 0 {
		if _, err := s.background.SendTask(&tasks.Signature{
			Name: "notify_exposure",
			Args: []tasks.Arg{
				{Type: "[]string", Value: uuidStrings(result.NewlyAtRisk)},
			},
		}); err != nil {
			log.WithError(err).Error("enqueue exposure alerts")
		}
	}

	if len(result.RiskCleared) > 0 {
		if _, err := s.background.SendTask(&tasks.Signature{
			Name: "notify_risk_cleared",
			Args: []tasks.Arg{
				{Type: "[]string", Value: uuidStrings(result.RiskCleared)},
			},
		}); err != nil {
			log.WithError(err).Error("enqueue risk cleared alerts")
		}
	}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
