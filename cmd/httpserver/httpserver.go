// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/go-fintrack/fintrack/internal/accountdelivery"
	"github.com/go-fintrack/fintrack/internal/accountrepo"
	"github.com/go-fintrack/fintrack/internal/accountservice"
	"github.com/go-fintrack/fintrack/internal/events"
	"github.com/go-fintrack/fintrack/internal/events/kafka"
	"github.com/go-fintrack/fintrack/internal/ledgerdelivery"
	"github.com/go-fintrack/fintrack/internal/ledgerrepo"
	"github.com/go-fintrack/fintrack/internal/ledgerservice"
	"github.com/go-fintrack/fintrack/internal/middleware"
	"github.com/go-fintrack/fintrack/internal/reportdelivery"
	"github.com/go-fintrack/fintrack/internal/reportservice"
	"github.com/go-fintrack/fintrack/internal/transactionrepo"
	"github.com/go-fintrack/fintrack/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)

	var publisher events.Publisher = events.NoopPublisher{}
	if config.KafkaBrokers != "" {
		publisher = kafka.NewPublisher(strings.Split(config.KafkaBrokers, ","))
	}

	accountService := accountservice.New(accountRepo)
	ledgerService := ledgerservice.New(ledgerRepo, publisher)
	reportService := reportservice.New(transactionRepo, accountRepo)

	accountHandler := accountdelivery.NewHandler(accountService)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)
	reportHandler := reportdelivery.NewHandler(reportService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics())
	engine.Use(gin.Recovery())

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userRoutes := engine.Group("/").Use(middleware.UserID())

	userRoutes.POST("/accounts", accountHandler.Create)
	userRoutes.GET("/accounts/:id", accountHandler.Get)
	userRoutes.GET("/accounts", accountHandler.List)

	userRoutes.POST("/accounts/:id/transactions", ledgerHandler.Spend)
	userRoutes.POST("/transfers", ledgerHandler.Transfer)

	userRoutes.GET("/dashboard", reportHandler.Dashboard)
	userRoutes.GET("/transactions", reportHandler.Transactions)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
