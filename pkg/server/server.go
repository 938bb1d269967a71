package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/c9s/bbands/pkg/config"
	"github.com/c9s/bbands/pkg/datasource"
)

var log = logrus.WithField("component", "server")

// Server serves computed band series to a chart front-end.
type Server struct {
	Config *config.Config
	Loader datasource.BarLoader

	srv *http.Server
}

func New(cfg *config.Config, loader datasource.BarLoader) *Server {
	return &Server{
		Config: cfg,
		Loader: loader,
	}
}

func (s *Server) newEngine() *gin.Engine {
	r := gin.Default()

	allowOrigins := s.Config.Server.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		AllowMethods:  []string{"GET", "POST"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.GET("/api/bollinger", s.getBollinger)
	r.POST("/api/bollinger", s.postBollinger)
	r.GET("/api/bollinger/defaults", s.getDefaults)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// Handler returns the http handler with all the routes mounted.
func (s *Server) Handler() http.Handler {
	return s.newEngine()
}

// Run listens on bind until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, bind string) error {
	s.srv = &http.Server{
		Addr:    bind,
		Handler: s.newEngine(),
	}

	errC := make(chan error, 1)
	go func() {
		log.Infof("bollinger server listening on %s", bind)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errC <- err
		}
		close(errC)
	}()

	select {
	case err := <-errC:
		return err

	case <-ctx.Done():
	}

	log.Info("shutting down web server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
		return err
	}

	log.Info("server shutdown completed")
	return nil
}
