package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/techagentng/ecotrack/config"
	"github.com/techagentng/ecotrack/db"
	"github.com/techagentng/ecotrack/services"
)

type Server struct {
	Config                 *config.Config
	AuthRepository         db.AuthRepository
	AuthService            services.AuthService
	ReportService          services.ReportService
	RewardService          services.RewardService
	NotificationService    services.NotificationService
	MediaService           services.MediaService
	VerificationService    services.VerificationService
	GeocodeService         services.GeocodeService
	DB                     db.GormDB
}

// Start runs the HTTP server until an interrupt arrives, then shuts down
// gracefully.
func (s *Server) Start() {
	r := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 8080
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("Server started on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
