package main

import (
	"log"

	"github.com/techagentng/ecotrack/config"
	"github.com/techagentng/ecotrack/db"
	"github.com/techagentng/ecotrack/server"
	"github.com/techagentng/ecotrack/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	reportRepo := db.NewReportRepo(gormDB)
	ledgerRepo := db.NewLedgerRepo(gormDB)
	notificationRepo := db.NewNotificationRepo(gormDB)

	authService := services.NewAuthService(authRepo, conf)
	notificationService := services.NewNotificationService(notificationRepo, conf)
	rewardService := services.NewRewardService(ledgerRepo, notificationService, conf)
	reportService := services.NewReportService(reportRepo, authRepo, rewardService, conf)
	mediaService := services.NewMediaService(conf)
	verificationService := services.NewVerificationService(conf)
	geocodeService := services.NewGeocodeService(conf)

	s := &server.Server{
		Config:              conf,
		AuthRepository:      authRepo,
		AuthService:         authService,
		ReportService:       reportService,
		RewardService:       rewardService,
		NotificationService: notificationService,
		MediaService:        mediaService,
		VerificationService: verificationService,
		GeocodeService:      geocodeService,
		DB:                  *gormDB,
	}

	s.Start()
}
