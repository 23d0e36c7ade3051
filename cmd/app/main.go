package main

import (
	"context"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"contestbot/internal/config"
	"contestbot/internal/contestbot"
	"contestbot/internal/database"
	"contestbot/internal/repositories"
	"contestbot/internal/schedulers"
	"contestbot/internal/services"
)

func main() {
	logger := config.InitLogger()

	if err := config.InitConfig(); err != nil {
		logger.Fatalf("Failed to init config: %v", err)
	}
	logger.Infoln("Config initialized")

	psqlConfig := config.LoadPostgresConfig()
	psql, err := database.NewPostgres(psqlConfig)
	if err != nil {
		logger.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := psql.Close(); err != nil {
			logger.Error("Failed to close database: ", err)
		}
	}()

	if err := psql.Ping(); err != nil {
		logger.Fatal("Failed to ping database: ", err)
	}

	if err := database.Migrate(database.ConnString(psqlConfig)); err != nil {
		logger.Fatal("Failed to migrate database: ", err)
	}
	logger.Infoln("Database initialized")

	if _, err := database.InitRedisCli(); err != nil {
		logger.Fatal("Failed to connect to redis: ", err)
	}
	logger.Infoln("Redis initialized")

	userRepo := repositories.NewUserRepository(psql.Db)
	referralRepo := repositories.NewReferralRepository(psql.Db)
	adminRepo := repositories.NewAdminRepository(psql.Db)
	subscriptionRepo := repositories.NewSubscriptionRepository(psql.Db)
	settingRepo := repositories.NewSettingRepository(psql.Db)
	statsRepo := repositories.NewStatsRepository(psql.Db)

	settingsService := services.NewSettingsService(settingRepo)
	statsService := services.NewStatsService(statsRepo, userRepo, referralRepo, settingsService)
	referralService := services.NewReferralService(referralRepo, statsService)
	userService := services.NewUserService(userRepo, referralService, statsService)
	rankingService := services.NewRankingService(userRepo)
	adminService := services.NewAdminService(adminRepo)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo)
	gateService := services.NewGateService(subscriptionRepo, nil, nil)
	broadcastService := services.NewBroadcastService(userRepo, statsService)
	exportService := services.NewExportService(userRepo, referralRepo, statsService)

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	adminService.SeedBootstrapAdmins(seedCtx)
	settingsService.SeedDefaults(seedCtx)
	cancel()

	c := cron.New()
	if _, err := c.AddFunc("@every 5m", schedulers.RollActivityStats(statsService)); err != nil {
		logger.Fatal("Failed to schedule stats job: ", err)
	}
	c.Start()
	defer c.Stop()

	token := os.Getenv("TELEGRAM_BOT_TOKEN")

	logger.Infoln("Telegram bot starting")
	tgBot := contestbot.NewTgBot(
		token,
		userService,
		referralService,
		rankingService,
		gateService,
		adminService,
		settingsService,
		subscriptionService,
		broadcastService,
		statsService,
		exportService,
	)
	if err := tgBot.StartBot(); err != nil {
		logger.Fatal("Failed to start bot: ", err)
	}
}
