// main.go
package main

import (
	"log"

	"booking-service/cmd"
	"booking-service/internal/cache"
	"booking-service/internal/data/repository"
	"booking-service/internal/notify"
	"booking-service/internal/peer"
	"booking-service/internal/usecase"
	"booking-service/internal/wire"
	"booking-service/pkg/database"
	"booking-service/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Peer responses are cached in redis when it is enabled
	rdb, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	var store cache.Store
	if rdb != nil {
		defer rdb.Close()
		store = cache.NewRedisStore(rdb)
		logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))
	}
	peerCache := cache.New(store, config.Redis.TTL, logger)
	peers := peer.NewClients(config, peerCache, logger)

	// Notifications
	sender, err := notify.NewSender(config.Notify, config.JWT.Secret, logger)
	if err != nil {
		logger.Fatal("Failed to init notification sender", zap.Error(err))
	}
	defer sender.Close()

	announcementNotifier := notify.NewDispatcher(sender, config.Notify.AnnouncementSource, config.Notify.Mode, config.Notify.Timeout, logger)
	bookingNotifier := notify.NewDispatcher(sender, config.Notify.BookingSource, config.Notify.Mode, config.Notify.Timeout, logger)
	// Deferred after the sender so in-flight events drain before it closes
	defer announcementNotifier.Close()
	defer bookingNotifier.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, peers, usecase.Notifiers{
		Announcement: announcementNotifier,
		Booking:      bookingNotifier,
	}, config, logger)

	logger.Info("Starting HTTP server",
		zap.String("port", config.App.Port),
		zap.String("notify_transport", config.Notify.Transport),
		zap.String("notify_mode", config.Notify.Mode))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
