package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	groupapp "github.com/Saieshwar5/sangam-sub001/internal/group/app"
	grouprepo "github.com/Saieshwar5/sangam-sub001/internal/group/repository"
	"github.com/Saieshwar5/sangam-sub001/internal/realtime/app"
	"github.com/Saieshwar5/sangam-sub001/internal/realtime/repository"
	"github.com/Saieshwar5/sangam-sub001/internal/realtime/router"
	"github.com/Saieshwar5/sangam-sub001/pkg/config"
	"github.com/Saieshwar5/sangam-sub001/pkg/database"
	"github.com/Saieshwar5/sangam-sub001/pkg/logger"
	testtool "github.com/Saieshwar5/sangam-sub001/pkg/test_tool"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.RealtimeService, config.EnvConfig.RealtimeServiceLogPath)
	cfg := config.LoadConfig[config.Realtime](config.EnvConfig.RealtimeService, config.EnvConfig.RealtimeServiceYAMLPath)

	// mongo holds the message history
	ctx := context.Background()
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.MongoSQL.User, cfg.MongoSQL.Password, cfg.MongoSQL.Host, cfg.MongoSQL.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.MongoSQL.RetryCount,
			RetryInterval: time.Duration(cfg.MongoSQL.RetryInterval),
		},
		cfg.MongoSQL.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", uri)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	if err := repository.EnsureMessageIndexes(ctx, mongo.Database); err != nil {
		logger.Log.Fatal("create message indexes failed", zap.Error(err))
	}

	// postgres holds groups, memberships and join requests
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		cfg.PostgreSQL.Host, cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Database, cfg.PostgreSQL.Port)
	pg, err := database.NewPGConnection(database.Connection{
		ConnectStr:    dsn,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to postgreSQL database after retries",
			zap.String("address", fmt.Sprintf("[%s]", dsn)),
			zap.Error(err),
		)
	}

	// redis holds login sessions checked at the socket handshake
	masterName, sentinel := config.GetRedisSetting()
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	msgRepo := repository.NewMongoMessageRepository(mongo.Database)
	sessionRepo := repository.NewSessionRepository(
		database.NewRedisRepository[repository.SessionData](redisClient))
	membershipRepo := grouprepo.NewMembershipRepository(pg)
	if err := membershipRepo.AutoMigrate(); err != nil {
		logger.Log.Fatal("membership migrate failed", zap.Error(err))
	}

	registry := app.NewRegistry()
	channelRouter := app.NewChannelRouter(registry)

	messageUC := app.NewMessageUseCase(msgRepo)
	deliveryUC := app.NewDeliveryUseCase(messageUC, msgRepo, channelRouter)
	notifyUC := app.NewNotifyUseCase(channelRouter)
	membershipUC := groupapp.NewMembershipUseCase(membershipRepo, notifyUC)

	wsHandler := app.NewRealtimeWebsocketHandler(registry, deliveryUC, messageUC, sessionRepo, membershipUC)
	messageHandler := app.NewMessageHandler(deliveryUC, messageUC)
	membershipHandler := groupapp.NewMembershipHandler(membershipUC)

	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.RealtimeServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r, wsHandler, messageHandler, membershipHandler)

	testtool.StartPprof()

	port := ":" + cfg.Port
	log.Printf("Realtime Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
