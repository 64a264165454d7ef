package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	goredis "github.com/redis/go-redis/v9"

	httpctx "github.com/easytravel/easytravel-server/internal/api/http/context"
	"github.com/easytravel/easytravel-server/internal/api/http/handler"
	"github.com/easytravel/easytravel-server/internal/api/http/middleware"
	"github.com/easytravel/easytravel-server/internal/api/http/router"
	httpServer "github.com/easytravel/easytravel-server/internal/api/http/server"
	"github.com/easytravel/easytravel-server/internal/cache/redis"
	"github.com/easytravel/easytravel-server/internal/config"
	"github.com/easytravel/easytravel-server/internal/identity"
	"github.com/easytravel/easytravel-server/internal/logger"
	"github.com/easytravel/easytravel-server/internal/model"
	"github.com/easytravel/easytravel-server/internal/password"
	"github.com/easytravel/easytravel-server/internal/repository/postgres"
	"github.com/easytravel/easytravel-server/internal/server"
	"github.com/easytravel/easytravel-server/internal/service"
	storage "github.com/easytravel/easytravel-server/internal/storage/minio"
	"github.com/easytravel/easytravel-server/internal/token"
	"github.com/easytravel/easytravel-server/internal/tripplanner/gemini"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	postRepo := postgres.NewPostRepository(db)
	commentRepo := postgres.NewCommentRepository(db)

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	if err != nil {
		logger.Fatal("failed to initialize token manager", "error", err)
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	verifier, err := identity.NewGoogleVerifier(cfg.Google.ClientID)
	if err != nil {
		logger.Fatal("failed to initialize identity verifier", "error", err)
	}

	planner, err := gemini.NewClient(cfg.Gemini.BaseURL, cfg.Gemini.Model, cfg.Gemini.APIKey)
	if err != nil {
		logger.Fatal("failed to initialize trip planner", "error", err)
	}

	redisClient := goredis.NewClient(&goredis.Options{Addr: cfg.Redis.Addr})
	defer redisClient.Close()
	tripCache := redis.NewTripCache(redisClient)

	hasher := password.NewBcrypt(0)
	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, userRepo, cfg.JWT.RefreshTTL, logger)
	authService := service.NewAuth(userRepo, hasher, verifier, storageClient, tokenService, logger)
	postService := service.NewPost(postRepo, userRepo, storageClient, logger)
	commentService := service.NewComment(commentRepo, postRepo, logger)
	tripService := service.NewTrip(planner, tripCache, cfg.Redis.TripTTL, logger)

	ctxMgr := httpctx.NewManager()
	authenticate := middleware.NewAuthenticate(tokenService, ctxMgr, logger)
	logging := middleware.NewLogging(logger)

	handlers := router.Handlers{
		Auth:    handler.NewAuth(authService, tokenService, ctxMgr, logger),
		User:    handler.NewUser(authService, ctxMgr, logger),
		Post:    handler.NewPost(postService, ctxMgr, logger),
		Comment: handler.NewComment(commentService, ctxMgr, logger),
		Trip:    handler.NewTrip(tripService, logger),
		Image:   handler.NewImage(storageClient, logger),
	}

	srv := httpServer.NewHTTPServer(
		router.New(handlers, authenticate, logging),
		fmt.Sprintf(":%s", cfg.HTTP.Port),
	)

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
