package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"shortform-server/config"
	_ "shortform-server/docs"
	"shortform-server/internal/handler"
	"shortform-server/internal/ports"
	"shortform-server/internal/repository"
	"shortform-server/internal/security"
	"shortform-server/internal/service"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Shortform-server
// @version 1.0
// @description REST API платформы коротких видео

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	hashtagRepo := repository.NewHashtagRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	credentialRepo := repository.NewCredentialRepository(redisClient)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	jwtService := security.NewJWTService(&cfg.JWT)
	authService := service.NewAuthenticationService(credentialRepo, cfg, jwtService, userRepo)
	userService := service.NewUserService(userRepo)
	videoService := service.NewVideoService(
		videoRepo,
		hashtagRepo,
		likeRepo,
		recordRepo,
		userRepo,
		credentialRepo,
		s3Service,
		time.Duration(cfg.View.DedupWindow)*time.Second,
		time.Duration(cfg.TTL.S3PresignedURL)*time.Second,
	)
	recommendationService := service.NewRecommendationService(videoRepo, hashtagRepo, recordRepo, ports.PassThroughRanker, cfg.View.RecentLimit)

	authHandler := handler.NewAuthenticationHandler(authService, jwtService)
	userHandler := handler.NewUserHandler(userService)
	videoHandler := handler.NewVideoHandler(videoService, recommendationService)

	router.Use(config.DBMiddleware(db))
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler, jwtService, credentialRepo, cfg)
	setupUserRoutes(router, userHandler, jwtService, credentialRepo, cfg)
	setupVideoRoutes(router, videoHandler, jwtService, credentialRepo, cfg)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, jwtService *security.JWTService, credentialRepo *repository.CredentialRepository, cfg *config.AppConfig) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), credentialRepo, jwtService))
			r.Get("/me", h.Me)
			r.Delete("/signout", h.SignOut)
		})
		r.Group(func(r chi.Router) {
			r.Post("/", h.Login)
			// reissue принимает и просроченный access токен, logout
			// валидирует токен сам - обе ручки вне middleware
			r.Post("/reissue", h.Reissue)
			r.Delete("/logout", h.Logout)
		})
	})
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler, jwtService *security.JWTService, credentialRepo *repository.CredentialRepository, cfg *config.AppConfig) {
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.SignUp)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), credentialRepo, jwtService))
			r.Get("/{uuid}", h.GetProfile)
		})
	})
}

func setupVideoRoutes(r chi.Router, h *handler.VideoHandler, jwtService *security.JWTService, credentialRepo *repository.CredentialRepository, cfg *config.AppConfig) {
	r.Route("/api/videos", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), credentialRepo, jwtService))
		r.Post("/", h.Upload)
		r.Get("/my", h.MyVideos)
		r.Get("/recent", h.Recent)

		r.Route("/{video_id}", func(r chi.Router) {
			r.Get("/", h.Detail)
			r.Post("/like", h.Like)
			r.Get("/concern", h.Concern)
		})
	})

	r.Get("/public/hashtags", h.Tags)

	r.Route("/public/videos", func(r chi.Router) {
		r.Get("/", h.Main)
		r.Get("/search", h.Search)
		r.Get("/{video_id}", h.PublicDetail)
		r.Get("/{video_id}/related", h.Related)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
