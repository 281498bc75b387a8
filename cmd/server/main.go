package main

import (
	"context"
	"log"
	"net/http"

	"consigne/docs"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"consigne/internal/auth"
	"consigne/internal/cache"
	"consigne/internal/config"
	"consigne/internal/db"
	"consigne/internal/handler"
	"consigne/internal/model"
	"consigne/internal/repository"
	"consigne/internal/router"
	"consigne/internal/service"
	"consigne/internal/storage"
)

// @title Consigne API
// @version 1.0
// @description Admin backend for reusable-bottle collection: users, materials, bottles, passages and orders, with JWT authentication and role gating.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Address{},
		&model.User{},
		&model.Material{},
		&model.Bottle{},
		&model.Passage{},
		&model.Order{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("redis unavailable, running without cache: %v", err)
	}

	fileStore, err := storage.NewFileStore(cfg.MaterialFilesPath)
	if err != nil {
		log.Fatalf("file store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	materialRepo := repository.NewMaterialRepository(gormDB)
	bottleRepo := repository.NewBottleRepository(gormDB)
	passageRepo := repository.NewPassageRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	mailer := service.NewSMTPMailer(cfg)

	// Initialize services
	userService := service.NewUserService(userRepo, cacheClient)
	authService := service.NewAuthService(userRepo, userService, jwtService, tokenStore, mailer)
	collecteService := service.NewCollecteService(userRepo)
	materialService := service.NewMaterialService(materialRepo, fileStore)
	bottleService := service.NewBottleService(bottleRepo, materialRepo)
	passageService := service.NewPassageService(passageRepo, userRepo, collecteService)
	orderService := service.NewOrderService(orderRepo, bottleRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	collecteHandler := handler.NewCollecteHandler(collecteService)
	materialHandler := handler.NewMaterialHandler(materialService)
	bottleHandler := handler.NewBottleHandler(bottleService)
	passageHandler := handler.NewPassageHandler(passageService)
	orderHandler := handler.NewOrderHandler(orderService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		collecteHandler,
		materialHandler,
		bottleHandler,
		passageHandler,
		orderHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
