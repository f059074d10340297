package app

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "alumnihub/docs"
	"alumnihub/internal/config"
	"alumnihub/internal/handlers"
	"alumnihub/internal/middleware"
	"alumnihub/internal/repositories"
	"alumnihub/internal/routes"
	"alumnihub/internal/services"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to the database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close the database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	rideRepo := repositories.NewRideRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	tokenService := services.NewTokenService(
		cfg.Auth.JWTSecret,
		cfg.Auth.SessionTokenTTL,
		cfg.Auth.ResetTokenTTL,
	)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	accountService := services.NewAccountService(
		userRepo, otpRepo, authService, tokenService, emailService, cfg.Auth.OTPTTL,
	)
	userService := services.NewUserService(userRepo, authService)
	rideService := services.NewRideService(rideRepo)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(accountService)
	userHandler := handlers.NewUserHandler(userService)
	rideHandler := handlers.NewRideHandler(rideService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, tokenService, authHandler, userHandler, rideHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
