package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"devtutor/cmd/fx/account_fx"
	"devtutor/cmd/fx/chatbot_fx"
	"devtutor/cmd/fx/conversation_fx"
	"devtutor/cmd/fx/db_fx"
	"devtutor/internal/api/controllers"
	"devtutor/internal/models/db_models"
	"devtutor/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		chatbot_fx.Module,
		account_fx.Module,
		conversation_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(RunMigrations),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func RunMigrations(db *gorm.DB) {
	err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.Conversation{},
		&db_models.Message{},
		&db_models.Document{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	conversationController *controllers.ConversationController,
	chatController *controllers.ChatController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, conversationController, chatController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	conversationController *controllers.ConversationController,
	chatController *controllers.ChatController) {

	authGroup := r.Group("/auth")
	authGroup.POST("/register", accountController.RegisterHandler)
	authGroup.POST("/login", accountController.LoginHandler)
	authGroup.GET("/me", middleware.JWTAuthMiddleware(), accountController.MeHandler)

	conversationGroup := r.Group("/conversations")
	conversationGroup.Use(middleware.JWTAuthMiddleware())
	conversationGroup.POST("", conversationController.CreateHandler)
	conversationGroup.GET("", conversationController.ListHandler)
	conversationGroup.GET("/:id/messages", conversationController.MessagesHandler)

	chatGroup := r.Group("/chat")
	chatGroup.Use(middleware.JWTAuthMiddleware())
	chatGroup.POST("/send", chatController.SendHandler)

	documentGroup := r.Group("/documents")
	documentGroup.Use(middleware.JWTAuthMiddleware())
	documentGroup.POST("", chatController.AddDocumentHandler)
}
