// Package routesはroutingを行います。
package routes

import (
	"database/sql"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-todo-portal/internal/handlers"
	"go-todo-portal/internal/repositories"
	"go-todo-portal/internal/services"
	"go-todo-portal/internal/session"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(db *sql.DB) *gin.Engine {
	r := gin.Default()

	// CORS対策
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = true
	r.Use(cors.New(config))
	r.Use(RequestID())
	r.Use(BearerClaims())

	// リポジトリ
	userRepo := repositories.NewUserRepository(db)
	todoRepo := repositories.NewTodoRepository(db)
	itemRepo := repositories.NewItemRepository(db)

	// サービス
	sessions := session.New()
	jwtService := services.NewJWTService()
	authService := services.NewAuthService(userRepo, sessions, jwtService)
	todoService := services.NewTodoService(todoRepo)
	itemService := services.NewItemService(itemRepo)

	// ハンドラー
	authHandler := handlers.NewAuthHandler(authService)
	todoHandler := handlers.NewTodoHandler(todoService)
	itemHandler := handlers.NewItemHandler(itemService)

	// ルーティング
	r.GET("/api/hello", HelloHandler)
	r.GET("/api/dbcheck", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database connection failed", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Database connection is healthy"})
	})

	r.POST("/api/signup", authHandler.SignupHandler)
	r.POST("/api/auth/login", authHandler.LoginHandler)
	r.GET("/api/auth/logout", authHandler.LogoutHandler)

	r.GET("/api/todos", todoHandler.ListTodosHandler)
	r.POST("/api/todos", todoHandler.CreateTodoHandler)
	r.GET("/api/todos/:id", todoHandler.GetTodoHandler)
	r.PUT("/api/todos/:id", todoHandler.UpdateTodoHandler)
	r.DELETE("/api/todos/:id", todoHandler.DeleteTodoHandler)

	r.POST("/api/todos/:id/items", itemHandler.CreateItemHandler)
	r.GET("/api/todos/:id/items/:iid", itemHandler.GetItemHandler)
	r.PUT("/api/todos/:id/items/:iid", itemHandler.UpdateItemHandler)
	r.DELETE("/api/todos/:id/items/:iid", itemHandler.DeleteItemHandler)

	return r
}

// HelloHandler はシンプルなヘルスチェックエンドポイントです。
func HelloHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from Go Backend!"})
}
