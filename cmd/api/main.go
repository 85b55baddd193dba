package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"go-todo-portal/internal/database"
	"go-todo-portal/internal/routes"
)

func main() {
	// .env はローカル開発用。無くてもエラーにしない（本番は環境変数で渡す）
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db := database.InitDB()
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Fatal: Failed to migrate database: %v", err)
	}

	r := routes.SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server listening on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
