// Package testutil はハンドラーテスト用のセットアップヘルパーを提供します。
package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"go-todo-portal/internal/models"
	"go-todo-portal/internal/repositories"
	"go-todo-portal/internal/routes"
)

// TestUserName / TestUserPassword はSetupTestDBが投入するテストユーザーです。
const (
	TestUserName     = "vaggelis"
	TestUserPassword = "mypassword"
)

// SetupTestDB はテスト用のインメモリSQLiteデータベースを作成し、
// テーブルとテストユーザーを投入したうえでルーターを組み立てます。
// テストごとに独立したデータベースになります。
func SetupTestDB(t *testing.T) (*sql.DB, *gin.Engine) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "Failed to open sqlite database")
	// インメモリDBはコネクションごとに別物になるため1本に固定する
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema := []string{
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE todos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE todo_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			content TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			to_do_id INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, stmt := range schema {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "Failed to create table")
	}

	// テストユーザーの挿入
	userRepo := repositories.NewUserRepository(db)
	hashedPassword, err := repositories.HashPassword(TestUserPassword)
	require.NoError(t, err)
	_, err = userRepo.Create(&models.User{Name: TestUserName, PasswordHash: hashedPassword})
	require.NoError(t, err, "Failed to create test user")

	r := routes.SetupRouter(db)
	return db, r
}

// DoJSON はJSONボディ付きのリクエストをルーターに投げ、レコーダーを返します。
func DoJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Login はテストユーザーでログインし、発行されたトークンを返します。
func Login(t *testing.T, r *gin.Engine, name, password string) string {
	t.Helper()

	w := DoJSON(t, r, http.MethodPost, "/api/auth/login", models.LoginRequest{Name: name, Password: password})
	require.Equal(t, http.StatusOK, w.Code, "Login should succeed")

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token, "Login response should contain a token")
	return resp.Token
}

// Logout はログアウトしてゲートを解放します。
func Logout(t *testing.T, r *gin.Engine) {
	t.Helper()
	w := DoJSON(t, r, http.MethodGet, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

// CreateTestTodo はTodoを作成して返します。
func CreateTestTodo(t *testing.T, r *gin.Engine, content string) *models.Todo {
	t.Helper()

	w := DoJSON(t, r, http.MethodPost, "/api/todos", models.CreateTodoRequest{Content: content})
	require.Equal(t, http.StatusCreated, w.Code, "Failed to create test todo")

	var created models.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return &created
}

// CreateTestItem は指定Todoの下にアイテムを作成して返します。
func CreateTestItem(t *testing.T, r *gin.Engine, todoID int, content string) *models.TodoItem {
	t.Helper()

	path := fmt.Sprintf("/api/todos/%d/items", todoID)
	w := DoJSON(t, r, http.MethodPost, path, models.CreateItemRequest{Content: content})
	require.Equal(t, http.StatusCreated, w.Code, "Failed to create test todo item")

	var created models.TodoItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return &created
}
