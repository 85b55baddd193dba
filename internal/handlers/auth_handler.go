// Package handlers はサービスの結果をHTTPレスポンスへ対応づけます。
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-todo-portal/internal/models"
	"go-todo-portal/internal/repositories"
	"go-todo-portal/internal/services"
)

// AuthHandler は認証関連のハンドラーを管理します。
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler は新しいAuthHandlerを作成します。
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupHandler はユーザー登録を処理します。
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	user, err := h.authService.Signup(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// LoginHandler はユーザーログインを処理します。
//
// すでに誰かがログイン中の場合はリクエストボディを検査せずに409を返すため、
// バインドはゲート判定の後では行えません。サービス側がゲートを先に見る
// 契約なので、ここではボディのバインド失敗も資格情報エラーと同列に扱わず、
// まず最低限のデコードだけを行います。
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	// ゲートが閉じている場合は中身がデタラメでも弾かれない必要があるため、
	// バリデーションエラーはそのままサービスへ渡します。
	_ = c.ShouldBindJSON(&req)

	result, err := h.authService.Login(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyLoggedIn):
			c.JSON(http.StatusConflict, gin.H{"message": "User is already logged in"})
		case errors.Is(err, repositories.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("User with the name %s does not exists", req.Name)})
		case errors.Is(err, services.ErrWrongPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// LogoutHandler はログアウトを処理します。常に成功レスポンスを返します。
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	message := h.authService.Logout()
	c.JSON(http.StatusOK, gin.H{"message": message})
}
