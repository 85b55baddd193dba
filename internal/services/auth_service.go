package services

import (
	"errors"
	"fmt"
	"log"

	"go-todo-portal/internal/models"
	"go-todo-portal/internal/repositories"
	"go-todo-portal/internal/session"
)

var (
	// ErrAlreadyLoggedIn はログイン中に再度ログインしようとした場合のエラーです。
	ErrAlreadyLoggedIn = errors.New("user is already logged in")
	// ErrWrongPassword はパスワード不一致のエラーです。
	ErrWrongPassword = errors.New("wrong password")
)

// LoginResult はログイン成功時の結果です。
type LoginResult struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
	Token   string       `json:"token,omitempty"`
}

// AuthService はユーザー登録・ログイン・ログアウトを扱います。
type AuthService struct {
	userRepo *repositories.UserRepository
	sessions *session.State
	jwt      *JWTService
}

// NewAuthService は新しいAuthServiceを作成します。
func NewAuthService(userRepo *repositories.UserRepository, sessions *session.State, jwtService *JWTService) *AuthService {
	return &AuthService{userRepo: userRepo, sessions: sessions, jwt: jwtService}
}

// Signup は新しいユーザーを無条件に作成します。名前の重複チェックは行いません。
func (s *AuthService) Signup(req models.SignupRequest) (*models.User, error) {
	hashedPassword, err := repositories.HashPassword(req.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &models.User{
		Name:         req.Name,
		PasswordHash: hashedPassword,
	}
	createdUser, err := s.userRepo.Create(newUser)
	if err != nil {
		return nil, err
	}
	log.Printf("added user with name: %s", req.Name)
	return createdUser, nil
}

// Login はログインを処理します。
//
// 資格情報を確認する前にまずログインゲートを取得します。すでに誰かが
// ログイン中なら、渡された名前・パスワードを一切確認せずに
// ErrAlreadyLoggedIn を返します。ゲート取得後にユーザー検索・パスワード
// 照合が失敗してもゲートは解放しません。これは元のシステムの挙動を
// そのまま引き継いだ互換動作です。
func (s *AuthService) Login(req models.LoginRequest) (*LoginResult, error) {
	if !s.sessions.TryBegin() {
		log.Println("User is already logged in. Cant log in again!")
		return nil, ErrAlreadyLoggedIn
	}

	foundUser, err := s.userRepo.FindByName(req.Name)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			log.Printf("User with the name %s was not found", req.Name)
		}
		return nil, err
	}

	if err := repositories.VerifyPassword(foundUser.PasswordHash, req.Password); err != nil {
		return nil, ErrWrongPassword
	}

	token, err := s.jwt.GenerateToken(foundUser.ID, foundUser.Name)
	if err != nil {
		log.Printf("Failed to generate JWT token: %v", err)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Println("User logged in")
	return &LoginResult{
		Message: fmt.Sprintf("Welcome back %s!", foundUser.Name),
		User:    foundUser,
		Token:   token,
	}, nil
}

// Logout はログアウトを処理します。常に成功します。
func (s *AuthService) Logout() string {
	if !s.sessions.End() {
		log.Println("User is not logged in. Cant log out!")
		return "User is not logged in"
	}
	log.Println("User Logged out")
	return "User logged out"
}
