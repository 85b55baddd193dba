// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt" // パスワードのハッシュ化用

	"go-todo-portal/internal/models"
)

// UserRepository はユーザーのデータベース操作を行うための構造体です。
type UserRepository struct {
	DB *sql.DB
}

// NewUserRepository は新しいUserRepositoryインスタンスを作成します。
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// HashPassword は与えられたパスワードをbcryptでハッシュ化します。
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedPassword), nil
}

// VerifyPassword はハッシュ化されたパスワードと平文のパスワードを比較します。
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ErrUserNotFound はユーザーが見つからない場合のエラーです。
var ErrUserNotFound = errors.New("user not found")

// Create は新しいユーザーをデータベースに挿入します。
// 名前の重複チェックは行いません（signupは無条件に作成する仕様）。
func (r *UserRepository) Create(u *models.User) (*models.User, error) {
	query := "INSERT INTO users (name, password_hash) VALUES (?, ?)"
	result, err := r.DB.Exec(query, u.Name, u.PasswordHash)
	if err != nil {
		log.Printf("Failed to insert user: %v", err)
		return nil, fmt.Errorf("could not insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	u.ID = int(id)

	return u, nil
}

// FindByName は名前でユーザーを検索します。ログイン時の検索キーです。
func (r *UserRepository) FindByName(name string) (*models.User, error) {
	query := "SELECT id, name, password_hash, created_at, updated_at FROM users WHERE name = ?"
	var u models.User
	err := r.DB.QueryRow(query, name).Scan(
		&u.ID,
		&u.Name,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		log.Printf("Failed to query user by name: %v", err)
		return nil, fmt.Errorf("could not query user: %w", err)
	}
	return &u, nil
}
