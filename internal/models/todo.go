// Package modelsはTodoとTodoItemを定義します。
package models

import (
	"time"
)

// Todo は名前付きタスクリストを表します。タイトルはDB側でユニーク制約。
type Todo struct {
	ID        int         `json:"id,omitempty"`             // 主キー
	Title     string      `json:"title" binding:"required"` // リストのタイトル（必須・ユニーク）
	Items     []*TodoItem `json:"items"`                    // 所有するアイテム（一覧取得時にまとめて取得）
	CreatedAt time.Time   `json:"created_at"`               // 作成日時
	UpdatedAt time.Time   `json:"updated_at,omitempty"`     // 更新日時
}

// TodoItem はひとつのTodoに属する単一のタスクです。
type TodoItem struct {
	ID        int       `json:"id,omitempty"`               // 主キー
	Content   string    `json:"content" binding:"required"` // タスクの内容（必須）
	Completed bool      `json:"completed"`                  // 完了状態
	TodoID    int       `json:"toDoId"`                     // 親Todoへの外部キー
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// CreateTodoRequest はTodo作成リクエストの構造体です。
// contentフィールドがそのまま新しいTodoのタイトルになります。
type CreateTodoRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateTodoRequest はTodoタイトル更新リクエストの構造体です。
type UpdateTodoRequest struct {
	Title string `json:"title" binding:"required"`
}

// CreateItemRequest はTodoItem作成リクエストの構造体です。
type CreateItemRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateItemRequest はTodoItem更新リクエストの構造体です。
// CompletedとTodoIDはポインタで「未指定」と「ゼロ値」を区別します。
type UpdateItemRequest struct {
	Content   string `json:"content"`
	Completed *bool  `json:"completed"`
	TodoID    *int   `json:"toDoId"`
}
