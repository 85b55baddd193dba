package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"go-todo-portal/internal/models"
)

// ErrItemNotFound はTodoItemが見つからない場合のエラーです。
var ErrItemNotFound = errors.New("todo item not found")

// ItemRepository はTodoItemのデータベース操作を行うための構造体です。
type ItemRepository struct {
	DB *sql.DB
}

// NewItemRepository は新しいItemRepositoryインスタンスを作成します。
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{DB: db}
}

// Create は新しいTodoItemを指定された親Todoの下に挿入します。
// 親Todoの存在確認はここでは行いません。親の削除と競合した場合は
// 宙ぶらりんの外部キーを持つ行ができえますが、元の挙動を保っています。
func (r *ItemRepository) Create(item *models.TodoItem) (*models.TodoItem, error) {
	query := "INSERT INTO todo_items (content, completed, to_do_id) VALUES (?, ?, ?)"
	result, err := r.DB.Exec(query, item.Content, item.Completed, item.TodoID)
	if err != nil {
		log.Printf("Failed to insert todo item: %v", err)
		return nil, fmt.Errorf("could not insert todo item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	item.ID = int(id)

	return r.FindByID(item.ID)
}

// FindByID は指定されたIDのTodoItemを取得します。
// 検索キーはアイテムIDのみで、親TodoのIDでは絞り込みません。
func (r *ItemRepository) FindByID(id int) (*models.TodoItem, error) {
	query := "SELECT id, content, completed, to_do_id, created_at, updated_at FROM todo_items WHERE id = ?"

	var item models.TodoItem
	err := r.DB.QueryRow(query, id).Scan(&item.ID, &item.Content, &item.Completed, &item.TodoID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		log.Printf("Failed to query todo item by ID: %v", err)
		return nil, fmt.Errorf("could not query todo item: %w", err)
	}

	return &item, nil
}

// Update は指定されたIDのTodoItemを更新します。
// contentとto_do_idは常に書き込み、completedはポインタが非nilの場合のみ書き込みます。
func (r *ItemRepository) Update(id int, content string, todoID int, completed *bool) (*models.TodoItem, error) {
	var (
		result sql.Result
		err    error
	)
	if completed != nil {
		result, err = r.DB.Exec(
			"UPDATE todo_items SET content = ?, to_do_id = ?, completed = ? WHERE id = ?",
			content, todoID, *completed, id)
	} else {
		result, err = r.DB.Exec(
			"UPDATE todo_items SET content = ?, to_do_id = ? WHERE id = ?",
			content, todoID, id)
	}
	if err != nil {
		log.Printf("Failed to update todo item: %v", err)
		return nil, fmt.Errorf("could not update todo item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// 値が変わらない更新でもMySQLは0を返すため、存在確認で区別する
		if _, err := r.FindByID(id); err != nil {
			return nil, err
		}
	}

	return r.FindByID(id)
}

// Delete は指定されたIDのTodoItemを削除します。
func (r *ItemRepository) Delete(id int) error {
	result, err := r.DB.Exec("DELETE FROM todo_items WHERE id = ?", id)
	if err != nil {
		log.Printf("Failed to delete todo item: %v", err)
		return fmt.Errorf("could not delete todo item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}
