package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"

	"go-todo-portal/internal/models"
)

var (
	// ErrTodoNotFound はTodoが見つからない場合のエラーです。
	ErrTodoNotFound = errors.New("todo not found")
	// ErrDuplicateTitle はタイトルのユニーク制約違反を表します。
	ErrDuplicateTitle = errors.New("duplicate title")
)

// isDuplicateEntry はドライバ固有のユニーク制約違反エラーを判定します。
// 本番はMySQL (エラーコード1062)、テストはSQLiteで動くため両方を見ます。
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return true
	}
	return false
}

// TodoRepository はTodoのデータベース操作を行うための構造体です。
type TodoRepository struct {
	DB *sql.DB
}

// NewTodoRepository は新しいTodoRepositoryインスタンスを作成します。
func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{DB: db}
}

// Create は新しいTodoをデータベースに挿入します。
// タイトルが既存のTodoと重複している場合は ErrDuplicateTitle を返します。
func (r *TodoRepository) Create(t *models.Todo) (*models.Todo, error) {
	query := "INSERT INTO todos (title) VALUES (?)"
	result, err := r.DB.Exec(query, t.Title)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, ErrDuplicateTitle
		}
		log.Printf("Failed to insert todo: %v", err)
		return nil, fmt.Errorf("could not insert todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	t.ID = int(id)

	return r.FindByID(t.ID)
}

// FindAllWithItems はすべてのTodoを、それぞれのTodoItemを添えて取得します。
// 一覧APIのレスポンスをひとつの論理呼び出しで組み立てます。
func (r *TodoRepository) FindAllWithItems() ([]*models.Todo, error) {
	rows, err := r.DB.Query("SELECT id, title, created_at, updated_at FROM todos ORDER BY id")
	if err != nil {
		log.Printf("Failed to query todos: %v", err)
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer rows.Close()

	var todos []*models.Todo
	byID := make(map[int]*models.Todo)
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("could not scan todo: %w", err)
		}
		t.Items = []*models.TodoItem{} // アイテムなしでも null ではなく [] を返す
		todos = append(todos, &t)
		byID[t.ID] = &t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	itemRows, err := r.DB.Query("SELECT id, content, completed, to_do_id, created_at, updated_at FROM todo_items ORDER BY id")
	if err != nil {
		log.Printf("Failed to query todo items: %v", err)
		return nil, fmt.Errorf("could not query todo items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.TodoItem
		if err := itemRows.Scan(&item.ID, &item.Content, &item.Completed, &item.TodoID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("could not scan todo item: %w", err)
		}
		if parent, ok := byID[item.TodoID]; ok {
			parent.Items = append(parent.Items, &item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todo items: %w", err)
	}

	return todos, nil
}

// FindByID は指定されたIDのTodoを取得します。
func (r *TodoRepository) FindByID(id int) (*models.Todo, error) {
	query := "SELECT id, title, created_at, updated_at FROM todos WHERE id = ?"

	var t models.Todo
	err := r.DB.QueryRow(query, id).Scan(&t.ID, &t.Title, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		log.Printf("Failed to query todo by ID: %v", err)
		return nil, fmt.Errorf("could not query todo: %w", err)
	}

	return &t, nil
}

// UpdateTitle は指定されたIDのTodoのタイトルを上書きします。
func (r *TodoRepository) UpdateTitle(id int, title string) (*models.Todo, error) {
	result, err := r.DB.Exec("UPDATE todos SET title = ? WHERE id = ?", title, id)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, ErrDuplicateTitle
		}
		log.Printf("Failed to update todo: %v", err)
		return nil, fmt.Errorf("could not update todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// タイトルが同じ値でもMySQLは0を返すので先に存在を確認する
		if _, err := r.FindByID(id); err != nil {
			return nil, err
		}
	}

	return r.FindByID(id)
}

// Delete は指定されたIDのTodoを、所有するTodoItemごと削除します。
// アイテムとTodoの削除はひとつのトランザクションで行い、
// 「Todoは消えたがアイテムが残っている」状態を他の読み手に見せません。
func (r *TodoRepository) Delete(id int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM todo_items WHERE to_do_id = ?", id); err != nil {
		log.Printf("Failed to delete todo items: %v", err)
		return fmt.Errorf("could not delete todo items: %w", err)
	}

	result, err := tx.Exec("DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		log.Printf("Failed to delete todo: %v", err)
		return fmt.Errorf("could not delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTodoNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}
