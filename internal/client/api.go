package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"go-todo-portal/internal/models"
	"go-todo-portal/internal/services"
)

// APIエラー。ステータスコードごとに呼び出し側が分岐できるようにします。
var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// API はタスクリストサービスの型付きHTTPクライアントです。
// SetTokenで設定されたトークンを以降のリクエストの
// Authorizationヘッダーに付与します。
type API struct {
	BaseURL string
	HTTP    *http.Client

	mu    sync.RWMutex
	token string
}

// NewAPI は新しいAPIクライアントを作成します。
func NewAPI(baseURL string) *API {
	return &API{BaseURL: baseURL, HTTP: &http.Client{}}
}

// SetToken は以降のリクエストに付与するベアラートークンを設定します。
// 空文字列を渡すとヘッダーは付与されなくなります。
func (a *API) SetToken(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
}

// Token は現在設定されているトークンを返します。
func (a *API) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// do はリクエストを送り、2xxならoutへデコードします。
func (a *API) do(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, a.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := a.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		msg := apiErr.Error
		if msg == "" {
			msg = apiErr.Message
		}
		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		case http.StatusConflict:
			return fmt.Errorf("%w: %s", ErrConflict, msg)
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		default:
			return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, msg)
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("could not decode response: %w", err)
		}
	}
	return nil
}

// Signup は新しいユーザーを登録します。
func (a *API) Signup(name, password string) (*models.User, error) {
	var u models.User
	err := a.do(http.MethodPost, "/api/signup", models.SignupRequest{Name: name, Password: password}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Login はログインし、成功時の結果（メッセージ・ユーザー・トークン）を返します。
func (a *API) Login(name, password string) (*services.LoginResult, error) {
	var result services.LoginResult
	err := a.do(http.MethodPost, "/api/auth/login", models.LoginRequest{Name: name, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout はログアウトし、サーバーからのメッセージを返します。
func (a *API) Logout() (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := a.do(http.MethodGet, "/api/auth/logout", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ListTodos はすべてのTodoをアイテム付きで取得します。
func (a *API) ListTodos() ([]*models.Todo, error) {
	var todos []*models.Todo
	if err := a.do(http.MethodGet, "/api/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// CreateTodo は新しいTodoを作成します。contentがタイトルになります。
func (a *API) CreateTodo(content string) (*models.Todo, error) {
	var t models.Todo
	err := a.do(http.MethodPost, "/api/todos", models.CreateTodoRequest{Content: content}, &t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTodo は指定IDのTodoを取得します。
func (a *API) GetTodo(id int) (*models.Todo, error) {
	var t models.Todo
	if err := a.do(http.MethodGet, fmt.Sprintf("/api/todos/%d", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTodo は指定IDのTodoのタイトルを上書きします。
func (a *API) UpdateTodo(id int, title string) (*models.Todo, error) {
	var t models.Todo
	err := a.do(http.MethodPut, fmt.Sprintf("/api/todos/%d", id), models.UpdateTodoRequest{Title: title}, &t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTodo は指定IDのTodoをアイテムごと削除します。
func (a *API) DeleteTodo(id int) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := a.do(http.MethodDelete, fmt.Sprintf("/api/todos/%d", id), nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// CreateItem は指定Todoの下に新しいアイテムを作成します。
func (a *API) CreateItem(todoID int, content string) (*models.TodoItem, error) {
	var item models.TodoItem
	err := a.do(http.MethodPost, fmt.Sprintf("/api/todos/%d/items", todoID), models.CreateItemRequest{Content: content}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItem は指定アイテムを取得します。
func (a *API) GetItem(todoID, itemID int) (*models.TodoItem, error) {
	var item models.TodoItem
	if err := a.do(http.MethodGet, fmt.Sprintf("/api/todos/%d/items/%d", todoID, itemID), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem は指定アイテムを部分更新します。
func (a *API) UpdateItem(todoID, itemID int, req models.UpdateItemRequest) (*models.TodoItem, error) {
	var item models.TodoItem
	if err := a.do(http.MethodPut, fmt.Sprintf("/api/todos/%d/items/%d", todoID, itemID), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem は指定アイテムを削除します。
func (a *API) DeleteItem(todoID, itemID int) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := a.do(http.MethodDelete, fmt.Sprintf("/api/todos/%d/items/%d", todoID, itemID), nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
