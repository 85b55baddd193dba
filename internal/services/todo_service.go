package services

import (
	"go-todo-portal/internal/models"
	"go-todo-portal/internal/repositories"
)

// TodoService はTodo関連のビジネスロジックを扱います。
type TodoService struct {
	todoRepo *repositories.TodoRepository
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(todoRepo *repositories.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

// List はすべてのTodoを、それぞれのアイテムを添えて返します。
func (s *TodoService) List() ([]*models.Todo, error) {
	return s.todoRepo.FindAllWithItems()
}

// Create は与えられたcontentをタイトルとして新しいTodoを作成します。
// タイトル重複は repositories.ErrDuplicateTitle で呼び出し側に伝わります。
func (s *TodoService) Create(content string) (*models.Todo, error) {
	return s.todoRepo.Create(&models.Todo{Title: content})
}

// Get は指定IDのTodoを返します。
func (s *TodoService) Get(id int) (*models.Todo, error) {
	return s.todoRepo.FindByID(id)
}

// Update は指定IDのTodoのタイトルを上書きします。
func (s *TodoService) Update(id int, title string) (*models.Todo, error) {
	return s.todoRepo.UpdateTitle(id, title)
}

// Delete は指定IDのTodoをアイテムごとカスケード削除します。
func (s *TodoService) Delete(id int) error {
	return s.todoRepo.Delete(id)
}
