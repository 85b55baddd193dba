package services

import (
	"go-todo-portal/internal/models"
	"go-todo-portal/internal/repositories"
)

// ItemService はTodoItem関連のビジネスロジックを扱います。
type ItemService struct {
	itemRepo *repositories.ItemRepository
}

// NewItemService は新しいItemServiceを作成します。
func NewItemService(itemRepo *repositories.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// Create は指定された親Todoの下に未完了のアイテムを作成します。
// 親の存在確認はリポジトリ同様ここでも行いません。
func (s *ItemService) Create(todoID int, content string) (*models.TodoItem, error) {
	return s.itemRepo.Create(&models.TodoItem{
		Content:   content,
		Completed: false,
		TodoID:    todoID,
	})
}

// Get は指定IDのアイテムを返します。親TodoのIDでは絞り込みません。
func (s *ItemService) Get(itemID int) (*models.TodoItem, error) {
	return s.itemRepo.FindByID(itemID)
}

// Update は指定IDのアイテムを更新します。
//
// contentとtoDoIdは常に書き込まれます。リクエストにtoDoIdが無い（または0の）
// 場合、toDoIdには「アイテム自身のID」が書き込まれます。元のシステムが
// `req.body.toDoId || req.params.iid` としていた挙動の互換です。
// completedはリクエストに含まれていた場合のみ書き込まれます。
func (s *ItemService) Update(itemID int, req models.UpdateItemRequest) (*models.TodoItem, error) {
	todoID := itemID
	if req.TodoID != nil && *req.TodoID != 0 {
		todoID = *req.TodoID
	}
	return s.itemRepo.Update(itemID, req.Content, todoID, req.Completed)
}

// Delete は指定IDのアイテムを削除します。
func (s *ItemService) Delete(id int) error {
	return s.itemRepo.Delete(id)
}
