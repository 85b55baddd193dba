package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-todo-portal/internal/models"
	"go-todo-portal/internal/repositories"
	"go-todo-portal/internal/services"
)

// ItemHandler はTodoItem関連のハンドラーを管理します。
type ItemHandler struct {
	itemService *services.ItemService
}

// NewItemHandler は新しいItemHandlerを作成します。
func NewItemHandler(itemService *services.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// CreateItemHandler はパスで指定されたTodoの下に新しいアイテムを作成します。
// 親Todoが実在するかどうかはここでは確認しません。
func (h *ItemHandler) CreateItemHandler(c *gin.Context) {
	todoID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	createdItem, err := h.itemService.Create(todoID, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusCreated, createdItem)
}

// GetItemHandler は指定IDのアイテムを返します。検索はアイテムIDのみで、
// パスの親Todo ID (:id) では絞り込みません。
func (h *ItemHandler) GetItemHandler(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("iid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	item, err := h.itemService.Get(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo ITEM not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItemHandler は指定IDのアイテムを更新します。
func (h *ItemHandler) UpdateItemHandler(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("iid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	updatedItem, err := h.itemService.Update(itemID, req)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo ITEM not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, updatedItem)
}

// DeleteItemHandler はアイテムを削除します。
//
// 削除キーはアイテムID (:iid) ではなく外側のパスID (:id) です。元のシステムの
// ルート定義がそうなっており、互換性のためそのまま引き継いでいます。
func (h *ItemHandler) DeleteItemHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.itemService.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Todo ITEM not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo ITEM deleted"})
}
