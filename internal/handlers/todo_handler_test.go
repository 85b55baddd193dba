package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo-portal/internal/models"
	"go-todo-portal/testutil"
)

func TestCreateTodoHandler_Success(t *testing.T) {
	db, r := testutil.SetupTestDB(t)

	w := testutil.DoJSON(t, r, http.MethodPost, "/api/todos", models.CreateTodoRequest{Content: "Groceries"})

	require.Equal(t, http.StatusCreated, w.Code, "Expected HTTP Status Code 201 Created")

	var created models.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID, "Expected a non-zero Todo ID")
	assert.Equal(t, "Groceries", created.Title, "Request content becomes the title")

	var dbTitle string
	require.NoError(t, db.QueryRow("SELECT title FROM todos WHERE id = ?", created.ID).Scan(&dbTitle))
	assert.Equal(t, "Groceries", dbTitle)
}

func TestCreateTodoHandler_DuplicateTitleConflict(t *testing.T) {
	_, r := testutil.SetupTestDB(t)

	testutil.CreateTestTodo(t, r, "Groceries")

	w := testutil.DoJSON(t, r, http.MethodPost, "/api/todos", models.CreateTodoRequest{Content: "Groceries"})

	require.Equal(t, http.StatusConflict, w.Code, "Duplicate title must be a conflict, not a generic failure")
	assert.Contains(t, w.Body.String(), "todo with title Groceries already exists")
}

func TestListTodosHandler_IncludesItems(t *testing.T) {
	_, r := testutil.SetupTestDB(t)

	todo1 := testutil.CreateTestTodo(t, r, "Groceries")
	todo2 := testutil.CreateTestTodo(t, r, "Chores")
	testutil.CreateTestItem(t, r, todo1.ID, "Milk")
	testutil.CreateTestItem(t, r, todo1.ID, "Bread")

	w := testutil.DoJSON(t, r, http.MethodGet, "/api/todos", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var todos []*models.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todos))
	require.Len(t, todos, 2)

	assert.Equal(t, todo1.ID, todos[0].ID)
	require.Len(t, todos[0].Items, 2, "Items must come back eagerly attached")
	assert.Equal(t, "Milk", todos[0].Items[0].Content)
	assert.Equal(t, "Bread", todos[0].Items[1].Content)

	assert.Equal(t, todo2.ID, todos[1].ID)
	assert.Empty(t, todos[1].Items)
	assert.Contains(t, w.Body.String(), `"items":[]`, "A todo without items serializes an empty array")
}

func TestGetTodoHandler(t *testing.T) {
	_, r := testutil.SetupTestDB(t)

	created := testutil.CreateTestTodo(t, r, "Groceries")

	w := testutil.DoJSON(t, r, http.MethodGet, fmt.Sprintf("/api/todos/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var found models.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Groceries", found.Title)
}

func TestGetTodoHandler_NotFound(t *testing.T) {
	_, r := testutil.SetupTestDB(t)

	w := testutil.DoJSON(t, r, http.MethodGet, "/api/todos/999", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Todo not found")
}

func TestUpdateTodoHandler(t *testing.T) {
	_, r := testutil.SetupTestDB(t)

	created := testutil.CreateTestTodo(t, r, "Groceries")

	w := testutil.DoJSON(t, r, http.MethodPut, fmt.Sprintf("/api/todos/%d", created.ID), models.UpdateTodoRequest{Title: "Weekend Groceries"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Weekend Groceries", updated.Title)
}

func TestUpdateTodoHandler_NotFound(t *testing.T) {
	_, r := testutil.SetupTestDB(t)

	w := testutil.DoJSON(t, r, http.MethodPut, "/api/todos/999", models.UpdateTodoRequest{Title: "whatever"})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Todo not found")
}

func TestDeleteTodoHandler_CascadesToItems(t *testing.T) {
	db, r := testutil.SetupTestDB(t)

	todo := testutil.CreateTestTodo(t, r, "Groceries")
	item1 := testutil.CreateTestItem(t, r, todo.ID, "Milk")
	item2 := testutil.CreateTestItem(t, r, todo.ID, "Bread")

	w := testutil.DoJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/todos/%d", todo.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Todo deleted")

	// 一覧から消えている
	w = testutil.DoJSON(t, r, http.MethodGet, "/api/todos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var todos []*models.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todos))
	assert.Empty(t, todos)

	// アイテムも個別参照できない（孤児が残らない）
	for _, itemID := range []int{item1.ID, item2.ID} {
		w = testutil.DoJSON(t, r, http.MethodGet, fmt.Sprintf("/api/todos/%d/items/%d", todo.ID, itemID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code, "Cascade delete must not leave orphan items")
	}

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM todo_items WHERE to_do_id = ?", todo.ID).Scan(&count))
	assert.Zero(t, count, "No rows may still reference the deleted todo")
}

func TestDeleteTodoHandler_NotFound(t *testing.T) {
	_, r := testutil.SetupTestDB(t)

	w := testutil.DoJSON(t, r, http.MethodDelete, "/api/todos/999", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Todo not found")
}
