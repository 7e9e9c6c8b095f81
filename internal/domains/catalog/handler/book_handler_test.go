package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookocean-backend/internal/domains/catalog/model"
	"bookocean-backend/internal/domains/catalog/repository"
	"bookocean-backend/internal/domains/catalog/service"
	"bookocean-backend/pkg/cache"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func setupRouter(t *testing.T) (*gin.Engine, service.ServiceInterface) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewService(repository.NewMemoryRepository(), cache.Noop{}, time.Minute)
	h := NewHandler(svc)

	r := gin.New()
	r.GET("/category", h.ListCategories)
	r.GET("/books", h.ListBooks)
	r.GET("/books/:id", h.GetBook)
	r.GET("/images", h.ListImages)
	r.POST("/books", h.AddBook)
	r.PUT("/books/:id", h.UpdateBook)
	r.PATCH("/books/:id/borrow", h.BorrowCopy)
	r.PATCH("/books/:id/return", h.ReturnCopy)
	return r, svc
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestBookHandler_AddGetAdjust(t *testing.T) {
	r, _ := setupRouter(t)

	w, env := do(t, r, http.MethodPost, "/books", model.BookRequest{
		Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi", Quantity: 1, Rating: 4.8,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Book
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, env = do(t, r, http.MethodGet, "/books/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got model.Book
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, created, got)

	w, env = do(t, r, http.MethodPatch, "/books/"+created.ID+"/borrow", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 0, got.Quantity)

	w, env = do(t, r, http.MethodPatch, "/books/"+created.ID+"/return", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 1, got.Quantity)
}

func TestBookHandler_ErrorMapping(t *testing.T) {
	r, _ := setupRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"malformed id", http.MethodGet, "/books/xyz", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"missing book", http.MethodGet, "/books/6f1c2a52-8d0e-4c57-9a5f-2b1b8c8f0e11", nil, http.StatusNotFound, "NOT_FOUND"},
		{"unknown filter field", http.MethodGet, "/books?$where=1", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"ill-typed filter", http.MethodGet, "/books?quantity=many", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"invalid payload", http.MethodPost, "/books", model.BookRequest{Title: "No category"}, http.StatusBadRequest, "BAD_REQUEST"},
		{"borrow missing book", http.MethodPatch, "/books/6f1c2a52-8d0e-4c57-9a5f-2b1b8c8f0e11/borrow", nil, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestBookHandler_ListAndCategories(t *testing.T) {
	r, _ := setupRouter(t)
	for _, b := range []model.BookRequest{
		{Title: "Dune", Category: "Sci-Fi", Quantity: 1},
		{Title: "Emma", Category: "Classic", Quantity: 0},
		{Title: "Hyperion", Category: "Sci-Fi", Quantity: 2},
	} {
		w, _ := do(t, r, http.MethodPost, "/books", b)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	_, env := do(t, r, http.MethodGet, "/books?category=Sci-Fi", nil)
	var books []model.Book
	require.NoError(t, json.Unmarshal(env.Data, &books))
	assert.Len(t, books, 2)

	_, env = do(t, r, http.MethodGet, "/books?quantity=0", nil)
	require.NoError(t, json.Unmarshal(env.Data, &books))
	require.Len(t, books, 1)
	assert.Equal(t, "Emma", books[0].Title)

	_, env = do(t, r, http.MethodGet, "/category", nil)
	var categories []string
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	assert.Equal(t, []string{"Sci-Fi", "Classic"}, categories)
}
