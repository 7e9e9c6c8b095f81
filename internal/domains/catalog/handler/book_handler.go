package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookocean-backend/internal/domains/catalog/model"
	"bookocean-backend/internal/domains/catalog/service"
	"bookocean-backend/internal/shared/response"
	"bookocean-backend/pkg/logger"
)

// Handler - HTTP Handler cho catalog
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListCategories - GET /category
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Get categories successfully", categories)
}

// ListBooks - GET /books
// Every query param is an equality predicate, e.g. ?category=Sci-Fi&quantity=0
func (h *Handler) ListBooks(c *gin.Context) {
	filter, err := model.ParseBookFilter(c.Request.URL.Query())
	if err != nil {
		handleError(c, err)
		return
	}

	books, err := h.service.ListBooks(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Get books successfully", books)
}

// GetBook - GET /books/:id
func (h *Handler) GetBook(c *gin.Context) {
	book, err := h.service.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Get book successfully", book)
}

// ListImages - GET /images
func (h *Handler) ListImages(c *gin.Context) {
	images, err := h.service.ListImages(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Get images successfully", images)
}

// AddBook - POST /books
func (h *Handler) AddBook(c *gin.Context) {
	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	book, err := h.service.AddBook(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Book added successfully", book)
}

// UpdateBook - PUT /books/:id
// Full replace, quantity included
func (h *Handler) UpdateBook(c *gin.Context) {
	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	ack, err := h.service.UpdateBook(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Book updated successfully", ack)
}

// BorrowCopy - PATCH /books/:id/borrow
func (h *Handler) BorrowCopy(c *gin.Context) {
	h.adjust(c, -1, "Book borrowed successfully")
}

// ReturnCopy - PATCH /books/:id/return
func (h *Handler) ReturnCopy(c *gin.Context) {
	h.adjust(c, 1, "Book returned successfully")
}

func (h *Handler) adjust(c *gin.Context, delta int, message string) {
	book, err := h.service.AdjustQuantity(c.Request.Context(), c.Param("id"), delta)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, message, book)
}

// handleError maps catalog errors to HTTP statuses
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, "Book not found")
	case errors.Is(err, model.ErrInvalidBookID):
		response.BadRequest(c, "Invalid book id", nil)
	case errors.Is(err, model.ErrInvalidFilter):
		response.BadRequest(c, "Invalid filter", err.Error())
	case errors.Is(err, model.ErrInvalidBook):
		response.BadRequest(c, "Validation failed", err.Error())
	case errors.Is(err, model.ErrOutOfStock):
		response.Conflict(c, "No copies available")
	default:
		logger.ErrorWithFields("Catalog request failed", err, map[string]interface{}{
			"path": c.Request.URL.Path,
		})
		response.InternalServerError(c)
	}
}
