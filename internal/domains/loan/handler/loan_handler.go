package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalog "bookocean-backend/internal/domains/catalog/model"
	"bookocean-backend/internal/domains/loan/model"
	"bookocean-backend/internal/domains/loan/service"
	"bookocean-backend/internal/shared/response"
	"bookocean-backend/pkg/logger"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateLoan - POST /borrowed
// Records the loan only; the client adjusts quantity separately.
func (h *Handler) CreateLoan(c *gin.Context) {
	var req model.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	loan, err := h.service.CreateLoan(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Loan recorded", loan)
}

// ListForBorrower - GET /borrowed/:email
// Guarded by Authenticate + RequireOwner in the router.
func (h *Handler) ListForBorrower(c *gin.Context) {
	loans, err := h.service.ListLoansForBorrower(c.Request.Context(), c.Param("email"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Get borrowed books successfully", loans)
}

// DeleteLoan - DELETE /borrowed/:id
func (h *Handler) DeleteLoan(c *gin.Context) {
	ack, err := h.service.DeleteLoan(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Loan deleted", ack)
}

// Borrow - POST /borrow
func (h *Handler) Borrow(c *gin.Context) {
	var req model.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.service.Borrow(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Book borrowed", result)
}

// Return - POST /return/:id
func (h *Handler) Return(c *gin.Context) {
	result, err := h.service.Return(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Book returned", result)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrLoanNotFound):
		response.NotFound(c, "Loan not found")
	case errors.Is(err, catalog.ErrBookNotFound):
		response.NotFound(c, "Book not found")
	case errors.Is(err, model.ErrInvalidLoanID):
		response.BadRequest(c, "Invalid loan id", nil)
	case errors.Is(err, catalog.ErrInvalidBookID):
		response.BadRequest(c, "Invalid book id", nil)
	case errors.Is(err, model.ErrInvalidLoan):
		response.BadRequest(c, "Validation failed", err.Error())
	case errors.Is(err, catalog.ErrOutOfStock):
		response.Conflict(c, "No copies available")
	default:
		logger.ErrorWithFields("Loan request failed", err, map[string]interface{}{
			"path": c.Request.URL.Path,
		})
		response.InternalServerError(c)
	}
}
