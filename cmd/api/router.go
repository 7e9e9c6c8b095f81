package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookocean-backend/internal/shared/middleware"
	"bookocean-backend/internal/shared/response"
	"bookocean-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigins),
	)

	authenticate := middleware.Authenticate(c.Gate, c.Config.JWT.CookieName)

	// mutations need a session unless AUTH_REQUIRE_FOR_MUTATIONS=false
	guard := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if c.Config.App.AuthRequireForMutations {
			return []gin.HandlerFunc{authenticate, h}
		}
		return []gin.HandlerFunc{h}
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "BookOcean Server running")
	})
	router.GET("/health", healthCheckHandler(c))

	setupCatalogRoutes(router, c, guard)
	setupLoanRoutes(router, c, guard, authenticate)
	setupSessionRoutes(router, c)

	return router
}

// ========================================
// CATALOG ROUTES
// ========================================
func setupCatalogRoutes(r *gin.Engine, c *container.Container, guard func(gin.HandlerFunc) []gin.HandlerFunc) {
	h := c.BookHandler

	r.GET("/category", h.ListCategories)
	r.GET("/images", h.ListImages)

	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBook)
		books.POST("", guard(h.AddBook)...)
		books.PUT("/:id", guard(h.UpdateBook)...)
		books.PATCH("/:id/borrow", guard(h.BorrowCopy)...)
		books.PATCH("/:id/return", guard(h.ReturnCopy)...)
	}
}

// ========================================
// LOAN ROUTES
// ========================================
func setupLoanRoutes(r *gin.Engine, c *container.Container, guard func(gin.HandlerFunc) []gin.HandlerFunc, authenticate gin.HandlerFunc) {
	h := c.LoanHandler

	borrowed := r.Group("/borrowed")
	{
		borrowed.POST("", guard(h.CreateLoan)...)
		borrowed.GET("/:email", authenticate, middleware.RequireOwner(c.Gate, "email"), h.ListForBorrower)
		borrowed.DELETE("/:id", guard(h.DeleteLoan)...)
	}

	r.POST("/borrow", guard(h.Borrow)...)
	r.POST("/return/:id", guard(h.Return)...)
}

// ========================================
// SESSION ROUTES
// ========================================
func setupSessionRoutes(r *gin.Engine, c *container.Container) {
	r.POST("/jwt", c.SessionHandler.Issue)
	r.POST("/logout", c.SessionHandler.Logout)
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		status, healthy := c.Health(checkCtx)
		data := gin.H{
			"status":     status,
			"store":      c.Config.Store.Driver,
			"version":    c.Config.App.Version,
			"checked_at": time.Now().UTC(),
		}

		if !healthy {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Store unreachable", data)
			return
		}
		response.Success(ctx, http.StatusOK, "OK", data)
	}
}
