package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

type BookHandler struct {
	svc *services.ReadingService
}

func NewBookHandler(svc *services.ReadingService) *BookHandler {
	return &BookHandler{svc: svc}
}

type bookRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	Status      string `json:"status"`
	CoverURL    string `json:"coverUrl"`
}

func (r bookRequest) input() domain.BookInput {
	return domain.BookInput{
		Title:       r.Title,
		Author:      r.Author,
		CurrentPage: r.CurrentPage,
		TotalPages:  r.TotalPages,
		Status:      r.Status,
		CoverURL:    r.CoverURL,
	}
}

type goalRequest struct {
	Goal int `json:"goal" binding:"required"`
}

func (h *BookHandler) RegisterRoutes(router *gin.RouterGroup) {
	books := router.Group("/books")
	{
		books.POST("", h.Create)
		books.GET("", h.List)
		books.GET("/monthly", h.Monthly)
		books.GET("/goal", h.Goal)
		books.PUT("/goal", h.SetGoal)
		books.GET("/:id", h.Get)
		books.PUT("/:id", h.Update)
		books.DELETE("/:id", h.Delete)
	}
}

func (h *BookHandler) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := h.svc.Create(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// List accepts optional status and q filters.
func (h *BookHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.List(services.BookFilter{
		Status: c.Query("status"),
		Query:  c.Query("q"),
	}))
}

func (h *BookHandler) Get(c *gin.Context) {
	book, err := h.svc.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Update(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), confirmed(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookHandler) Monthly(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Monthly())
}

func (h *BookHandler) Goal(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"goal": h.svc.Goal()})
}

func (h *BookHandler) SetGoal(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.SetGoal(c.Request.Context(), req.Goal); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": req.Goal})
}
