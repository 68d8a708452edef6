package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

// ReminderQueue is notified whenever tasks change so due reminders fire
// without waiting for the next tick.
type ReminderQueue interface {
	Enqueue(reason string)
}

type TaskHandler struct {
	svc       *services.TaskService
	reminders ReminderQueue
}

func NewTaskHandler(svc *services.TaskService, reminders ReminderQueue) *TaskHandler {
	return &TaskHandler{svc: svc, reminders: reminders}
}

type taskRequest struct {
	Title        string `json:"title" binding:"required"`
	Priority     string `json:"priority"`
	ReminderTime string `json:"reminderTime"`
	Date         string `json:"date"`
	Frequency    *int   `json:"frequency"`
}

func (r taskRequest) input() services.TaskInput {
	return services.TaskInput{
		Title:        r.Title,
		Priority:     r.Priority,
		ReminderTime: r.ReminderTime,
		Date:         r.Date,
		Frequency:    r.Frequency,
	}
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/tasks")
	{
		tasks.POST("", h.Create)
		tasks.GET("", h.List)
		tasks.GET("/day", h.Day)
		tasks.GET("/:id", h.Get)
		tasks.PUT("/:id", h.Update)
		tasks.DELETE("/:id", h.Delete)
		tasks.POST("/:id/toggle", h.Toggle)
	}
}

func (h *TaskHandler) changed(reason string) {
	if h.reminders != nil {
		h.reminders.Enqueue(reason)
	}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.svc.Create(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	h.changed("task created")
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.List())
}

// Day godoc
// @Summary      Tasks planned for a day
// @Description  One-off tasks dated that day plus every recurring task.
// @Tags         tasks
// @Param        date  query  string  false  "YYYY-MM-DD, defaults to today"
// @Router       /tasks/day [get]
func (h *TaskHandler) Day(c *gin.Context) {
	tasks, err := h.svc.ListForDay(c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.svc.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	h.changed("task updated")
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) Toggle(c *gin.Context) {
	var req toggleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	done, err := h.svc.Toggle(c.Request.Context(), c.Param("id"), req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": done})
}
