package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

// StatsHandler serves today's metrics.
type StatsHandler struct {
	svc *services.MetricsService
}

func NewStatsHandler(svc *services.MetricsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

type updateStatsRequest struct {
	Water         *float64 `json:"water"`
	Sleep         *float64 `json:"sleep"`
	Energy        *int     `json:"energy"`
	Caffeine      *int     `json:"caffeine"`
	SocialBattery *string  `json:"socialBattery"`
}

type addWaterRequest struct {
	Delta float64 `json:"delta" binding:"required"`
}

type sleepWindowRequest struct {
	BedTime  string `json:"bedTime" binding:"required"`
	WakeTime string `json:"wakeTime" binding:"required"`
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("", h.Get)
		stats.PUT("", h.Update)
		stats.POST("/water", h.AddWater)
		stats.POST("/caffeine", h.AddCaffeine)
		stats.PUT("/sleep-window", h.SetSleepWindow)
	}
}

// Get godoc
// @Summary      Today's metrics
// @Tags         stats
// @Produce      json
// @Router       /stats [get]
func (h *StatsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Current())
}

// Update sets any subset of the metrics. Nothing changes if one is invalid.
func (h *StatsHandler) Update(c *gin.Context) {
	var req updateStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := h.svc.Apply(c.Request.Context(), services.UpdateMetricsInput{
		Water:         req.Water,
		Sleep:         req.Sleep,
		Energy:        req.Energy,
		Caffeine:      req.Caffeine,
		SocialBattery: req.SocialBattery,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) AddWater(c *gin.Context) {
	var req addWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	water, err := h.svc.AddWater(c.Request.Context(), req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"water": water})
}

func (h *StatsHandler) AddCaffeine(c *gin.Context) {
	doses, err := h.svc.AddCaffeine(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"caffeine": doses})
}

func (h *StatsHandler) SetSleepWindow(c *gin.Context) {
	var req sleepWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hours, err := h.svc.SetSleepWindow(c.Request.Context(), req.BedTime, req.WakeTime)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sleep": hours, "bedTime": req.BedTime, "wakeTime": req.WakeTime})
}
