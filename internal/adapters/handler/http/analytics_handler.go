package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

type AnalyticsHandler struct {
	stats  *services.StatsService
	habits *services.HabitService
}

func NewAnalyticsHandler(stats *services.StatsService, habits *services.HabitService) *AnalyticsHandler {
	return &AnalyticsHandler{stats: stats, habits: habits}
}

type windowResponse struct {
	domain.Window
	Average float64 `json:"average"`
	Metric  string  `json:"metric"`
}

var windowMetrics = map[string]bool{
	"water":  true,
	"sleep":  true,
	"energy": true,
	"habits": true,
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	analytics := r.Group("/analytics")
	{
		analytics.GET("/week", h.window(domain.ScaleWeek))
		analytics.GET("/month", h.window(domain.ScaleMonth))
		analytics.GET("/year", h.window(domain.ScaleYear))
		analytics.GET("/score", h.Score)
		analytics.GET("/overview", h.Overview)
	}
}

// window godoc
// @Summary      Analytics window
// @Description  offset counts whole periods back from the current one and must be <= 0.
// @Tags         analytics
// @Param        offset  query  int     false  "Period offset"
// @Param        metric  query  string  false  "water, sleep, energy or habits"
// @Router       /analytics/week [get]
// @Router       /analytics/month [get]
// @Router       /analytics/year [get]
func (h *AnalyticsHandler) window(scale domain.Scale) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset := 0
		if raw := c.Query("offset"); raw != "" {
			var err error
			offset, err = strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset, expected an integer"})
				return
			}
		}

		metric := c.DefaultQuery("metric", "water")
		if !windowMetrics[metric] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid metric (must be water, sleep, energy, or habits)"})
			return
		}

		w, err := h.stats.Window(scale, offset)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, windowResponse{
			Window:  w,
			Average: w.Average(metric),
			Metric:  metric,
		})
	}
}

func (h *AnalyticsHandler) Score(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.Score())
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.Overview(h.habits))
}
