package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

type InsightHandler struct {
	svc *services.InsightService
}

func NewInsightHandler(svc *services.InsightService) *InsightHandler {
	return &InsightHandler{svc: svc}
}

func (h *InsightHandler) RegisterRoutes(r *gin.RouterGroup) {
	insights := r.Group("/insights")
	{
		insights.GET("/last", h.Last)
		insights.POST("/:variant", h.Generate)
	}
}

// Generate godoc
// @Summary      Generate an insight
// @Description  Always answers 200; when generation is unavailable the body carries a fallback text and fallback=true.
// @Tags         insights
// @Param        variant  path  string  true  "wellness, hydration or sleep"
// @Router       /insights/{variant} [post]
func (h *InsightHandler) Generate(c *gin.Context) {
	insight, err := h.svc.Generate(c.Request.Context(), c.Param("variant"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, insight)
}

func (h *InsightHandler) Last(c *gin.Context) {
	text, err := h.svc.Last(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"variant": services.VariantWellness, "text": text})
}
