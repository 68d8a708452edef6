package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

// ProfileHandler covers the local profile, preferences and the data reset.
type ProfileHandler struct {
	profile *services.ProfileService
	state   *services.StateService
}

func NewProfileHandler(profile *services.ProfileService, state *services.StateService) *ProfileHandler {
	return &ProfileHandler{profile: profile, state: state}
}

type loginRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
}

type updateProfileRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	profile := r.Group("/profile")
	{
		profile.GET("", h.Get)
		profile.POST("", h.Login)
		profile.PUT("", h.Update)
		profile.DELETE("", h.Logout)
		profile.GET("/categories", h.Categories)
		profile.POST("/categories", h.AddCategory)
	}

	r.GET("/preferences", h.Preferences)
	r.PUT("/preferences", h.SetPreferences)
	r.DELETE("/data", h.ClearAll)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.profile.Profile()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.profile.Login(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.profile.Update(c.Request.Context(), services.UpdateProfileInput{
		Name:   req.Name,
		Email:  req.Email,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Logout(c *gin.Context) {
	if err := h.profile.Logout(c.Request.Context(), confirmed(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, h.profile.Categories())
}

func (h *ProfileHandler) AddCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categories, err := h.profile.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *ProfileHandler) Preferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.profile.Preferences())
}

func (h *ProfileHandler) SetPreferences(c *gin.Context) {
	var prefs domain.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.profile.SetPreferences(c.Request.Context(), prefs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// ClearAll godoc
// @Summary      Wipe every stored document
// @Description  Requires confirm=true; otherwise answers 409.
// @Tags         data
// @Param        confirm  query  bool  false  "Confirm the wipe"
// @Success      204
// @Failure      409
// @Router       /data [delete]
func (h *ProfileHandler) ClearAll(c *gin.Context) {
	if err := h.state.ClearAll(c.Request.Context(), confirmed(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
