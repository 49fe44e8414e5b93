package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/RangiraDave/Test-copilot/internal/application"
	"github.com/RangiraDave/Test-copilot/internal/domain/entity"
	"github.com/RangiraDave/Test-copilot/pkg/response"
	"github.com/RangiraDave/Test-copilot/pkg/validation"
)

// UniversityHandler serves university browsing, administrative CRUD, the
// Elasticsearch name search, and the like/dislike toggle.
type UniversityHandler struct {
	Svc    *application.UniversityService
	Prefs  *application.PreferenceService
	Logger *logrus.Logger
}

func NewUniversityHandler(svc *application.UniversityService, prefs *application.PreferenceService, logger *logrus.Logger) *UniversityHandler {
	return &UniversityHandler{Svc: svc, Prefs: prefs, Logger: logger}
}

func universityJSON(u *entity.University) gin.H {
	return gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"location":   u.Location,
		"website":    u.Website,
		"status":     u.Status,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

func universitiesJSON(us []*entity.University) []gin.H {
	out := make([]gin.H, 0, len(us))
	for _, u := range us {
		out = append(out, universityJSON(u))
	}
	return out
}

// List GET /api/universities
func (h *UniversityHandler) List(c *gin.Context) {
	us, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"universities": universitiesJSON(us)}, "universities", nil)
}

// Get GET /api/universities/:id
func (h *UniversityHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, universityJSON(u), "university", nil)
}

type universityRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Location string `json:"location" binding:"required,max=120"`
	Website  string `json:"website"`
	Status   string `json:"status" binding:"omitempty,status"`
}

// Create POST /api/universities
func (h *UniversityHandler) Create(c *gin.Context) {
	var req universityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), application.CreateInput{
		Name:     req.Name,
		Location: req.Location,
		Website:  req.Website,
		Status:   req.Status,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, universityJSON(u), "university added successfully", nil)
}

// Update PUT /api/universities/:id
func (h *UniversityHandler) Update(c *gin.Context) {
	var req universityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.Status == "" {
		req.Status = entity.StatusClosed
	}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.UpdateInput{
		Name:     req.Name,
		Location: req.Location,
		Website:  req.Website,
		Status:   req.Status,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, universityJSON(u), "university updated successfully", nil)
}

// Delete DELETE /api/universities/:id
func (h *UniversityHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "university deleted", nil)
}

// Search GET /api/universities/search?q=...&size=...
func (h *UniversityHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": hits}, "search results", nil)
}

// Like POST /api/universities/:id/like (auth required)
func (h *UniversityHandler) Like(c *gin.Context) {
	liked, err := h.Prefs.Like(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	msg := "university liked"
	if !liked {
		msg = "already liked"
	}
	response.Success(c, http.StatusOK, gin.H{"liked": liked}, msg, nil)
}

// Dislike POST /api/universities/:id/dislike (auth required)
func (h *UniversityHandler) Dislike(c *gin.Context) {
	removed, err := h.Prefs.Dislike(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	msg := "preference removed"
	if !removed {
		msg = "nothing to remove"
	}
	response.Success(c, http.StatusOK, gin.H{"removed": removed}, msg, nil)
}

// Preferences GET /api/preferences (auth required)
func (h *UniversityHandler) Preferences(c *gin.Context) {
	us, err := h.Prefs.Liked(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"universities": universitiesJSON(us)}, "liked universities", nil)
}
