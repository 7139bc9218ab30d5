package elements

import (
	"net/http"
	"strings"

	"github.com/oreltrt123/displan-sub003/internal/auth"
	"github.com/oreltrt123/displan-sub003/internal/pages"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo  *Repo
	pages *pages.Repo
}

// Register mounts the canvas element store under /canvas/elements.
// The project scope travels as a query parameter for reads and inside
// the body for writes.
func Register(rg *gin.RouterGroup, repo *Repo, pageRepo *pages.Repo) {
	h := &Handler{repo: repo, pages: pageRepo}

	rg.GET("/:page_id", h.fetch)
	rg.POST("/:page_id", h.create)
	rg.PUT("/:page_id", h.batchUpdate)
	rg.PATCH("/:page_id/:element_id", h.update)
	rg.DELETE("/:page_id/:element_id", h.delete)
	rg.POST("/:page_id/save", h.save)
}

func (h *Handler) fetch(c *gin.Context) {
	projectID := strings.TrimSpace(c.Query("project_id"))
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "project_id query parameter required"})
		return
	}

	userID := auth.UserDBID(c)
	items, err := h.repo.FetchByPage(c.Request.Context(), userID, projectID, c.Param("page_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "elements": items})
}

type createReq struct {
	ProjectID   string  `json:"project_id"`
	ElementType string  `json:"element_type"`
	X           float64 `json:"x_position"`
	Y           float64 `json:"y_position"`
	TemplateID  *string `json:"template_id,omitempty"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" || strings.TrimSpace(req.ElementType) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	el, err := h.repo.Create(c.Request.Context(), userID, req.ProjectID, c.Param("page_id"), CreateElement{
		ElementType: req.ElementType,
		X:           req.X,
		Y:           req.Y,
		TemplateID:  req.TemplateID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "element": el})
}

type batchUpdateReq struct {
	ProjectID string `json:"project_id"`
	Updates   []struct {
		ID string `json:"id"`
		Partial
	} `json:"updates"`
}

// batchUpdate commits drag-end and style-panel edits. Each update is an
// independent write: there is no transaction across elements, and a
// failing id does not roll back the ones already applied.
func (h *Handler) batchUpdate(c *gin.Context) {
	var req batchUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" || len(req.Updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	pageID := c.Param("page_id")

	updated := 0
	for _, u := range req.Updates {
		if u.ID == "" {
			continue
		}
		ok, err := h.repo.Update(c.Request.Context(), userID, req.ProjectID, pageID, u.ID, u.Partial)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error(), "updated": updated})
			return
		}
		if ok {
			updated++
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "updated": updated})
}

type updateReq struct {
	ProjectID string `json:"project_id"`
	Partial
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	ok, err := h.repo.Update(c.Request.Context(), userID, req.ProjectID, c.Param("page_id"), c.Param("element_id"), req.Partial)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "element not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) delete(c *gin.Context) {
	projectID := strings.TrimSpace(c.Query("project_id"))
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "project_id query parameter required"})
		return
	}

	userID := auth.UserDBID(c)
	ok, err := h.repo.Delete(c.Request.Context(), userID, projectID, c.Param("page_id"), c.Param("element_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "element not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type saveReq struct {
	ProjectID string `json:"project_id"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	ok, err := h.pages.Touch(c.Request.Context(), userID, req.ProjectID, c.Param("page_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "page not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
