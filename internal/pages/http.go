package pages

import (
	"errors"
	"net/http"
	"strings"

	"github.com/oreltrt123/displan-sub003/internal/auth"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repo
}

// RegisterProjectsSubroutes mounts page routes under /projects/:project_id.
func RegisterProjectsSubroutes(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.POST("/:project_id/pages", h.create)
	rg.GET("/:project_id/pages", h.list)
	rg.PATCH("/:project_id/pages/:page_id", h.rename)
	rg.DELETE("/:project_id/pages/:page_id", h.delete)
}

type createReq struct {
	Name     string `json:"name"`
	IsFolder bool   `json:"is_folder"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	pg, err := h.repo.Create(c.Request.Context(), userID, c.Param("project_id"), strings.TrimSpace(req.Name), req.IsFolder)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "a page with this slug already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "page": pg})
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserDBID(c)
	items, err := h.repo.ListByProject(c.Request.Context(), userID, c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "pages": items})
}

type renameReq struct {
	Name string `json:"name"`
}

func (h *Handler) rename(c *gin.Context) {
	var req renameReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	pg, err := h.repo.Rename(c.Request.Context(), userID, c.Param("project_id"), c.Param("page_id"), strings.TrimSpace(req.Name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "page not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "page": pg})
}

func (h *Handler) delete(c *gin.Context) {
	userID := auth.UserDBID(c)

	ok, err := h.repo.Delete(c.Request.Context(), userID, c.Param("project_id"), c.Param("page_id"))
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
