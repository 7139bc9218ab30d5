package projects

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

func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:project_id", h.get)
	rg.PATCH("/:project_id", h.rename)
	rg.PATCH("/:project_id/subdomain", h.changeSubdomain)
	rg.DELETE("/:project_id", h.delete)
}

type createReq struct {
	Name string `json:"name"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.repo.Create(c.Request.Context(), userID, strings.TrimSpace(req.Name))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserDBID(c)
	items, err := h.repo.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	userID := auth.UserDBID(c)
	p, err := h.repo.Get(c.Request.Context(), userID, c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
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
	p, err := h.repo.Rename(c.Request.Context(), userID, c.Param("project_id"), strings.TrimSpace(req.Name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type subdomainReq struct {
	Subdomain string `json:"subdomain"`
}

func (h *Handler) changeSubdomain(c *gin.Context) {
	var req subdomainReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	sub := strings.TrimSpace(req.Subdomain)
	if !ValidSubdomain(sub) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "subdomain must match [a-z0-9-]+"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.repo.SetSubdomain(c.Request.Context(), userID, c.Param("project_id"), sub)
	if err != nil {
		if errors.Is(err, ErrSubdomainTaken) {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "subdomain already taken"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	userID := auth.UserDBID(c)

	ok, err := h.repo.SoftDelete(c.Request.Context(), userID, c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
