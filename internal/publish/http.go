package publish

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/oreltrt123/displan-sub003/internal/auth"
	"github.com/oreltrt123/displan-sub003/internal/projects"
	"github.com/oreltrt123/displan-sub003/internal/render"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo     *Repo
	projects *projects.Repo
	cache    *Cache
	renderer *render.Renderer
	domain   string
}

func NewHandler(repo *Repo, projectRepo *projects.Repo, cache *Cache, domain string) *Handler {
	return &Handler{
		repo:     repo,
		projects: projectRepo,
		cache:    cache,
		renderer: render.NewRenderer(),
		domain:   domain,
	}
}

// Register mounts the authenticated publishing surface.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/publish", h.publish)
	rg.POST("/deploy", h.deploy)
	rg.POST("/sites/:site_name/update", h.updateSite)
}

// RegisterPublic mounts the unauthenticated serving route.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/sites/:subdomain", h.serve)
}

type publishReq struct {
	ProjectID   string `json:"projectId"`
	HTMLContent string `json:"htmlContent"`
}

func (h *Handler) publish(c *gin.Context) {
	var req publishReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" || req.HTMLContent == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "projectId and htmlContent are required"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.projects.Get(c.Request.Context(), userID, req.ProjectID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	doc := EnsureMeta(req.HTMLContent, p.Name, "")
	if err := h.repo.UpsertWebsite(c.Request.Context(), p.ID, p.Subdomain, doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if _, err := h.projects.SetPublished(c.Request.Context(), userID, p.ID, true); err != nil {
		log.Printf("[publish] mark published %s: %v", p.ID, err)
	}
	if err := h.cache.Invalidate(c.Request.Context(), p.Subdomain); err != nil {
		log.Printf("[publish] invalidate cache %s: %v", p.Subdomain, err)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "url": SiteURL(p.Subdomain, h.domain)})
}

type deployReq struct {
	ProjectID string `json:"projectId"`
	Subdomain string `json:"subdomain"`
}

func (h *Handler) deploy(c *gin.Context) {
	var req deployReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "projectId is required"})
		return
	}

	sub := strings.TrimSpace(req.Subdomain)
	if !projects.ValidSubdomain(sub) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "subdomain must match [a-z0-9-]+"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.projects.SetSubdomain(c.Request.Context(), userID, req.ProjectID, sub)
	if err != nil {
		if errors.Is(err, projects.ErrSubdomainTaken) {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "subdomain already taken"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	if _, err := h.projects.SetPublished(c.Request.Context(), userID, p.ID, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "url": SiteURL(p.Subdomain, h.domain)})
}

type updateSiteReq struct {
	Content render.Content `json:"content"`
}

// updateSite regenerates the full document from the structured content
// tree and upserts it into the site_name-keyed table.
func (h *Handler) updateSite(c *gin.Context) {
	siteName := c.Param("site_name")
	if !projects.ValidSubdomain(siteName) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid site name"})
		return
	}

	var req updateSiteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	doc, err := h.renderer.RenderSite(&req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if err := h.repo.UpsertSite(c.Request.Context(), siteName, doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if err := h.cache.Invalidate(c.Request.Context(), siteName); err != nil {
		log.Printf("[publish] invalidate cache %s: %v", siteName, err)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "url": SiteURL(siteName, h.domain)})
}

// serve returns the stored blob verbatim. Lookup order: redis cache,
// then the project_id-keyed table, then the site_name-keyed fallback.
func (h *Handler) serve(c *gin.Context) {
	subdomain := c.Param("subdomain")
	if !projects.ValidSubdomain(subdomain) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid subdomain"})
		return
	}

	ctx := c.Request.Context()

	if cached, err := h.cache.Get(ctx, subdomain); err != nil {
		log.Printf("[publish] cache get %s: %v", subdomain, err)
	} else if cached != "" {
		c.Header("Cache-Control", "public, max-age=3600")
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cached))
		return
	}

	var html string
	w, err := h.repo.GetWebsiteBySubdomain(ctx, subdomain)
	switch {
	case err == nil:
		html = w.HTML
	case errors.Is(err, ErrNotFound):
		html, err = h.repo.GetSiteByName(ctx, subdomain)
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "site not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if err := h.cache.Set(ctx, subdomain, html); err != nil {
		log.Printf("[publish] cache set %s: %v", subdomain, err)
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
