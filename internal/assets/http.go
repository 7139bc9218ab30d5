package assets

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/oreltrt123/displan-sub003/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 50 << 20 // uploads beyond this are rejected by MaxBytesReader

type Handler struct {
	repo    *Repo
	storage *Storage
}

func Register(rg *gin.RouterGroup, repo *Repo, storage *Storage) {
	h := &Handler{repo: repo, storage: storage}

	rg.POST("/:project_id/:page_id", h.upload)
	rg.GET("/:project_id/:page_id", h.list)
	rg.DELETE("/:asset_id", h.delete)
}

func (h *Handler) upload(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "storage is not configured"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file field required"})
		return
	}
	defer file.Close()

	projectID := c.Param("project_id")
	pageID := c.Param("page_id")
	userID := auth.UserDBID(c)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Content-addressed-by-UUID object name; the original name survives
	// only as metadata on the row.
	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := projectID + "/" + pageID + "/" + uuid.New().String() + ext

	url, err := h.storage.Upload(c.Request.Context(), key, contentType, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	a, err := h.repo.Create(c.Request.Context(), userID, Asset{
		ProjectID:   projectID,
		PageID:      pageID,
		FileName:    header.Filename,
		Path:        key,
		URL:         url,
		ContentType: contentType,
		SizeBytes:   header.Size,
	})
	if err != nil {
		// the blob is up but the row failed; drop the blob again
		if delErr := h.storage.Delete(c.Request.Context(), key); delErr != nil {
			log.Printf("[assets] orphan cleanup %s: %v", key, delErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "asset": a})
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserDBID(c)
	items, err := h.repo.ListByPage(c.Request.Context(), userID, c.Param("project_id"), c.Param("page_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "assets": items})
}

func (h *Handler) delete(c *gin.Context) {
	userID := auth.UserDBID(c)

	path, ok, err := h.repo.Delete(c.Request.Context(), userID, c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "asset not found"})
		return
	}

	if h.storage != nil {
		if err := h.storage.Delete(c.Request.Context(), path); err != nil {
			log.Printf("[assets] delete blob %s: %v", path, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
