package billing

import (
	"net/http"

	"github.com/oreltrt123/displan-sub003/internal/auth"
	"github.com/gin-gonic/gin"
)

// optimisticCookie is the client-side flag set after a checkout
// redirect, before the webhook lands. It is echoed back to the UI but
// never trusted for gating.
const optimisticCookie = "displan_premium"

type Handler struct {
	repo   *Repo
	client *Client
}

func Register(rg *gin.RouterGroup, repo *Repo, client *Client) {
	h := &Handler{repo: repo, client: client}

	rg.POST("/checkout", h.checkout)
	rg.GET("/status", h.status)
}

func (h *Handler) checkout(c *gin.Context) {
	userID := auth.UserDBID(c)

	url, err := h.client.CreateCheckoutSession(userID, auth.Email(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "url": url})
}

func (h *Handler) status(c *gin.Context) {
	userID := auth.UserDBID(c)

	premium, err := h.repo.IsPremium(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	optimistic := false
	if v, err := c.Cookie(optimisticCookie); err == nil && v == "true" {
		optimistic = true
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "premium": premium, "optimistic": optimistic})
}
