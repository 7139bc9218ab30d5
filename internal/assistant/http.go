package assistant

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/oreltrt123/displan-sub003/internal/auth"
	"github.com/oreltrt123/displan-sub003/internal/elements"
	"github.com/gin-gonic/gin"
)

// PremiumChecker gates the assistant; satisfied by billing.Repo.
type PremiumChecker interface {
	IsPremium(ctx context.Context, userID string) (bool, error)
}

type Handler struct {
	client   *Client
	gate     PremiumChecker
	elements *elements.Repo
	limiter  *UserLimiter
}

func Register(rg *gin.RouterGroup, client *Client, gate PremiumChecker, elementRepo *elements.Repo, limiter *UserLimiter) {
	h := &Handler{client: client, gate: gate, elements: elementRepo, limiter: limiter}

	rg.POST("/chat", h.chat)
}

type chatReq struct {
	ProjectID string        `json:"project_id"`
	PageID    string        `json:"page_id"`
	Message   string        `json:"message"`
	History   []ChatMessage `json:"history,omitempty"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)

	premium, err := h.gate.IsPremium(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !premium {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "the AI assistant requires an active subscription"})
		return
	}

	if !h.limiter.Allow(userID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "rate limit exceeded, slow down"})
		return
	}

	resp, err := h.client.Chat(c.Request.Context(), ChatRequest{
		ProjectID: req.ProjectID,
		PageID:    req.PageID,
		History:   req.History,
		Message:   req.Message,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}

	// Suggested elements are inserted through the regular store; a
	// failing insert doesn't fail the chat reply.
	inserted := make([]elements.Element, 0, len(resp.Elements))
	for _, s := range resp.Elements {
		el, err := h.elements.Create(c.Request.Context(), userID, req.ProjectID, req.PageID, elements.CreateElement{
			ElementType: s.ElementType,
			X:           s.X,
			Y:           s.Y,
		})
		if err != nil {
			log.Printf("[assistant] insert element %s: %v", s.ElementType, err)
			continue
		}

		partial := elements.Partial{
			Width:   s.Width,
			Height:  s.Height,
			Content: s.Content,
			Style:   s.Style,
		}
		if s.Width != nil || s.Height != nil || s.Content != nil || s.Style != nil {
			if _, err := h.elements.Update(c.Request.Context(), userID, req.ProjectID, req.PageID, el.ID, partial); err != nil {
				log.Printf("[assistant] apply suggestion to %s: %v", el.ID, err)
			}
		}
		inserted = append(inserted, *el)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "answer": resp.Answer, "elements": inserted})
}
