package mockapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sharkgitz/eboxai/internal/model"
)

type Handlers struct {
	store  *Store
	logger *zap.Logger
}

func NewHandlers(store *Store, logger *zap.Logger) *Handlers {
	return &Handlers{store: store, logger: logger}
}

func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "eboxai mock backend"})
}

// LoadInbox seeds an empty store; on a seeded store it simulates a new
// arrival instead, so repeated loads keep producing fresh traffic.
func (h *Handlers) LoadInbox(c *gin.Context) {
	if h.store.EmailCount() == 0 {
		h.store.Seed()
		h.logger.Info("inbox seeded", zap.Int("emails", h.store.EmailCount()))
	} else {
		id := "em-" + uuid.NewString()[:8]
		h.store.AddEmail(model.EmailDetail{
			Email: model.Email{
				ID:        id,
				Sender:    "alerts@apexlogistics.com",
				Subject:   "Shipment delay notification",
				Body:      "Carrier reports a delay on route 12. Please acknowledge and reschedule the delivery window.",
				Timestamp: model.Time{Time: time.Now().UTC()},
				Category:  "Pending Analysis",
			},
		})
		h.logger.Info("simulated new email", zap.String("id", id))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inbox loaded successfully"})
}

func (h *Handlers) ListEmails(c *gin.Context) {
	sortBy := c.Query("sort_by")
	c.JSON(http.StatusOK, h.store.ListEmails(sortBy))
}

func (h *Handlers) GetEmail(c *gin.Context) {
	email, ok := h.store.GetEmail(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Email not found"})
		return
	}
	c.JSON(http.StatusOK, email)
}

func (h *Handlers) DeleteEmail(c *gin.Context) {
	if !h.store.DeleteEmail(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Email not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email deleted"})
}

type statusUpdate struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handlers) UpdateActionItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid action item id"})
		return
	}
	var req statusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "status is required"})
		return
	}
	item, ok := h.store.UpdateActionItemStatus(id, req.Status)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Action item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handlers) ProcessEmail(c *gin.Context) {
	id := c.Param("id")
	if !h.store.ProcessEmail(id) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Email not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Processing started"})
}

func (h *Handlers) ProcessAll(c *gin.Context) {
	h.store.ProcessAll()
	c.JSON(http.StatusOK, gin.H{"message": "Batch processing started"})
}

type chatRequest struct {
	Query   string `json:"query" binding:"required"`
	EmailID string `json:"email_id"`
}

func (h *Handlers) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "query is required"})
		return
	}

	if req.EmailID != "" {
		email, ok := h.store.GetEmail(req.EmailID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Email not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"response": fmt.Sprintf("Regarding %q from %s: %s", email.Subject, email.Sender, firstSentence(email.Body)),
		})
		return
	}

	emails := h.store.ListEmails("")
	unread := 0
	for _, e := range emails {
		if !e.IsRead {
			unread++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"response": fmt.Sprintf("You have %d emails, %d unread. Ask about a specific email for details.", len(emails), unread),
	})
}

type draftRequest struct {
	EmailID      string `json:"email_id" binding:"required"`
	Instructions string `json:"instructions"`
	Tone         string `json:"tone"`
	Length       string `json:"length"`
}

func (h *Handlers) GenerateDraft(c *gin.Context) {
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "email_id is required"})
		return
	}
	email, ok := h.store.GetEmail(req.EmailID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Could not generate draft"})
		return
	}

	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}
	body := fmt.Sprintf("Hi %s,\n\nThanks for your message about %q. I'll follow up shortly.\n\nBest regards", senderName(email.Sender), email.Subject)
	if req.Instructions != "" {
		body += "\n\n[drafted with instructions: " + req.Instructions + ", tone: " + tone + "]"
	}

	draft, _ := h.store.AddDraft(req.EmailID, model.Draft{
		Subject: "Re: " + email.Subject,
		Body:    body,
		Status:  "draft",
	})
	c.JSON(http.StatusOK, draft)
}

func (h *Handlers) ListFollowUps(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListFollowUps())
}

func (h *Handlers) UpdateFollowUp(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid follow-up id"})
		return
	}
	var req statusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "status is required"})
		return
	}
	followup, ok := h.store.UpdateFollowUpStatus(id, req.Status)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Follow-up not found"})
		return
	}
	c.JSON(http.StatusOK, followup)
}

func (h *Handlers) ListPrompts(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListPrompts())
}

type promptRequest struct {
	Name       string `json:"name" binding:"required"`
	Template   string `json:"template" binding:"required"`
	PromptType string `json:"prompt_type"`
}

func (h *Handlers) CreatePrompt(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "name and template are required"})
		return
	}
	created := h.store.AddPrompt(model.Prompt{Name: req.Name, Template: req.Template, PromptType: req.PromptType})
	c.JSON(http.StatusOK, created)
}

func (h *Handlers) UpdatePrompt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid prompt id"})
		return
	}
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "name and template are required"})
		return
	}
	updated, ok := h.store.UpdatePrompt(id, req.Name, req.Template, req.PromptType)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Prompt not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

type playgroundRequest struct {
	EmailID  string `json:"email_id" binding:"required"`
	Template string `json:"template" binding:"required"`
}

// TestPrompt substitutes {subject}/{body}/{sender} and returns a mock
// completion, echoing the rendered prompt so template bugs are visible.
func (h *Handlers) TestPrompt(c *gin.Context) {
	var req playgroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "email_id and template are required"})
		return
	}
	email, ok := h.store.GetEmail(req.EmailID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Email not found"})
		return
	}

	rendered := strings.NewReplacer(
		"{subject}", email.Subject,
		"{body}", email.Body,
		"{sender}", email.Sender,
	).Replace(req.Template)

	c.JSON(http.StatusOK, gin.H{"response": "[mock completion] " + truncate(rendered, 200)})
}

func firstSentence(body string) string {
	body = strings.TrimSpace(body)
	if i := strings.IndexAny(body, ".!?\n"); i > 0 {
		return body[:i+1]
	}
	return truncate(body, 120)
}

func senderName(sender string) string {
	local := sender
	if i := strings.Index(sender, "@"); i > 0 {
		local = sender[:i]
	}
	parts := strings.FieldsFunc(local, func(r rune) bool { return r == '.' || r == '_' || r == '-' })
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
