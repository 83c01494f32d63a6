package mockapi

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires the mock backend routes. The route set mirrors the
// real backend contract exactly, plus /metrics for scraping.
func NewRouter(store *Store, logger *zap.Logger) *gin.Engine {
	h := NewHandlers(store, logger)

	r := gin.Default()

	r.GET("/", h.Root)

	r.POST("/inbox/load", h.LoadInbox)
	r.GET("/inbox/", h.ListEmails)
	r.GET("/inbox/:id", h.GetEmail)
	r.DELETE("/inbox/:id", h.DeleteEmail)

	r.PATCH("/action-items/:id", h.UpdateActionItem)

	r.POST("/agent/process/:id", h.ProcessEmail)
	r.POST("/agent/process-all", h.ProcessAll)
	r.POST("/agent/chat", h.Chat)
	r.POST("/agent/draft", h.GenerateDraft)

	r.GET("/prompts/", h.ListPrompts)
	r.POST("/prompts/", h.CreatePrompt)
	r.PUT("/prompts/:id", h.UpdatePrompt)

	r.POST("/playground/test", h.TestPrompt)

	r.GET("/meetings/", h.ListMeetings)
	r.POST("/meetings/:id/brief", h.GenerateBrief)

	r.GET("/followups/", h.ListFollowUps)
	r.PATCH("/followups/:id", h.UpdateFollowUp)

	r.GET("/dossier/:id", h.GetDossier)

	r.GET("/analytics/dashboard", h.DashboardMetrics)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
