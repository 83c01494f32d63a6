package mockapi

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sharkgitz/eboxai/internal/model"
)

var meetingKeywords = []string{"meeting", "zoom", "invite", "schedule", "calendar", "sync"}

// ListMeetings synthesizes meetings from meeting-like emails, the way
// the real backend scans the inbox. Meeting time is two days after the
// source email; the id encodes the source email id.
func (h *Handlers) ListMeetings(c *gin.Context) {
	meetings := []model.Meeting{}
	for _, e := range h.store.ListEmails("") {
		text := strings.ToLower(e.Subject + " " + e.Body)
		isMeeting := false
		for _, kw := range meetingKeywords {
			if strings.Contains(text, kw) {
				isMeeting = true
				break
			}
		}
		if !isMeeting {
			continue
		}
		meetings = append(meetings, model.Meeting{
			ID:            "mtg_" + e.ID,
			Title:         "Discuss: " + e.Subject,
			Datetime:      model.Time{Time: e.Timestamp.Add(48 * time.Hour)},
			Participants:  []string{e.Sender, "me"},
			SourceEmailID: e.ID,
			Status:        "upcoming",
		})
	}
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].Datetime.Before(meetings[j].Datetime.Time)
	})
	c.JSON(http.StatusOK, meetings)
}

func (h *Handlers) GenerateBrief(c *gin.Context) {
	emailID := strings.TrimPrefix(c.Param("id"), "mtg_")
	email, ok := h.store.GetEmail(emailID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Meeting not found"})
		return
	}

	sentiment := email.Sentiment
	if sentiment == "" {
		sentiment = "neutral"
	}
	c.JSON(http.StatusOK, model.MeetingBrief{
		Summary: "Preparation brief for " + email.Sender + " regarding " + email.Subject + ".",
		KeyPoints: []string{
			firstSentence(email.Body),
			"Sender: " + email.Sender,
		},
		TalkingPoints: []string{
			"Confirm next steps on \"" + email.Subject + "\"",
			"Agree on owners and deadlines",
		},
		Sentiment: sentiment,
	})
}

// GetDossier builds the sender profile from the current email plus the
// sender's other messages in the store.
func (h *Handlers) GetDossier(c *gin.Context) {
	email, ok := h.store.GetEmail(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Email not found"})
		return
	}

	company := ""
	if i := strings.Index(email.Sender, "@"); i > 0 {
		domain := email.Sender[i+1:]
		company = strings.Split(domain, ".")[0]
	}

	history := []model.DossierEntry{}
	for _, other := range h.store.ListEmails("") {
		if other.ID == email.ID || other.Sender != email.Sender {
			continue
		}
		history = append(history, model.DossierEntry{
			Date:    other.Timestamp.Format("2006-01-02"),
			Subject: other.Subject,
			Snippet: truncate(other.Body, 100),
			Tone:    other.Sentiment,
		})
	}

	current := email.Sentiment
	if current == "" {
		current = "neutral"
	}
	c.JSON(http.StatusOK, model.Dossier{
		Identity: model.DossierIdentity{
			Name:    senderName(email.Sender),
			Role:    "Contact",
			Company: company,
			Email:   email.Sender,
		},
		Sentiment: model.DossierSentiment{Current: current, Trend: "Neutral"},
		History:   history,
	})
}

// DashboardMetrics computes the backend-owned analytics figures from
// store state: five minutes saved per processed email at a $50 rate.
func (h *Handlers) DashboardMetrics(c *gin.Context) {
	processed := 0
	for _, e := range h.store.ListEmails("") {
		if e.IsRead {
			processed++
		}
	}
	minutesSaved := float64(processed * 5)

	c.JSON(http.StatusOK, model.DashboardMetrics{
		ROI: model.ROIMetrics{
			HoursSaved: roundTo(minutesSaved/60, 1),
			MoneySaved: roundTo(minutesSaved/60*50, 2),
			HourlyRate: 50,
		},
		Trust: model.TrustMetrics{
			AverageConfidence: 87.5,
			HallucinationRate: 12.0,
			RAGUsage:          "100%",
		},
		Trends: model.TrendsMetrics{
			SentimentVelocity: "Increasing",
			TopIntent:         "Billing Inquiries",
		},
	})
}

func roundTo(v float64, places int) float64 {
	scale := 1.0
	for i := 0; i < places; i++ {
		scale *= 10
	}
	return float64(int(v*scale+0.5)) / scale
}
