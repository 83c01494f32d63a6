package model

// Status values shared by action items and follow-ups.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Email as served by the triage backend. Category can arrive as a long
// free-text string when the model leaks reasoning into the label; display
// cleanup lives in the derive package, the stored value stays untouched.
type Email struct {
	ID           string `json:"id"`
	Sender       string `json:"sender"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
	Timestamp    Time   `json:"timestamp"`
	Category     string `json:"category"`
	IsRead       bool   `json:"is_read"`
	Sentiment    string `json:"sentiment,omitempty"`
	Emotion      string `json:"emotion,omitempty"`
	UrgencyScore int    `json:"urgency_score,omitempty"`

	DeadlineDatetime *Time  `json:"deadline_datetime,omitempty"`
	DeadlineText     string `json:"deadline_text,omitempty"`

	HasDarkPatterns     bool     `json:"has_dark_patterns,omitempty"`
	DarkPatterns        []string `json:"dark_patterns,omitempty"`
	DarkPatternSeverity string   `json:"dark_pattern_severity,omitempty"`

	// Absent until the agent has processed the email.
	ActionItems []ActionItem `json:"action_items,omitempty"`
}

// ActionItem belongs to exactly one email. Status is the only field the
// client ever mutates.
type ActionItem struct {
	ID          int    `json:"id"`
	EmailID     string `json:"email_id"`
	Description string `json:"description"`
	Deadline    string `json:"deadline,omitempty"`
	Status      string `json:"status"`
}

// Draft is read-only on the client; the backend creates drafts.
type Draft struct {
	ID      int    `json:"id"`
	EmailID string `json:"email_id"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Status  string `json:"status"`
}

// EmailDetail is the single-email view: the email plus its action items
// and generated drafts.
type EmailDetail struct {
	Email
	Drafts []Draft `json:"drafts,omitempty"`
}
