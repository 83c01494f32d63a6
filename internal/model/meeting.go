package model

// Meeting is synthesized server-side from meeting-like emails; the id is
// derived from the source email and is only valid for brief generation.
type Meeting struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Datetime      Time     `json:"datetime"`
	Participants  []string `json:"participants"`
	SourceEmailID string   `json:"source_email_id"`
	Status        string   `json:"status"`
}

// MeetingBrief is generated on demand and never persisted.
type MeetingBrief struct {
	Summary       string   `json:"summary"`
	KeyPoints     []string `json:"key_points"`
	TalkingPoints []string `json:"suggested_talking_points"`
	Sentiment     string   `json:"sentiment"`
}
