package model

// FollowUp is a tracked commitment mined from an email thread.
// CommittedBy is the literal "me" for the user's own commitments,
// otherwise the other party; partitioning on that is a display-time
// derivation, not stored state.
type FollowUp struct {
	ID          int    `json:"id"`
	EmailID     string `json:"email_id"`
	Commitment  string `json:"commitment"`
	CommittedBy string `json:"committed_by"`
	DueDate     string `json:"due_date,omitempty"`
	Status      string `json:"status"`
	CreatedAt   Time   `json:"created_at,omitempty"`
}
