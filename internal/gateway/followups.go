package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sharkgitz/eboxai/internal/model"
)

// ListFollowUps returns every tracked commitment, both directions.
func (c *Client) ListFollowUps(ctx context.Context) ([]model.FollowUp, error) {
	var followups []model.FollowUp
	if err := c.do(ctx, "list_followups", http.MethodGet, "/followups/", nil, nil, &followups); err != nil {
		return nil, err
	}
	return followups, nil
}

// SetFollowUpStatus confirms an optimistic status toggle.
func (c *Client) SetFollowUpStatus(ctx context.Context, id int, status string) error {
	body := map[string]string{"status": status}
	path := fmt.Sprintf("/followups/%d", id)
	return c.do(ctx, "set_followup_status", http.MethodPatch, path, nil, body, nil)
}
