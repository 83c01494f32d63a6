package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sharkgitz/eboxai/internal/model"
)

// SortBy is the server-side ordering hint. The client re-derives order
// locally either way; this only keeps server pagination coherent.
type SortBy string

const (
	SortByDate     SortBy = "date"
	SortByPriority SortBy = "priority"
)

// LoadInbox asks the backend to (re)ingest its inbox source. Only
// success or failure is meaningful; the payload is not relied upon.
func (c *Client) LoadInbox(ctx context.Context) error {
	return c.do(ctx, "load_inbox", http.MethodPost, "/inbox/load", nil, nil, nil)
}

// ListEmails returns the canonical email collection.
func (c *Client) ListEmails(ctx context.Context, sortBy SortBy) ([]model.Email, error) {
	q := url.Values{}
	if sortBy != "" {
		q.Set("sort_by", string(sortBy))
	}
	var emails []model.Email
	if err := c.do(ctx, "list_emails", http.MethodGet, "/inbox/", q, nil, &emails); err != nil {
		return nil, err
	}
	return emails, nil
}

// GetEmailDetail returns one email with its action items and drafts.
func (c *Client) GetEmailDetail(ctx context.Context, id string) (*model.EmailDetail, error) {
	var detail model.EmailDetail
	if err := c.do(ctx, "get_email_detail", http.MethodGet, "/inbox/"+url.PathEscape(id), nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// DeleteEmail removes an email server-side. Callers drop their local
// copy only after this succeeds.
func (c *Client) DeleteEmail(ctx context.Context, id string) error {
	return c.do(ctx, "delete_email", http.MethodDelete, "/inbox/"+url.PathEscape(id), nil, nil, nil)
}

// SetActionItemStatus confirms an optimistic status toggle.
func (c *Client) SetActionItemStatus(ctx context.Context, id int, status string) error {
	body := map[string]string{"status": status}
	path := fmt.Sprintf("/action-items/%d", id)
	return c.do(ctx, "set_action_item_status", http.MethodPatch, path, nil, body, nil)
}
