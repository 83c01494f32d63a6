package gateway

import (
	"context"
	"net/http"
	"net/url"
)

// ProcessEmail kicks off agent processing for one email. The backend
// runs it in the background; callers poll via GetEmailDetail. Not safe
// to retry blindly: a second call starts a second run.
func (c *Client) ProcessEmail(ctx context.Context, emailID string) error {
	return c.do(ctx, "process_email", http.MethodPost, "/agent/process/"+url.PathEscape(emailID), nil, nil, nil)
}

// ProcessAll kicks off agent processing for the whole inbox.
func (c *Client) ProcessAll(ctx context.Context) error {
	return c.do(ctx, "process_all", http.MethodPost, "/agent/process-all", nil, nil, nil)
}

type chatRequest struct {
	Query   string `json:"query"`
	EmailID string `json:"email_id,omitempty"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Chat sends one agent chat turn. emailID scopes the conversation to a
// specific email when non-empty.
func (c *Client) Chat(ctx context.Context, query, emailID string) (string, error) {
	req := chatRequest{Query: query, EmailID: emailID}
	var resp chatResponse
	if err := c.do(ctx, "chat", http.MethodPost, "/agent/chat", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// DraftRequest are the knobs for backend draft generation.
type DraftRequest struct {
	EmailID      string `json:"email_id"`
	Instructions string `json:"instructions,omitempty"`
	Tone         string `json:"tone,omitempty"`
	Length       string `json:"length,omitempty"`
}

// GenerateDraft asks the backend to draft a reply. The result is picked
// up through a GetEmailDetail refresh, not returned here.
func (c *Client) GenerateDraft(ctx context.Context, req DraftRequest) error {
	return c.do(ctx, "generate_draft", http.MethodPost, "/agent/draft", nil, req, nil)
}
