package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sharkgitz/eboxai/internal/model"
)

// PromptSpec is the writable part of a prompt.
type PromptSpec struct {
	Name       string `json:"name"`
	Template   string `json:"template"`
	PromptType string `json:"prompt_type"`
}

func (c *Client) ListPrompts(ctx context.Context) ([]model.Prompt, error) {
	var prompts []model.Prompt
	if err := c.do(ctx, "list_prompts", http.MethodGet, "/prompts/", nil, nil, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

func (c *Client) CreatePrompt(ctx context.Context, spec PromptSpec) (*model.Prompt, error) {
	var created model.Prompt
	if err := c.do(ctx, "create_prompt", http.MethodPost, "/prompts/", nil, spec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdatePrompt(ctx context.Context, id int, spec PromptSpec) (*model.Prompt, error) {
	var updated model.Prompt
	path := fmt.Sprintf("/prompts/%d", id)
	if err := c.do(ctx, "update_prompt", http.MethodPut, path, nil, spec, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

type testPromptRequest struct {
	EmailID  string `json:"email_id"`
	Template string `json:"template"`
}

type testPromptResponse struct {
	Response string `json:"response"`
}

// TestPrompt runs a template against one email in the playground,
// without saving anything.
func (c *Client) TestPrompt(ctx context.Context, emailID, template string) (string, error) {
	req := testPromptRequest{EmailID: emailID, Template: template}
	var resp testPromptResponse
	if err := c.do(ctx, "test_prompt", http.MethodPost, "/playground/test", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}
