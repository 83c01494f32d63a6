package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sharkgitz/eboxai/internal/model"
)

// GetDossier fetches the sender profile for the given email.
func (c *Client) GetDossier(ctx context.Context, emailID string) (*model.Dossier, error) {
	var dossier model.Dossier
	if err := c.do(ctx, "get_dossier", http.MethodGet, "/dossier/"+url.PathEscape(emailID), nil, nil, &dossier); err != nil {
		return nil, err
	}
	return &dossier, nil
}
