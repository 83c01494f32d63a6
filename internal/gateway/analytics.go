package gateway

import (
	"context"
	"net/http"

	"github.com/sharkgitz/eboxai/internal/model"
)

// DashboardMetrics fetches the backend-owned analytics figures. Counts
// that can be derived from the inbox are computed locally instead.
func (c *Client) DashboardMetrics(ctx context.Context) (*model.DashboardMetrics, error) {
	var m model.DashboardMetrics
	if err := c.do(ctx, "dashboard_metrics", http.MethodGet, "/analytics/dashboard", nil, nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
