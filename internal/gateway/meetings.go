package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sharkgitz/eboxai/internal/model"
)

func (c *Client) ListMeetings(ctx context.Context) ([]model.Meeting, error) {
	var meetings []model.Meeting
	if err := c.do(ctx, "list_meetings", http.MethodGet, "/meetings/", nil, nil, &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}

// GenerateMeetingBrief builds a prep brief on demand. Briefs are derived
// reads; nothing is persisted, so repeating the call is cheap but not
// guaranteed identical.
func (c *Client) GenerateMeetingBrief(ctx context.Context, meetingID string) (*model.MeetingBrief, error) {
	var brief model.MeetingBrief
	path := "/meetings/" + url.PathEscape(meetingID) + "/brief"
	if err := c.do(ctx, "generate_meeting_brief", http.MethodPost, path, nil, nil, &brief); err != nil {
		return nil, err
	}
	return &brief, nil
}
