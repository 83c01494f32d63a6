package derive

import "github.com/sharkgitz/eboxai/internal/model"

// BoardItem is an action item with enough email context to render a
// board card on its own.
type BoardItem struct {
	model.ActionItem
	EmailSubject string
	EmailSender  string
}

// FlattenActionItems projects the email collection into board items.
// Emails the agent has not processed yet contribute nothing.
func FlattenActionItems(emails []model.Email) []BoardItem {
	var items []BoardItem
	for _, e := range emails {
		for _, it := range e.ActionItems {
			items = append(items, BoardItem{
				ActionItem:   it,
				EmailSubject: e.Subject,
				EmailSender:  e.Sender,
			})
		}
	}
	return items
}

// PartitionBoard splits items into the pending and completed columns.
// Columns are recomputed from item status on every call; there is no
// stored column assignment.
func PartitionBoard(items []BoardItem) (pending, completed []BoardItem) {
	for _, it := range items {
		if it.Status == model.StatusCompleted {
			completed = append(completed, it)
		} else {
			pending = append(pending, it)
		}
	}
	return pending, completed
}

// PartitionFollowUps splits commitments into the user's own and those
// owed by others, by equality of committed_by with the literal "me".
func PartitionFollowUps(followups []model.FollowUp) (mine, others []model.FollowUp) {
	for _, f := range followups {
		if f.CommittedBy == "me" {
			mine = append(mine, f)
		} else {
			others = append(others, f)
		}
	}
	return mine, others
}

// SortMeetings orders meetings soonest first.
func SortMeetings(meetings []model.Meeting) []model.Meeting {
	return SortBy(func(a, b model.Meeting) bool {
		return a.Datetime.Before(b.Datetime.Time)
	})(meetings)
}
