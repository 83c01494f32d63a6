package mockapi

import (
	"time"

	"github.com/sharkgitz/eboxai/internal/model"
)

func ts(value string) model.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return model.Time{Time: t}
}

// Seed fills an empty store with a fixed sample inbox: a mix of
// processed and unprocessed emails, follow-ups in both directions, and
// the default prompt set. Deterministic so tests can assert against it.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) > 0 {
		return
	}

	s.addEmailLocked(model.EmailDetail{
		Email: model.Email{
			ID:           "em-001",
			Sender:       "maria.keller@apexlogistics.com",
			Subject:      "Urgent: invoice #4417 overdue",
			Body:         "Hi,\n\nInvoice #4417 is now 10 days overdue. Please arrange payment today or we will have to pause the account.\n\n- Confirm payment date\n- Send remittance advice\n\nMaria",
			Timestamp:    ts("2024-01-02T09:15:00Z"),
			Category:     "Important",
			IsRead:       false,
			Sentiment:    "urgent",
			UrgencyScore: 9,
			DeadlineText: "today",
			ActionItems: []model.ActionItem{
				{ID: 1, EmailID: "em-001", Description: "Confirm payment date", Deadline: "today", Status: model.StatusPending},
				{ID: 2, EmailID: "em-001", Description: "Send remittance advice", Status: model.StatusPending},
			},
		},
	})

	s.addEmailLocked(model.EmailDetail{
		Email: model.Email{
			ID:           "em-002",
			Sender:       "dev.weekly@newsdigest.io",
			Subject:      "Your weekly engineering digest",
			Body:         "Top stories this week... To stop receiving these, unsubscribe below.",
			Timestamp:    ts("2024-01-02T07:00:00Z"),
			Category:     "Newsletter",
			IsRead:       true,
			Sentiment:    "neutral",
			UrgencyScore: 1,
		},
	})

	s.addEmailLocked(model.EmailDetail{
		Email: model.Email{
			ID:           "em-003",
			Sender:       "tom.reyes@apexlogistics.com",
			Subject:      "Zoom invite: Q1 roadmap sync",
			Body:         "Sending a calendar invite for the Q1 roadmap sync. Please review the draft agenda before the meeting.",
			Timestamp:    ts("2024-01-03T14:30:00Z"),
			Category:     "To-Do",
			IsRead:       false,
			Sentiment:    "neutral",
			UrgencyScore: 5,
			ActionItems: []model.ActionItem{
				{ID: 3, EmailID: "em-003", Description: "Review the draft agenda", Status: model.StatusPending},
			},
		},
	})

	s.addEmailLocked(model.EmailDetail{
		Email: model.Email{
			// The long free-text category mirrors real model output
			// leaking reasoning into the label field.
			ID:                  "em-004",
			Sender:              "no-reply@dealblitz.shop",
			Subject:             "LAST CHANCE: 80% off everything, act now!",
			Body:                "Don't miss out! This offer disappears at midnight. Act now!",
			Timestamp:           ts("2024-01-03T18:45:00Z"),
			Category:            "**Spam** - this message uses manufactured urgency and scarcity cues to pressure the recipient",
			IsRead:              false,
			Sentiment:           "negative",
			UrgencyScore:        2,
			HasDarkPatterns:     true,
			DarkPatterns:        []string{"false_urgency", "scarcity"},
			DarkPatternSeverity: "high",
		},
	})

	s.addEmailLocked(model.EmailDetail{
		Email: model.Email{
			ID:        "em-005",
			Sender:    "li.chen@northwindlabs.com",
			Subject:   "Partnership proposal follow-up",
			Body:      "Thanks for the great call last week. I promised to send over the revised proposal; you mentioned you would loop in your legal team by Friday.",
			Timestamp: ts("2024-01-04T11:20:00Z"),
			Category:  "Pending Analysis",
			IsRead:    false,
		},
	})

	s.addEmailLocked(model.EmailDetail{
		Email: model.Email{
			ID:        "em-006",
			Sender:    "sam.oduya@apexlogistics.com",
			Subject:   "Schedule: warehouse audit next week",
			Body:      "Can we schedule the warehouse audit for Tuesday? I need to book the site visit. Please confirm your availability.",
			Timestamp: ts("2024-01-05T08:05:00Z"),
			Category:  "Pending Analysis",
			IsRead:    false,
		},
	})

	s.nextItemID = 4
	s.nextDraftID = 1

	s.followups = []*model.FollowUp{
		{ID: 1, EmailID: "em-005", Commitment: "Loop in legal team on the revised proposal", CommittedBy: "me", DueDate: "Friday", Status: model.StatusPending, CreatedAt: ts("2024-01-04T11:25:00Z")},
		{ID: 2, EmailID: "em-005", Commitment: "Send over the revised proposal", CommittedBy: "li.chen@northwindlabs.com", DueDate: "", Status: model.StatusCompleted, CreatedAt: ts("2024-01-04T11:25:00Z")},
		{ID: 3, EmailID: "em-001", Commitment: "Confirm payment date for invoice #4417", CommittedBy: "me", DueDate: "today", Status: model.StatusPending, CreatedAt: ts("2024-01-02T09:20:00Z")},
	}
	s.nextFollowUpID = 4

	s.prompts = []*model.Prompt{
		{ID: 1, Name: "Categorization", Template: "Classify this email into one of: Important, Newsletter, Spam, To-Do.\n\nSubject: {subject}\nFrom: {sender}\n\n{body}", PromptType: "categorization"},
		{ID: 2, Name: "Action Extraction", Template: "List the concrete action items in this email.\n\n{body}", PromptType: "extraction"},
		{ID: 3, Name: "Reply Draft", Template: "Write a reply to {sender} about \"{subject}\".\n\n{body}", PromptType: "reply"},
		{ID: 4, Name: "Chat", Template: "Answer the user's question using the inbox context.\n\n{body}", PromptType: "chat"},
	}
	s.nextPromptID = 5
}
