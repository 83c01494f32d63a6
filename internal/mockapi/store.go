// Package mockapi is an in-memory stand-in for the triage backend. It
// implements the full HTTP contract the client consumes, with a
// deterministic agent simulation instead of a model, and backs both the
// dev mock server and the gateway integration tests.
package mockapi

import (
	"sort"
	"strings"
	"sync"

	"github.com/sharkgitz/eboxai/internal/model"
)

type Store struct {
	mu sync.RWMutex

	emails map[string]*model.EmailDetail
	order  []string // insertion order of email ids

	followups      []*model.FollowUp
	prompts        []*model.Prompt
	nextItemID     int
	nextDraftID    int
	nextPromptID   int
	nextFollowUpID int
}

func NewStore() *Store {
	return &Store{
		emails:         make(map[string]*model.EmailDetail),
		nextItemID:     1,
		nextDraftID:    1,
		nextPromptID:   1,
		nextFollowUpID: 1,
	}
}

func (s *Store) AddEmail(e model.EmailDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addEmailLocked(e)
}

func (s *Store) addEmailLocked(e model.EmailDetail) {
	cp := e
	s.emails[cp.ID] = &cp
	s.order = append(s.order, cp.ID)
}

// ListEmails returns copies in the requested order. "priority" sorts by
// descending urgency then descending timestamp; anything else is date
// order, newest first.
func (s *Store) ListEmails(sortBy string) []model.EmailDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.EmailDetail, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.emails[id])
	}

	switch sortBy {
	case "priority":
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].UrgencyScore != out[j].UrgencyScore {
				return out[i].UrgencyScore > out[j].UrgencyScore
			}
			return out[i].Timestamp.After(out[j].Timestamp.Time)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Timestamp.After(out[j].Timestamp.Time)
		})
	}
	return out
}

func (s *Store) GetEmail(id string) (model.EmailDetail, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.emails[id]
	if !ok {
		return model.EmailDetail{}, false
	}
	return *e, true
}

func (s *Store) DeleteEmail(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.emails[id]; !ok {
		return false
	}
	delete(s.emails, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Store) EmailCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// UpdateActionItemStatus finds the item across all emails.
func (s *Store) UpdateActionItemStatus(itemID int, status string) (model.ActionItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.emails {
		for i := range e.ActionItems {
			if e.ActionItems[i].ID == itemID {
				e.ActionItems[i].Status = status
				return e.ActionItems[i], true
			}
		}
	}
	return model.ActionItem{}, false
}

func (s *Store) AddDraft(emailID string, d model.Draft) (model.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.emails[emailID]
	if !ok {
		return model.Draft{}, false
	}
	d.ID = s.nextDraftID
	s.nextDraftID++
	d.EmailID = emailID
	e.Drafts = append(e.Drafts, d)
	return d, true
}

func (s *Store) ListFollowUps() []model.FollowUp {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.FollowUp, 0, len(s.followups))
	for _, f := range s.followups {
		out = append(out, *f)
	}
	return out
}

func (s *Store) AddFollowUp(f model.FollowUp) model.FollowUp {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = s.nextFollowUpID
	s.nextFollowUpID++
	cp := f
	s.followups = append(s.followups, &cp)
	return cp
}

func (s *Store) UpdateFollowUpStatus(id int, status string) (model.FollowUp, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.followups {
		if f.ID == id {
			f.Status = status
			return *f, true
		}
	}
	return model.FollowUp{}, false
}

func (s *Store) ListPrompts() []model.Prompt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Prompt, 0, len(s.prompts))
	for _, p := range s.prompts {
		out = append(out, *p)
	}
	return out
}

func (s *Store) AddPrompt(p model.Prompt) model.Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextPromptID
	s.nextPromptID++
	cp := p
	s.prompts = append(s.prompts, &cp)
	return cp
}

func (s *Store) UpdatePrompt(id int, name, template, promptType string) (model.Prompt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.prompts {
		if p.ID == id {
			p.Name = name
			p.Template = template
			p.PromptType = promptType
			return *p, true
		}
	}
	return model.Prompt{}, false
}

// ProcessEmail runs the deterministic agent simulation: categorize by
// keyword, score urgency, flag dark patterns, extract action items from
// imperative lines, and mark the email read.
func (s *Store) ProcessEmail(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.emails[id]
	if !ok {
		return false
	}

	text := strings.ToLower(e.Subject + " " + e.Body)

	e.Category = categorize(text)
	e.UrgencyScore = urgencyScore(text)
	if e.UrgencyScore >= 7 {
		e.Sentiment = "urgent"
	} else if strings.Contains(text, "thank") || strings.Contains(text, "great") {
		e.Sentiment = "positive"
	} else {
		e.Sentiment = "neutral"
	}

	if strings.Contains(text, "act now") || strings.Contains(text, "last chance") || strings.Contains(text, "don't miss") {
		e.HasDarkPatterns = true
		e.DarkPatterns = []string{"false_urgency"}
		e.DarkPatternSeverity = "medium"
	}

	if len(e.ActionItems) == 0 {
		for _, line := range strings.Split(e.Body, "\n") {
			trimmed := strings.TrimSpace(line)
			lower := strings.ToLower(trimmed)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, "- ") || strings.Contains(lower, "please") || strings.Contains(lower, "need to") {
				e.ActionItems = append(e.ActionItems, model.ActionItem{
					ID:          s.nextItemID,
					EmailID:     e.ID,
					Description: strings.TrimPrefix(trimmed, "- "),
					Status:      model.StatusPending,
				})
				s.nextItemID++
			}
		}
	}

	e.IsRead = true
	return true
}

// ProcessAll processes every email in insertion order.
func (s *Store) ProcessAll() {
	s.mu.RLock()
	ids := append([]string(nil), s.order...)
	s.mu.RUnlock()
	for _, id := range ids {
		s.ProcessEmail(id)
	}
}

func categorize(text string) string {
	switch {
	case strings.Contains(text, "invoice") || strings.Contains(text, "payment") || strings.Contains(text, "contract"):
		return "Important"
	case strings.Contains(text, "unsubscribe") || strings.Contains(text, "newsletter") || strings.Contains(text, "digest"):
		return "Newsletter"
	case strings.Contains(text, "winner") || strings.Contains(text, "prize") || strings.Contains(text, "act now"):
		return "Spam"
	case strings.Contains(text, "please") || strings.Contains(text, "review") || strings.Contains(text, "deadline"):
		return "To-Do"
	default:
		return "Uncategorized"
	}
}

func urgencyScore(text string) int {
	score := 3
	for _, kw := range []string{"urgent", "asap", "immediately", "critical", "deadline", "today", "eod"} {
		if strings.Contains(text, kw) {
			score += 2
		}
	}
	if score > 10 {
		score = 10
	}
	return score
}
