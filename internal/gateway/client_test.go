package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sharkgitz/eboxai/internal/gateway"
	"github.com/sharkgitz/eboxai/internal/mockapi"
	"github.com/sharkgitz/eboxai/internal/model"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newBackend starts a seeded mock backend and a client pointed at it.
func newBackend(t *testing.T) (*mockapi.Store, *gateway.Client) {
	t.Helper()
	store := mockapi.NewStore()
	store.Seed()
	srv := httptest.NewServer(mockapi.NewRouter(store, zap.NewNop()))
	t.Cleanup(srv.Close)
	return store, gateway.New(srv.URL, 5*time.Second, zap.NewNop())
}

func TestListEmails(t *testing.T) {
	_, client := newBackend(t)

	emails, err := client.ListEmails(context.Background(), gateway.SortByDate)
	require.NoError(t, err)
	require.Len(t, emails, 6)
	assert.Equal(t, "em-006", emails[0].ID, "newest first")

	byPriority, err := client.ListEmails(context.Background(), gateway.SortByPriority)
	require.NoError(t, err)
	assert.Equal(t, "em-001", byPriority[0].ID, "highest urgency first")
}

func TestGetEmailDetail(t *testing.T) {
	_, client := newBackend(t)

	detail, err := client.GetEmailDetail(context.Background(), "em-001")
	require.NoError(t, err)
	assert.Equal(t, "maria.keller@apexlogistics.com", detail.Sender)
	require.Len(t, detail.ActionItems, 2)
	assert.Equal(t, model.StatusPending, detail.ActionItems[0].Status)

	_, err = client.GetEmailDetail(context.Background(), "em-999")
	assert.True(t, gateway.IsNotFound(err))
}

func TestDeleteEmail(t *testing.T) {
	store, client := newBackend(t)

	require.NoError(t, client.DeleteEmail(context.Background(), "em-002"))
	assert.Equal(t, 5, store.EmailCount())

	err := client.DeleteEmail(context.Background(), "em-002")
	assert.True(t, gateway.IsNotFound(err))
}

func TestSetActionItemStatus(t *testing.T) {
	store, client := newBackend(t)

	require.NoError(t, client.SetActionItemStatus(context.Background(), 1, model.StatusCompleted))

	detail, ok := store.GetEmail("em-001")
	require.True(t, ok)
	assert.Equal(t, model.StatusCompleted, detail.ActionItems[0].Status)

	err := client.SetActionItemStatus(context.Background(), 999, model.StatusCompleted)
	assert.True(t, gateway.IsNotFound(err))
}

func TestProcessEmailMarksRead(t *testing.T) {
	_, client := newBackend(t)

	require.NoError(t, client.ProcessEmail(context.Background(), "em-005"))

	detail, err := client.GetEmailDetail(context.Background(), "em-005")
	require.NoError(t, err)
	assert.True(t, detail.IsRead)
	assert.NotEqual(t, "Pending Analysis", detail.Category)
}

func TestChat(t *testing.T) {
	_, client := newBackend(t)

	scoped, err := client.Chat(context.Background(), "what is this about?", "em-001")
	require.NoError(t, err)
	assert.Contains(t, scoped, "invoice #4417")

	unscoped, err := client.Chat(context.Background(), "how is my inbox?", "")
	require.NoError(t, err)
	assert.Contains(t, unscoped, "6 emails")

	_, err = client.Chat(context.Background(), "hm?", "em-999")
	assert.True(t, gateway.IsNotFound(err))
}

func TestGenerateDraft(t *testing.T) {
	_, client := newBackend(t)

	err := client.GenerateDraft(context.Background(), gateway.DraftRequest{
		EmailID: "em-001",
		Tone:    "friendly",
	})
	require.NoError(t, err)

	detail, err := client.GetEmailDetail(context.Background(), "em-001")
	require.NoError(t, err)
	require.Len(t, detail.Drafts, 1)
	assert.Equal(t, "Re: Urgent: invoice #4417 overdue", detail.Drafts[0].Subject)

	// Unknown email is a rejection, not a missing resource, on this route.
	err = client.GenerateDraft(context.Background(), gateway.DraftRequest{EmailID: "em-999"})
	kind, ok := gateway.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, gateway.KindValidation, kind)
}

func TestFollowUps(t *testing.T) {
	_, client := newBackend(t)

	followups, err := client.ListFollowUps(context.Background())
	require.NoError(t, err)
	require.Len(t, followups, 3)

	require.NoError(t, client.SetFollowUpStatus(context.Background(), 1, model.StatusCompleted))
	followups, err = client.ListFollowUps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, followups[0].Status)
}

func TestPrompts(t *testing.T) {
	_, client := newBackend(t)

	prompts, err := client.ListPrompts(context.Background())
	require.NoError(t, err)
	require.Len(t, prompts, 4)

	created, err := client.CreatePrompt(context.Background(), gateway.PromptSpec{
		Name:       "Summarize",
		Template:   "Summarize: {body}",
		PromptType: "summary",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, created.ID)

	updated, err := client.UpdatePrompt(context.Background(), created.ID, gateway.PromptSpec{
		Name:       "Summarize",
		Template:   "Summarize briefly: {body}",
		PromptType: "summary",
	})
	require.NoError(t, err)
	assert.Equal(t, "Summarize briefly: {body}", updated.Template)
}

func TestTestPrompt(t *testing.T) {
	_, client := newBackend(t)

	resp, err := client.TestPrompt(context.Background(), "em-002", "From {sender}: {subject}")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp, "[mock completion] "))
	assert.Contains(t, resp, "dev.weekly@newsdigest.io")
}

func TestMeetingsAndBrief(t *testing.T) {
	_, client := newBackend(t)

	meetings, err := client.ListMeetings(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, meetings)

	brief, err := client.GenerateMeetingBrief(context.Background(), meetings[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, brief.Summary)

	_, err = client.GenerateMeetingBrief(context.Background(), "mtg_em-999")
	assert.True(t, gateway.IsNotFound(err))
}

func TestDossier(t *testing.T) {
	store, client := newBackend(t)
	store.AddEmail(model.EmailDetail{Email: model.Email{
		ID:      "em-010",
		Sender:  "maria.keller@apexlogistics.com",
		Subject: "Re: invoice #4417",
		Body:    "Thanks, payment received.",
	}})

	dossier, err := client.GetDossier(context.Background(), "em-001")
	require.NoError(t, err)
	assert.Equal(t, "maria.keller@apexlogistics.com", dossier.Identity.Email)
	assert.Equal(t, "Maria Keller", dossier.Identity.Name)
	assert.Equal(t, "apexlogistics", dossier.Identity.Company)
	require.Len(t, dossier.History, 1)
	assert.Equal(t, "Re: invoice #4417", dossier.History[0].Subject)
}

func TestDashboardMetrics(t *testing.T) {
	_, client := newBackend(t)

	m, err := client.DashboardMetrics(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, m.ROI.HourlyRate)
}

func TestPing(t *testing.T) {
	_, client := newBackend(t)
	assert.NoError(t, client.Ping(context.Background()))
}

func TestLoadInboxSeedsThenSimulates(t *testing.T) {
	store := mockapi.NewStore()
	srv := httptest.NewServer(mockapi.NewRouter(store, zap.NewNop()))
	t.Cleanup(srv.Close)
	client := gateway.New(srv.URL, 5*time.Second, zap.NewNop())

	require.NoError(t, client.LoadInbox(context.Background()))
	assert.Equal(t, 6, store.EmailCount())

	require.NoError(t, client.LoadInbox(context.Background()))
	assert.Equal(t, 7, store.EmailCount(), "second load simulates an arrival")
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)
		client := gateway.New(srv.URL, time.Second, zap.NewNop())

		_, err := client.ListEmails(context.Background(), "")
		kind, ok := gateway.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, gateway.KindServer, kind)

		retryable, reason := gateway.IsRetryable(err)
		assert.True(t, retryable)
		assert.Equal(t, "server_error", reason)
	})

	t.Run("validation error carries detail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"bad input"}`, http.StatusUnprocessableEntity)
		}))
		t.Cleanup(srv.Close)
		client := gateway.New(srv.URL, time.Second, zap.NewNop())

		_, err := client.ListEmails(context.Background(), "")
		kind, ok := gateway.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, gateway.KindValidation, kind)
		assert.Contains(t, err.Error(), "validation_rejected")

		retryable, _ := gateway.IsRetryable(err)
		assert.False(t, retryable)
	})

	t.Run("undecodable 2xx body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("this is not json"))
		}))
		t.Cleanup(srv.Close)
		client := gateway.New(srv.URL, time.Second, zap.NewNop())

		_, err := client.ListEmails(context.Background(), "")
		kind, ok := gateway.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, gateway.KindServer, kind)

		retryable, reason := gateway.IsRetryable(err)
		assert.False(t, retryable)
		assert.Equal(t, "malformed_payload", reason)
	})

	t.Run("network error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()
		client := gateway.New(srv.URL, time.Second, zap.NewNop())

		_, err := client.ListEmails(context.Background(), "")
		kind, ok := gateway.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, gateway.KindNetwork, kind)

		retryable, _ := gateway.IsRetryable(err)
		assert.True(t, retryable)
	})

	t.Run("canceled context is not retryable", func(t *testing.T) {
		_, client := newBackend(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.ListEmails(ctx, "")
		require.Error(t, err)
		retryable, reason := gateway.IsRetryable(err)
		assert.False(t, retryable)
		assert.Equal(t, "context_canceled", reason)
	})
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	client := gateway.New(srv.URL, time.Second, zap.NewNop())

	for i := 0; i < 5; i++ {
		_, err := client.ListEmails(context.Background(), "")
		require.Error(t, err)
	}

	// Breaker trips; the next call is rejected without reaching the wire.
	_, err := client.ListEmails(context.Background(), "")
	require.Error(t, err)
	retryable, reason := gateway.IsRetryable(err)
	assert.False(t, retryable)
	assert.Equal(t, "circuit_open", reason)
}
