package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sharkgitz/eboxai/internal/derive"
	"github.com/sharkgitz/eboxai/internal/model"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Inbox stats derived locally plus backend analytics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, log, err := newSession()
		if err != nil {
			return err
		}
		defer s.Stop()
		defer log.Sync()

		ctx, cancel := cmdContext()
		defer cancel()

		if err := s.Inbox.Load(ctx); err != nil {
			return fmt.Errorf("inbox load failed: %w", err)
		}

		stats := derive.StatsFor(s.Inbox.Items())
		fmt.Printf("Emails:        %d (%d unread)\n", stats.Total, stats.Unread)
		fmt.Printf("Urgent:        %d (score >= %d)\n", stats.Urgent, derive.UrgentThreshold)
		fmt.Printf("Action items:  %d\n", stats.ActionItems)
		fmt.Printf("Dark patterns: %d\n", stats.DarkPatterns)

		cats := make([]string, 0, len(stats.Categories))
		for c := range stats.Categories {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		fmt.Println("\nCategories:")
		for _, c := range cats {
			fmt.Printf("  %-33s %d\n", c, stats.Categories[c])
		}

		// Backend analytics are nice-to-have; the local stats above stay
		// useful when the analytics route is down.
		metrics, err := s.Gateway.DashboardMetrics(ctx)
		if err != nil {
			log.Warn("backend analytics unavailable", zap.Error(err))
			return nil
		}
		fmt.Printf("\nROI: %.1f hours / $%.2f saved (at $%d/h)\n",
			metrics.ROI.HoursSaved, metrics.ROI.MoneySaved, metrics.ROI.HourlyRate)
		fmt.Println(trustLine(metrics.Trust))
		fmt.Printf("Trends: sentiment %s, top intent %s\n",
			metrics.Trends.SentimentVelocity, metrics.Trends.TopIntent)
		return nil
	},
}

func trustLine(t model.TrustMetrics) string {
	return fmt.Sprintf("Trust: %.1f%% confidence, %.1f%% hallucination rate, RAG %s",
		t.AverageConfidence, t.HallucinationRate, t.RAGUsage)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check backend connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, log, err := newSession()
		if err != nil {
			return err
		}
		defer s.Stop()
		defer log.Sync()

		s.StartStatusPoller(2 * time.Second)
		// The first poll fires immediately; give it a moment.
		time.Sleep(250 * time.Millisecond)

		if s.Online() {
			fmt.Println("backend: online")
		} else {
			fmt.Printf("backend: offline (breaker %s)\n", s.Gateway.BreakerState())
		}
		return nil
	},
}
