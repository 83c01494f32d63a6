package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sharkgitz/eboxai/internal/derive"
	"github.com/sharkgitz/eboxai/internal/model"
)

var followupsCmd = &cobra.Command{
	Use:   "followups",
	Short: "Tracked commitments, yours and theirs",
}

var followupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List commitments partitioned into mine and waiting-on-others",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, log, err := newSession()
		if err != nil {
			return err
		}
		defer s.Stop()
		defer log.Sync()

		ctx, cancel := cmdContext()
		defer cancel()

		if err := s.FollowUps.Load(ctx); err != nil {
			return fmt.Errorf("follow-ups load failed: %w", err)
		}

		mine, others := derive.PartitionFollowUps(s.FollowUps.Items())

		fmt.Printf("MY COMMITMENTS (%d)\n", len(mine))
		printFollowUps(mine)
		fmt.Printf("\nWAITING ON OTHERS (%d)\n", len(others))
		printFollowUps(others)
		return nil
	},
}

func printFollowUps(followups []model.FollowUp) {
	for _, f := range followups {
		box := " "
		if f.Status == model.StatusCompleted {
			box = "x"
		}
		fmt.Printf("  [%s] #%d %s", box, f.ID, f.Commitment)
		if f.DueDate != "" {
			fmt.Printf(" (due %s)", f.DueDate)
		}
		if f.CommittedBy != "me" {
			fmt.Printf(" (by %s)", f.CommittedBy)
		}
		fmt.Println()
	}
}

var followupsToggleCmd = &cobra.Command{
	Use:   "toggle <followup-id>",
	Short: "Toggle a follow-up between pending and completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid follow-up id %q", args[0])
		}

		s, log, err := newSession()
		if err != nil {
			return err
		}
		defer s.Stop()
		defer log.Sync()

		ctx, cancel := cmdContext()
		defer cancel()

		if err := s.FollowUps.Load(ctx); err != nil {
			return fmt.Errorf("follow-ups load failed: %w", err)
		}

		current, ok := s.FollowUps.Get(id)
		if !ok {
			return fmt.Errorf("no follow-up #%d", id)
		}
		newStatus := model.StatusCompleted
		if current.Status == model.StatusCompleted {
			newStatus = model.StatusPending
		}

		mut, err := s.FollowUps.Mutate(id, func(f *model.FollowUp) {
			f.Status = newStatus
		})
		if err != nil {
			return err
		}

		if err := s.Gateway.SetFollowUpStatus(ctx, id, newStatus); err != nil {
			if rbErr := mut.Rollback(ctx); rbErr != nil {
				return fmt.Errorf("update failed (%v) and rollback failed: %w", err, rbErr)
			}
			reverted, _ := s.FollowUps.Get(id)
			return fmt.Errorf("update failed, reverted to %q: %w", reverted.Status, err)
		}
		mut.Commit()
		fmt.Printf("#%d -> %s\n", id, newStatus)
		return nil
	},
}

func init() {
	followupsCmd.AddCommand(followupsListCmd, followupsToggleCmd)
}
