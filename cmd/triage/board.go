package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sharkgitz/eboxai/internal/derive"
	"github.com/sharkgitz/eboxai/internal/model"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Action-item board across the whole inbox",
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show pending and completed columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, log, err := newSession()
		if err != nil {
			return err
		}
		defer s.Stop()
		defer log.Sync()

		ctx, cancel := cmdContext()
		defer cancel()

		if err := s.Board.Load(ctx); err != nil {
			return fmt.Errorf("board load failed: %w", err)
		}

		pending, completed := derive.PartitionBoard(s.Board.Items())

		fmt.Printf("PENDING (%d)\n", len(pending))
		for _, it := range pending {
			fmt.Printf("  #%d %s", it.ID, it.Description)
			if it.Deadline != "" {
				fmt.Printf(" (due %s)", it.Deadline)
			}
			fmt.Printf("  <%s>\n", it.EmailSubject)
		}
		fmt.Printf("\nCOMPLETED (%d)\n", len(completed))
		for _, it := range completed {
			fmt.Printf("  #%d %s  <%s>\n", it.ID, it.Description, it.EmailSubject)
		}
		return nil
	},
}

var boardToggleCmd = &cobra.Command{
	Use:   "toggle <item-id>",
	Short: "Toggle an action item between pending and completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}

		s, log, err := newSession()
		if err != nil {
			return err
		}
		defer s.Stop()
		defer log.Sync()

		ctx, cancel := cmdContext()
		defer cancel()

		if err := s.Board.Load(ctx); err != nil {
			return fmt.Errorf("board load failed: %w", err)
		}

		item, ok := s.Board.Get(id)
		if !ok {
			return fmt.Errorf("no action item #%d", id)
		}
		newStatus := model.StatusCompleted
		if item.Status == model.StatusCompleted {
			newStatus = model.StatusPending
		}

		// Optimistic flip first, confirming call second, rollback via
		// re-fetch if the confirmation fails.
		mut, err := s.Board.Mutate(id, func(it *derive.BoardItem) {
			it.Status = newStatus
		})
		if err != nil {
			return err
		}

		if err := s.Gateway.SetActionItemStatus(ctx, id, newStatus); err != nil {
			if rbErr := mut.Rollback(ctx); rbErr != nil {
				return fmt.Errorf("update failed (%v) and rollback failed: %w", err, rbErr)
			}
			current, _ := s.Board.Get(id)
			return fmt.Errorf("update failed, reverted to %q: %w", current.Status, err)
		}
		mut.Commit()
		fmt.Printf("#%d -> %s\n", id, newStatus)
		return nil
	},
}

func init() {
	boardCmd.AddCommand(boardListCmd, boardToggleCmd)
}
