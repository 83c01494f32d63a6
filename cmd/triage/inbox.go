package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sharkgitz/eboxai/internal/derive"
	"github.com/sharkgitz/eboxai/internal/model"
	"github.com/sharkgitz/eboxai/internal/viewstate"
)

var (
	flagSort     string
	flagSearch   string
	flagCategory string
	flagUnread   bool
	flagLimit    int
)

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Browse and manage the inbox",
}

var inboxLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Trigger backend inbox ingestion",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, log, err := newSession()
		if err != nil {
			return err
		}
		defer s.Stop()
		defer log.Sync()

		ctx, cancel := cmdContext()
		defer cancel()

		if err := s.Gateway.LoadInbox(ctx); err != nil {
			return err
		}
		fmt.Println("inbox load triggered")
		return nil
	},
}

var inboxListCmd = &cobra.Command{
	Use:   "list",
	Short: "List emails with local filtering and sorting",
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

		transforms := []viewstate.Transform[model.Email]{
			derive.SearchEmails(flagSearch),
			derive.ByCategory(flagCategory),
		}
		if flagUnread {
			transforms = append(transforms, derive.UnreadOnly())
		}
		if flagSort == "priority" {
			transforms = append(transforms, derive.SortEmailsByPriority())
		} else {
			transforms = append(transforms, derive.SortEmailsByDate())
		}
		transforms = append(transforms, derive.Limit[model.Email](flagLimit))

		emails := s.Inbox.View(transforms...)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tURG\tCATEGORY\tFROM\tSUBJECT\tDATE")
		for _, e := range emails {
			marker := " "
			if !e.IsRead {
				marker = "*"
			}
			fmt.Fprintf(w, "%s%s\t%d\t%s\t%s\t%s\t%s\n",
				marker, e.ID, e.UrgencyScore, derive.CleanCategory(e.Category),
				e.Sender, e.Subject, e.Timestamp.Format("2006-01-02 15:04"))
		}
		w.Flush()
		fmt.Printf("%d of %d emails\n", len(emails), s.Inbox.Len())
		return nil
	},
}

var inboxShowCmd = &cobra.Command{
	Use:   "show <email-id>",
	Short: "Show one email with action items and drafts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, log, err := newSession()
		if err != nil {
			return err
		}
		defer s.Stop()
		defer log.Sync()

		ctx, cancel := cmdContext()
		defer cancel()

		detail, err := s.Gateway.GetEmailDetail(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("From:     %s\n", detail.Sender)
		fmt.Printf("Subject:  %s\n", detail.Subject)
		fmt.Printf("Date:     %s\n", detail.Timestamp.Format("2006-01-02 15:04"))
		fmt.Printf("Category: %s\n", derive.CleanCategory(detail.Category))
		if detail.UrgencyScore > 0 {
			fmt.Printf("Urgency:  %d/10 (%s)\n", detail.UrgencyScore, detail.Sentiment)
		}
		if detail.HasDarkPatterns {
			fmt.Printf("Warning:  dark patterns detected: %v (%s)\n", detail.DarkPatterns, detail.DarkPatternSeverity)
		}
		fmt.Printf("\n%s\n", detail.Body)

		if len(detail.ActionItems) > 0 {
			fmt.Println("\nAction items:")
			for _, it := range detail.ActionItems {
				box := " "
				if it.Status == model.StatusCompleted {
					box = "x"
				}
				fmt.Printf("  [%s] #%d %s", box, it.ID, it.Description)
				if it.Deadline != "" {
					fmt.Printf(" (due %s)", it.Deadline)
				}
				fmt.Println()
			}
		}
		if len(detail.Drafts) > 0 {
			fmt.Println("\nDrafts:")
			for _, d := range detail.Drafts {
				fmt.Printf("  #%d %s [%s]\n", d.ID, d.Subject, d.Status)
			}
		}
		return nil
	},
}

var inboxRmCmd = &cobra.Command{
	Use:   "rm <email-id>",
	Short: "Delete an email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, log, err := newSession()
		if err != nil {
			return err
		}
		defer s.Stop()
		defer log.Sync()

		ctx, cancel := cmdContext()
		defer cancel()

		// Deletes are never optimistic: confirm server-side first, then
		// drop the local copy.
		if err := s.Gateway.DeleteEmail(ctx, args[0]); err != nil {
			return err
		}
		s.Inbox.RemoveLocal(args[0])
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	inboxListCmd.Flags().StringVar(&flagSort, "sort", "date", "sort order: date or priority")
	inboxListCmd.Flags().StringVar(&flagSearch, "search", "", "case-insensitive search over sender, subject, body")
	inboxListCmd.Flags().StringVar(&flagCategory, "category", "", "filter by cleaned category")
	inboxListCmd.Flags().BoolVar(&flagUnread, "unread", false, "unread emails only")
	inboxListCmd.Flags().IntVar(&flagLimit, "limit", -1, "maximum number of rows")

	inboxCmd.AddCommand(inboxLoadCmd, inboxListCmd, inboxShowCmd, inboxRmCmd)
}
