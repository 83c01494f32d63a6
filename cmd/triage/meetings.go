package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sharkgitz/eboxai/internal/derive"
)

var meetingsCmd = &cobra.Command{
	Use:   "meetings",
	Short: "Upcoming meetings and prep briefs",
}

var meetingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List upcoming meetings, soonest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, log, err := newSession()
		if err != nil {
			return err
		}
		defer s.Stop()
		defer log.Sync()

		ctx, cancel := cmdContext()
		defer cancel()

		meetings, err := s.Gateway.ListMeetings(ctx)
		if err != nil {
			return err
		}
		for _, m := range derive.SortMeetings(meetings) {
			fmt.Printf("%s  %s\n    %s  with %s\n",
				m.ID, m.Title,
				m.Datetime.Format("2006-01-02 15:04"),
				strings.Join(m.Participants, ", "))
		}
		return nil
	},
}

var meetingsBriefCmd = &cobra.Command{
	Use:   "brief <meeting-id>",
	Short: "Generate a prep brief for one meeting",
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

		brief, err := s.Gateway.GenerateMeetingBrief(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Summary: %s\n", brief.Summary)
		fmt.Println("\nKey points:")
		for _, p := range brief.KeyPoints {
			fmt.Printf("  - %s\n", p)
		}
		fmt.Println("\nTalking points:")
		for _, p := range brief.TalkingPoints {
			fmt.Printf("  - %s\n", p)
		}
		fmt.Printf("\nSentiment: %s\n", brief.Sentiment)
		return nil
	},
}

func init() {
	meetingsCmd.AddCommand(meetingsListCmd, meetingsBriefCmd)
}
