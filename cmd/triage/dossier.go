package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dossierCmd = &cobra.Command{
	Use:   "dossier <email-id>",
	Short: "Show the sender profile for an email",
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

		d, err := s.Gateway.GetDossier(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s <%s>\n", d.Identity.Name, d.Identity.Email)
		if d.Identity.Role != "" || d.Identity.Company != "" {
			fmt.Printf("%s, %s\n", d.Identity.Role, d.Identity.Company)
		}
		fmt.Printf("Sentiment: %s (trend %s)\n", d.Sentiment.Current, d.Sentiment.Trend)

		if len(d.History) > 0 {
			fmt.Println("\nHistory:")
			for _, h := range d.History {
				fmt.Printf("  %s  %s [%s]\n    %s\n", h.Date, h.Subject, h.Tone, h.Snippet)
			}
		}
		return nil
	},
}
