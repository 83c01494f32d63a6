package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sharkgitz/eboxai/internal/gateway"
)

var (
	flagPromptName     string
	flagPromptTemplate string
	flagPromptFile     string
	flagPromptType     string
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Inspect and edit the backend prompt templates",
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompt templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, log, err := newSession()
		if err != nil {
			return err
		}
		defer s.Stop()
		defer log.Sync()

		ctx, cancel := cmdContext()
		defer cancel()

		prompts, err := s.Gateway.ListPrompts(ctx)
		if err != nil {
			return err
		}
		for _, p := range prompts {
			fmt.Printf("#%d %s [%s]\n%s\n\n", p.ID, p.Name, p.PromptType, p.Template)
		}
		return nil
	},
}

var promptsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a prompt template",
	RunE: func(cmd *cobra.Command, args []string) error {
		template, err := resolveTemplate()
		if err != nil {
			return err
		}
		if flagPromptName == "" || template == "" {
			return fmt.Errorf("--name and --template (or --template-file) are required")
		}

		s, log, err := newSession()
		if err != nil {
			return err
		}
		defer s.Stop()
		defer log.Sync()

		ctx, cancel := cmdContext()
		defer cancel()

		created, err := s.Gateway.CreatePrompt(ctx, gateway.PromptSpec{
			Name:       flagPromptName,
			Template:   template,
			PromptType: flagPromptType,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created prompt #%d %s\n", created.ID, created.Name)
		return nil
	},
}

var promptsSetCmd = &cobra.Command{
	Use:   "set <prompt-id>",
	Short: "Update a prompt's template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid prompt id %q", args[0])
		}
		template, err := resolveTemplate()
		if err != nil {
			return err
		}

		s, log, err := newSession()
		if err != nil {
			return err
		}
		defer s.Stop()
		defer log.Sync()

		ctx, cancel := cmdContext()
		defer cancel()

		// PUT replaces the whole prompt, so fill unset fields from the
		// current value.
		prompts, err := s.Gateway.ListPrompts(ctx)
		if err != nil {
			return err
		}
		spec := gateway.PromptSpec{}
		found := false
		for _, p := range prompts {
			if p.ID == id {
				spec = gateway.PromptSpec{Name: p.Name, Template: p.Template, PromptType: p.PromptType}
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("no prompt #%d", id)
		}
		if flagPromptName != "" {
			spec.Name = flagPromptName
		}
		if template != "" {
			spec.Template = template
		}
		if flagPromptType != "" {
			spec.PromptType = flagPromptType
		}

		updated, err := s.Gateway.UpdatePrompt(ctx, id, spec)
		if err != nil {
			return err
		}
		fmt.Printf("updated prompt #%d %s\n", updated.ID, updated.Name)
		return nil
	},
}

func resolveTemplate() (string, error) {
	if flagPromptFile != "" {
		data, err := os.ReadFile(flagPromptFile)
		if err != nil {
			return "", fmt.Errorf("failed to read template file: %w", err)
		}
		return string(data), nil
	}
	return flagPromptTemplate, nil
}

var playgroundCmd = &cobra.Command{
	Use:   "playground test <email-id>",
	Short: "Run a template against one email without saving",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] != "test" {
			return fmt.Errorf("unknown playground subcommand %q", args[0])
		}
		template, err := resolveTemplate()
		if err != nil {
			return err
		}
		if template == "" {
			return fmt.Errorf("--template or --template-file is required")
		}

		s, log, err := newSession()
		if err != nil {
			return err
		}
		defer s.Stop()
		defer log.Sync()

		ctx, cancel := cmdContext()
		defer cancel()

		response, err := s.Gateway.TestPrompt(ctx, args[1], template)
		if err != nil {
			return err
		}
		fmt.Println(response)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{promptsCreateCmd, promptsSetCmd, playgroundCmd} {
		c.Flags().StringVar(&flagPromptName, "name", "", "prompt name")
		c.Flags().StringVar(&flagPromptTemplate, "template", "", "template text")
		c.Flags().StringVar(&flagPromptFile, "template-file", "", "read template from file")
		c.Flags().StringVar(&flagPromptType, "type", "", "prompt type tag")
	}
	promptsCmd.AddCommand(promptsListCmd, promptsCreateCmd, promptsSetCmd)
}
