package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paisaflow/paisaflow/internal/rules"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate extraction rule documents",
	}

	cmd.AddCommand(rulesShowCmd())
	cmd.AddCommand(rulesCheckCmd())

	return cmd
}

func rulesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show a summary of the active rule document",
		RunE: func(_ *cobra.Command, _ []string) error {
			doc, err := newLoader().Load()
			if err != nil {
				return err
			}

			fmt.Printf("Rule document version %d, %d banks\n\n", doc.Version, len(doc.Banks))
			for _, bank := range doc.Banks {
				mode := "heuristic"
				if bank.ConfidenceWeights != nil {
					mode = "weighted"
				}
				fmt.Printf("%-10s senders=%d amount=%d merchant=%d date=%d type=%d scoring=%s\n",
					bank.Code,
					len(bank.SenderPatterns),
					len(bank.Patterns.Amount),
					len(bank.Patterns.Merchant),
					len(bank.Patterns.Date),
					len(bank.Patterns.TransactionType),
					mode)
			}
			fmt.Printf("\nfallback: amount=%d merchant=%d\n",
				len(doc.FallbackPatterns.Amount), len(doc.FallbackPatterns.Merchant))
			return nil
		},
	}
}

func rulesCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a rule document without activating it",
		Long: `Parse, validate and compile every pattern in a rule document.
Reports the first problem found; a document that passes can be used with
--rules.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, err := rules.NewFileLoader(args[0]).Load()
			if err != nil {
				var ruleErr *rules.Error
				if errors.As(err, &ruleErr) {
					return fmt.Errorf("%s error: %w", ruleErr.Kind, err)
				}
				return err
			}

			fmt.Printf("%s: OK\n", args[0])
			return nil
		},
	}
}
