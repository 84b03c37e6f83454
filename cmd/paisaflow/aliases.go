package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/paisaflow/paisaflow/internal/merchant"
	"github.com/paisaflow/paisaflow/internal/model"
)

func aliasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aliases",
		Short: "Manage merchant display names and categories",
		Long: `View, set and remove merchant aliases. Aliases are keyed by the
normalized form of the merchant text, so all variants of a merchant share
one entry.`,
	}

	cmd.AddCommand(aliasesListCmd())
	cmd.AddCommand(aliasesSetCmd())
	cmd.AddCommand(aliasesRemoveCmd())
	cmd.AddCommand(aliasesExcludeCmd())

	return cmd
}

func aliasesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all merchant aliases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			registry := merchant.NewRegistry(store)
			aliases, err := registry.AllAliases(cmd.Context())
			if err != nil {
				return err
			}

			if len(aliases) == 0 {
				fmt.Println("No aliases defined yet.")
				return nil
			}

			keys := make([]string, 0, len(aliases))
			for key := range aliases {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			fmt.Printf("%-30s %-25s %-15s %s\n", "MERCHANT", "DISPLAY NAME", "CATEGORY", "COLOR")
			for _, key := range keys {
				alias := aliases[key]
				fmt.Printf("%-30s %-25s %-15s %s\n",
					alias.CanonicalKey, alias.DisplayName, alias.Category, alias.CategoryColor)
			}
			return nil
		},
	}
}

func aliasesSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <merchant> <display-name> <category>",
		Short: "Set the display name and category for a merchant",
		Long: `Set an alias for a merchant. The merchant argument is normalized
before use, so any raw variant can be given. Conflicts with existing
aliases are reported before anything is written; pass --force to resolve
them in favor of the new mapping.`,
		Args: cobra.ExactArgs(3),
		RunE: runAliasesSet,
	}

	cmd.Flags().Bool("force", false, "Apply the alias even when it conflicts with an existing one")
	cmd.Flags().String("color", "", "Category color (default: the category's standard color)")

	return cmd
}

func runAliasesSet(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	color, _ := cmd.Flags().GetString("color")

	key := merchant.Normalize(args[0])
	displayName, category := args[1], args[2]
	if color == "" {
		color = merchant.CategoryColor(category)
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	registry := merchant.NewRegistry(store)

	conflict, err := registry.CheckConflict(cmd.Context(), key, displayName, category)
	if err != nil {
		return err
	}

	switch conflict.Type {
	case model.ConflictNone:
		if len(conflict.AffectedMerchants) > 0 {
			fmt.Printf("Grouping with existing merchants: %v\n", conflict.AffectedMerchants)
		}
	case model.ConflictOverwriteExisting:
		if !force {
			return fmt.Errorf("alias for %s already exists (%s / %s); re-run with --force to overwrite",
				key, conflict.ExistingDisplayName, conflict.ExistingCategory)
		}
	case model.ConflictCategoryMismatch:
		if !force {
			return fmt.Errorf("display name %q is already used under category %s; re-run with --force to proceed",
				displayName, conflict.ExistingCategory)
		}
	case model.ConflictDisplayNameExists:
		// Not produced by the default conflict check.
	}

	if err := registry.Set(cmd.Context(), key, displayName, category, color); err != nil {
		return err
	}

	fmt.Printf("Alias set: %s -> %s (%s)\n", key, displayName, category)
	return nil
}

func aliasesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <merchant>",
		Short: "Remove the alias for a merchant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			registry := merchant.NewRegistry(store)
			key := merchant.Normalize(args[0])
			if err := registry.Remove(cmd.Context(), key); err != nil {
				return err
			}

			fmt.Printf("Alias removed: %s\n", key)
			return nil
		},
	}
}

func aliasesExcludeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exclude <merchant>",
		Short: "Exclude or re-include a merchant",
		Long:  `Flag a merchant as excluded. Pass --off to re-include it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			off, _ := cmd.Flags().GetBool("off")

			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			key := merchant.Normalize(args[0])
			if err := store.SetMerchantExcluded(cmd.Context(), key, !off); err != nil {
				return err
			}

			fmt.Printf("Merchant %s excluded=%v\n", key, !off)
			return nil
		},
	}

	cmd.Flags().Bool("off", false, "Re-include the merchant")

	return cmd
}
