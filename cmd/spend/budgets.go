package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smartspend/smartspend/internal/cli"
	"github.com/smartspend/smartspend/internal/common"
	"github.com/smartspend/smartspend/internal/model"
	"github.com/smartspend/smartspend/internal/report"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage monthly budget goals",
		Long:  `Set, update, and delete monthly spending ceilings, one per category.`,
	}

	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(updateBudgetCmd())
	cmd.AddCommand(deleteBudgetCmd())

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets with this month's progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			budgets, err := d.Budgets.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to get budgets: %w", err)
			}
			if len(budgets) == 0 {
				fmt.Println(cli.FormatInfo("No budgets set. Use 'spend budgets set' to create one."))
				return nil
			}

			categories, err := d.Categories.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}
			txns, err := d.Transactions.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}

			summary := report.Summarize(txns, categories, budgets, model.Today())

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Budget"),
				cli.TableHeaderStyle.Render("Spent"),
				cli.TableHeaderStyle.Render("Progress"),
				cli.TableHeaderStyle.Render("ID"))

			for _, status := range summary.Budgets {
				progress := fmt.Sprintf("%.0f%%", status.ProgressPercent)
				if status.Overspent {
					progress = cli.ErrorStyle.Render(fmt.Sprintf("%.0f%% (over by %s)",
						status.ProgressPercent, cli.FormatCurrency(status.OverspendAmount)))
				}
				fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\t%s\n",
					cli.IconGlyph(status.Icon), status.CategoryName,
					cli.FormatCurrency(status.Budget.Amount),
					cli.FormatCurrency(status.Spent),
					progress,
					cli.SubtleStyle.Render(status.Budget.ID))
			}

			return nil
		},
	}
}

func setBudgetCmd() *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "set <category>",
		Short: "Set a budget for a category",
		Long: `Create a monthly budget for a category, given by id or name. Each
category can carry at most one budget; setting a second is refused.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			categoryID, err := resolveCategory(ctx, d, args[0])
			if err != nil {
				return err
			}
			if categoryID == nil {
				return fmt.Errorf("category is required")
			}

			budget, err := d.AddBudget(ctx, *categoryID, amount)
			if err != nil {
				if errors.Is(err, common.ErrDuplicateEntry) {
					var userErr *common.UserError
					if errors.As(err, &userErr) {
						return fmt.Errorf("%s (use 'spend budgets update')", userErr.UserMessage)
					}
					return err
				}
				if err = reportSaveError(err); err != nil {
					return fmt.Errorf("failed to set budget: %w", err)
				}
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Budget of %s set (%s)",
				cli.FormatCurrency(budget.Amount), budget.ID)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "monthly ceiling (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func updateBudgetCmd() *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a budget's amount",
		Long:  `Change a budget's monthly ceiling. The category assignment cannot change.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			current, err := d.Budgets.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get budget: %w", err)
			}
			if current == nil {
				return fmt.Errorf("budget %q not found", id)
			}

			updated := *current
			updated.Amount = amount

			if err := d.UpdateBudget(ctx, updated); err != nil {
				if err = reportSaveError(err); err != nil {
					return fmt.Errorf("failed to update budget: %w", err)
				}
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Budget updated to %s", cli.FormatCurrency(amount))))
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "new monthly ceiling (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func deleteBudgetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			if !force {
				fmt.Printf("Delete budget %s? (y/N): ", id)
				var response string
				fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			if err := d.DeleteBudget(ctx, id); err != nil {
				if err = reportSaveError(err); err != nil {
					return fmt.Errorf("failed to delete budget: %w", err)
				}
			}

			fmt.Println(cli.FormatSuccess("Deleted budget " + id))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
