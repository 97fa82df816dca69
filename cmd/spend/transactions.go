package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smartspend/smartspend/internal/cli"
	"github.com/smartspend/smartspend/internal/data"
	"github.com/smartspend/smartspend/internal/model"
	"github.com/smartspend/smartspend/internal/report"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
		Long:    `List, add, update, delete, and import expense transactions.`,
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(updateTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())
	cmd.AddCommand(importTransactionsCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var monthOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			txns, err := d.Transactions.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}
			if monthOnly {
				txns = report.MonthlyTransactions(txns, model.Today())
			}

			if len(txns) == 0 {
				fmt.Println(cli.FormatInfo("No transactions found. Use 'spend transactions add' to record one."))
				return nil
			}

			categories, err := d.Categories.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}
			names := make(map[string]string, len(categories))
			for _, cat := range categories {
				names[cat.ID] = cat.Name
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Date"),
				cli.TableHeaderStyle.Render("Description"),
				cli.TableHeaderStyle.Render("Amount"),
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("ID"))

			for _, txn := range txns {
				category := report.UncategorizedLabel
				if txn.CategoryID != nil {
					if name, ok := names[*txn.CategoryID]; ok {
						category = name
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					txn.Date, txn.Description, cli.FormatCurrency(txn.Amount), category, cli.SubtleStyle.Render(txn.ID))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&monthOnly, "month", false, "only show the current month")

	return cmd
}

func addTransactionCmd() *cobra.Command {
	var (
		amount   float64
		dateStr  string
		category string
		suggest  bool
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Record a new transaction",
		Long: `Record an expense. With --suggest, the description is sent to the
configured classifier and a matching category is filled in when one comes
back; a failed suggestion falls back to whatever --category says.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			description := args[0]

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			date := model.Today()
			if dateStr != "" {
				date, err = model.ParseDate(dateStr)
				if err != nil {
					return err
				}
			}

			categoryID, err := resolveCategory(ctx, d, category)
			if err != nil {
				return err
			}

			// Suggestion runs before the mutation and never blocks it.
			if suggest && categoryID == nil {
				categoryID = suggestCategory(ctx, d, description)
			}

			txn, err := d.AddTransaction(ctx, model.Transaction{
				Description: description,
				Amount:      amount,
				Date:        date,
				CategoryID:  categoryID,
			})
			if err != nil {
				if err = reportSaveError(err); err != nil {
					return fmt.Errorf("failed to add transaction: %w", err)
				}
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s on %s (%s)",
				cli.FormatCurrency(txn.Amount), txn.Date, txn.ID)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "amount spent (required)")
	cmd.Flags().StringVar(&dateStr, "date", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&category, "category", "", "category id or name")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "ask the classifier to pick a category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func updateTransactionCmd() *cobra.Command {
	var (
		description string
		amount      float64
		dateStr     string
		category    string
		clear       bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			current, err := d.Transactions.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get transaction: %w", err)
			}
			if current == nil {
				return fmt.Errorf("transaction %q not found", id)
			}

			updated := *current
			if description != "" {
				updated.Description = description
			}
			if cmd.Flags().Changed("amount") {
				updated.Amount = amount
			}
			if dateStr != "" {
				updated.Date, err = model.ParseDate(dateStr)
				if err != nil {
					return err
				}
			}
			if clear {
				updated.CategoryID = nil
			} else if category != "" {
				updated.CategoryID, err = resolveCategory(ctx, d, category)
				if err != nil {
					return err
				}
			}

			if err := d.UpdateTransaction(ctx, updated); err != nil {
				if err = reportSaveError(err); err != nil {
					return fmt.Errorf("failed to update transaction: %w", err)
				}
			}

			fmt.Println(cli.FormatSuccess("Updated transaction " + id))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().Float64Var(&amount, "amount", 0, "new amount")
	cmd.Flags().StringVar(&dateStr, "date", "", "new date as YYYY-MM-DD")
	cmd.Flags().StringVar(&category, "category", "", "new category id or name")
	cmd.Flags().BoolVar(&clear, "uncategorize", false, "remove the category assignment")

	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := d.DeleteTransaction(ctx, id); err != nil {
				if err = reportSaveError(err); err != nil {
					return fmt.Errorf("failed to delete transaction: %w", err)
				}
			}

			fmt.Println(cli.FormatSuccess("Deleted transaction " + id))
			return nil
		},
	}
}

// resolveCategory turns an id or (case-insensitive) name into a category
// reference. Empty input means uncategorized.
func resolveCategory(ctx context.Context, d *data.Data, ref string) (*string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}

	cat, err := d.Categories.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		cat, err = d.Categories.GetByName(ctx, ref)
		if err != nil {
			return nil, err
		}
	}
	if cat == nil {
		return nil, fmt.Errorf("category %q not found", ref)
	}
	return &cat.ID, nil
}

// suggestCategory asks the classifier for a category. Any failure is
// reported and swallowed: the transaction is recorded uncategorized.
func suggestCategory(ctx context.Context, d *data.Data, description string) *string {
	suggester, err := createSuggester()
	if err != nil {
		fmt.Println(cli.FormatWarning("classifier unavailable: " + err.Error()))
		return nil
	}

	categories, err := d.Categories.List(ctx)
	if err != nil {
		return nil
	}

	cat, ok, err := suggester.SuggestCategory(ctx, description, categories)
	if err != nil {
		fmt.Println(cli.FormatWarning("category suggestion failed: " + err.Error()))
		return nil
	}
	if !ok {
		fmt.Println(cli.FormatInfo("no category suggestion, recording uncategorized"))
		return nil
	}

	fmt.Println(cli.FormatInfo(fmt.Sprintf("classifier suggests %q", cat.Name)))
	return &cat.ID
}
