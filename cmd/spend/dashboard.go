package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/smartspend/smartspend/internal/cli"
	"github.com/smartspend/smartspend/internal/data"
	"github.com/smartspend/smartspend/internal/model"
	"github.com/smartspend/smartspend/internal/report"
	"github.com/smartspend/smartspend/internal/store"
)

func dashboardCmd() *cobra.Command {
	var monthStr string
	var watch bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the monthly spending overview",
		Long: `Show totals, the top spending categories, budget progress, and recent
transactions for the current calendar month.

With --watch the dashboard stays open and re-renders when another process
changes the data file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			ref := model.Today()
			if monthStr != "" {
				parsed, err := model.ParseDate(monthStr + "-01")
				if err != nil {
					return fmt.Errorf("invalid month %q, want YYYY-MM", monthStr)
				}
				ref = parsed
			}

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := printDashboard(ctx, d, ref); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchDashboard(ctx, d, s, ref)
		},
	}

	cmd.Flags().StringVar(&monthStr, "month", "", "month to summarize as YYYY-MM (default: current)")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep the dashboard open and follow external changes")

	return cmd
}

func printDashboard(ctx context.Context, d *data.Data, ref model.Date) error {
	txns, err := d.Transactions.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to get transactions: %w", err)
	}
	categories, err := d.Categories.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	budgets, err := d.Budgets.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to get budgets: %w", err)
	}
	profile, err := d.Profile.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	summary := report.Summarize(txns, categories, budgets, ref)
	fmt.Println(renderDashboard(profile, summary))
	return nil
}

// watchDashboard re-renders whenever another process writes the data file,
// until the context is canceled.
func watchDashboard(ctx context.Context, d *data.Data, s *store.Store, ref model.Date) error {
	changed := make(chan struct{}, 1)
	notify := func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}

	for _, unsubscribe := range []func(){
		d.Categories.Subscribe(func([]model.Category) { notify() }),
		d.Transactions.Subscribe(func([]model.Transaction) { notify() }),
		d.Budgets.Subscribe(func([]model.Budget) { notify() }),
		d.Profile.Subscribe(func(model.UserProfile) { notify() }),
	} {
		defer unsubscribe()
	}

	go s.Watch(ctx, time.Second)
	fmt.Println(cli.SubtleStyle.Render("watching for changes, ctrl-c to stop"))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			// Rough clear keeps the latest render at the top
			fmt.Print("\033[H\033[2J")
			if err := printDashboard(ctx, d, ref); err != nil {
				return err
			}
			fmt.Println(cli.SubtleStyle.Render("watching for changes, ctrl-c to stop"))
		}
	}
}

func renderDashboard(profile model.UserProfile, summary report.Summary) string {
	var b strings.Builder

	b.WriteString(cli.FormatTitle(fmt.Sprintf("%s's spending — %s %d",
		profile.Name, summary.Month.Month(), summary.Month.Year())))
	b.WriteString("\n")

	remainingStyle := cli.SuccessStyle
	if summary.Remaining < 0 {
		remainingStyle = cli.ErrorStyle
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		cli.RenderBox("Expenses", cli.BoldStyle.Render(cli.FormatCurrency(summary.TotalSpend))),
		" ",
		cli.RenderBox("Budget", cli.BoldStyle.Render(cli.FormatCurrency(summary.TotalBudget))),
		" ",
		cli.RenderBox("Remaining", remainingStyle.Render(cli.FormatCurrency(summary.Remaining))),
	)
	b.WriteString(cards)
	b.WriteString("\n\n")

	if len(summary.TopSpend) > 0 {
		b.WriteString(cli.TableHeaderStyle.Render("Top spending categories"))
		b.WriteString("\n")
		max := summary.TopSpend[0].Amount
		for _, entry := range summary.TopSpend {
			percent := 0.0
			if max > 0 {
				percent = entry.Amount / max * 100
			}
			b.WriteString(fmt.Sprintf("  %-22s %s %s\n",
				entry.Name, cli.ProgressBar(percent, false), cli.FormatCurrency(entry.Amount)))
		}
		b.WriteString("\n")
	}

	if len(summary.Budgets) > 0 {
		b.WriteString(cli.TableHeaderStyle.Render("Budgets"))
		b.WriteString("\n")
		for _, status := range summary.Budgets {
			line := fmt.Sprintf("  %s %-20s %s %s of %s",
				cli.IconGlyph(status.Icon),
				status.CategoryName,
				cli.ProgressBar(status.ProgressPercent, status.Overspent),
				cli.FormatCurrency(status.Spent),
				cli.FormatCurrency(status.Budget.Amount))
			if status.Overspent {
				line += cli.ErrorStyle.Render(fmt.Sprintf("  over by %s", cli.FormatCurrency(status.OverspendAmount)))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(summary.Recent) > 0 {
		b.WriteString(cli.TableHeaderStyle.Render("Recent transactions"))
		b.WriteString("\n")
		for _, txn := range summary.Recent {
			b.WriteString(fmt.Sprintf("  %s  %-30s %s\n",
				cli.SubtleStyle.Render(txn.Date.String()), txn.Description, cli.FormatCurrency(txn.Amount)))
		}
	}

	return b.String()
}
