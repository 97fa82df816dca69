package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/smartspend/smartspend/internal/cli"
	"github.com/smartspend/smartspend/internal/model"
	"github.com/smartspend/smartspend/internal/ofx"
)

func importTransactionsCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import expenses from OFX or QFX (Quicken) files exported from your bank.
Credits (deposits, refunds) are skipped. Imported transactions start out
uncategorized.

Examples:
  spend transactions import ~/Downloads/chase_jan.qfx
  spend transactions import ~/Downloads/*.qfx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Expand globs and collect all files
			var allFiles []string
			for _, pattern := range args {
				matches, err := filepath.Glob(pattern)
				if err != nil {
					return fmt.Errorf("invalid pattern %s: %w", pattern, err)
				}
				if len(matches) == 0 {
					if _, err := os.Stat(pattern); err == nil {
						allFiles = append(allFiles, pattern)
					} else {
						fmt.Println(cli.FormatWarning("no files match " + pattern))
					}
				} else {
					allFiles = append(allFiles, matches...)
				}
			}
			if len(allFiles) == 0 {
				return fmt.Errorf("no files found to import")
			}

			parser := ofx.NewParser()
			var parsed []model.Transaction
			for _, filePath := range allFiles {
				f, err := os.Open(filePath)
				if err != nil {
					fmt.Println(cli.FormatWarning(fmt.Sprintf("skipping %s: %v", filePath, err)))
					continue
				}
				txns, err := parser.ParseFile(f)
				f.Close()
				if err != nil {
					fmt.Println(cli.FormatWarning(fmt.Sprintf("skipping %s: %v", filepath.Base(filePath), err)))
					continue
				}
				parsed = append(parsed, txns...)
			}

			if len(parsed) == 0 {
				fmt.Println(cli.FormatInfo("No expenses found in the given files."))
				return nil
			}

			if dryRun {
				for _, txn := range parsed {
					fmt.Printf("  %s  %s  %s\n", txn.Date, cli.FormatCurrency(txn.Amount), txn.Description)
				}
				fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: %d expenses would be imported.", len(parsed))))
				return nil
			}

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			bar := progressbar.Default(int64(len(parsed)), "importing")
			imported := 0
			for _, txn := range parsed {
				if _, err := d.AddTransaction(ctx, txn); err != nil {
					if err = reportSaveError(err); err != nil {
						return fmt.Errorf("failed to import transaction: %w", err)
					}
				}
				imported++
				_ = bar.Add(1)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d expenses.", imported)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview import without saving")

	return cmd
}
