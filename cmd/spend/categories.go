package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smartspend/smartspend/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
		Long:  `List, add, update, and delete the categories used to group transactions.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			categories, err := d.Categories.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.FormatInfo("No categories found. Use 'spend categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Icon"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 36),
				strings.Repeat("-", 20),
				strings.Repeat("-", 6))

			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s %s\n", cat.ID, cat.Name, cli.IconGlyph(cat.Icon), cat.Icon)
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var icon string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			existing, err := d.Categories.GetByName(ctx, name)
			if err != nil {
				return fmt.Errorf("failed to check existing category: %w", err)
			}
			if existing != nil {
				return fmt.Errorf("category %q already exists", existing.Name)
			}

			cat, err := d.AddCategory(ctx, name, icon)
			if err != nil {
				if err = reportSaveError(err); err != nil {
					return fmt.Errorf("failed to create category: %w", err)
				}
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q (%s %s)", cat.Name, cli.IconGlyph(cat.Icon), cat.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "", "symbolic icon name (defaults to DollarSign)")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		name string
		icon string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			if name == "" && icon == "" {
				return fmt.Errorf("must specify --name or --icon to update")
			}

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			current, err := d.Categories.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get category: %w", err)
			}
			if current == nil {
				return fmt.Errorf("category %q not found", id)
			}

			updated := *current
			if name != "" {
				updated.Name = name
			}
			if icon != "" {
				updated.Icon = icon
			}

			if err := d.UpdateCategory(ctx, updated); err != nil {
				if err = reportSaveError(err); err != nil {
					return fmt.Errorf("failed to update category: %w", err)
				}
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated category %q", updated.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new category name")
	cmd.Flags().StringVar(&icon, "icon", "", "new symbolic icon name")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Delete a category. Transactions in the category are kept and become
uncategorized; the category's budget, if any, is removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			cat, err := d.Categories.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get category: %w", err)
			}
			if cat == nil {
				return fmt.Errorf("category %q not found", id)
			}

			if !force {
				fmt.Printf("Delete category %q? Its transactions become uncategorized and its budget is removed. (y/N): ", cat.Name)
				var response string
				fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			if err := d.DeleteCategory(ctx, id); err != nil {
				if err = reportSaveError(err); err != nil {
					return fmt.Errorf("failed to delete category: %w", err)
				}
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %q", cat.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
