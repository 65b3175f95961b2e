package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/linemk/coffee-shop/internal/domain/models"
)

var menuCategory string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show the menu, optionally filtered by category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Catalog.Load(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load the menu: %w", err)
		}

		if menuCategory != "" {
			id, ok := categoryIDByName(application.Catalog.Categories(), menuCategory)
			if !ok {
				return fmt.Errorf("unknown category %q", menuCategory)
			}
			application.Catalog.SelectCategory(id)
		}

		printProducts(cmd, application.Catalog.Filtered())
		return nil
	},
}

func categoryIDByName(categories []models.Category, name string) (string, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c.ID, true
		}
	}
	return "", false
}

func printProducts(cmd *cobra.Command, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No items")
		return
	}

	bold := color.New(color.Bold)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, p := range products {
		name := p.Name
		if !p.Available() {
			name += " (unavailable)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			bold.Sprint(name), p.Category.Name, formatPrice(p.BasePrice), p.Description)
	}
	w.Flush()
}

func formatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func init() {
	menuCmd.Flags().StringVarP(&menuCategory, "category", "c", "", "show only this category")
	rootCmd.AddCommand(menuCmd)
}
