package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pageza/nutripal/backend/internal/badge"
	"github.com/pageza/nutripal/backend/internal/models"
)

var badgeCategory string

func init() {
	cmd := &cobra.Command{
		Use:   "badges",
		Short: "List the badge catalog",
		RunE:  runBadges,
	}
	cmd.Flags().StringVar(&badgeCategory, "category", "", "Only show one category (nutrition, hydration, consistency, goals)")

	RootCmd.AddCommand(cmd)
}

func runBadges(cmd *cobra.Command, args []string) error {
	var badges []models.Badge
	for _, b := range badge.DefaultCatalog() {
		if badgeCategory == "" || b.Category == models.BadgeCategory(badgeCategory) {
			badges = append(badges, b)
		}
	}

	out := cmd.OutOrStdout()
	if formatFlag == "json" {
		return writeJSON(out, badges)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tRULE\tDESCRIPTION")
	for _, b := range badges {
		fmt.Fprintf(tw, "%s\t%s\t%s %g %s\t%s\n", b.ID, b.Category, b.Criteria.Kind, b.Criteria.Target, b.Criteria.Metric, b.Description)
	}
	return tw.Flush()
}
