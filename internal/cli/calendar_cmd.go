package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tratlus/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	var year int
	var month time.Month

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month grid with the days that have planned activities",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := app.now()
			if year == 0 {
				year, month = today.Year(), today.Month()
			}
			grid, err := app.Days.Month(context.Background(), year, month, today)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMonth(grid))
			return nil
		},
	}

	cmd.Flags().Var(monthValue{year: &year, month: &month}, "month", "Month to show (YYYY-MM); default this month")

	return cmd
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the block categories and their defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCategories())
			return nil
		},
	}
}
