package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tratlus/internal/calendar"
	"github.com/alexanderramin/tratlus/internal/cli/formatter"
	"github.com/alexanderramin/tratlus/internal/domain"
	"github.com/alexanderramin/tratlus/internal/timeline"
	"github.com/spf13/cobra"
)

func newDayCmd(app *App) *cobra.Command {
	var key calendar.DateKey

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Plan the activity blocks of one calendar day",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if key == "" {
				key = calendar.KeyFor(app.now())
			}
			return nil
		},
	}
	cmd.PersistentFlags().Var(dateValue{key: &key, now: app.now}, "date", "Day to edit (YYYY-MM-DD, today, tomorrow); default today")

	cmd.AddCommand(
		newDayShowCmd(app, &key),
		newDayAddCmd(app, &key),
		newDayMoveCmd(app, &key),
		newDayResizeCmd(app, &key),
		newDayEditCmd(app, &key),
		newDayDeleteCmd(app, &key),
	)

	return cmd
}

func printDay(cmd *cobra.Command, app *App, key calendar.DateKey) error {
	blocks, err := app.Days.Get(context.Background(), key)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDay(key, blocks))
	return nil
}

func newDayShowCmd(app *App, key *calendar.DateKey) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the day's timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printDay(cmd, app, *key)
		},
	}
}

func newDayAddCmd(app *App, key *calendar.DateKey) *cobra.Command {
	var title, location, notes string

	cmd := &cobra.Command{
		Use:   "add CATEGORY TIME",
		Short: "Drop a new block from the palette at TIME",
		Long: "Drop a new block from the palette. TIME snaps to the half-hour grid and is\n" +
			"pulled back so the block ends by midnight. See 'tratlus categories' for CATEGORY.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			category, err := domain.ParseCategory(args[0])
			if err != nil {
				return err
			}
			start, err := domain.ParseTimeOfDay(args[1])
			if err != nil {
				return err
			}

			block, placed, err := app.Days.Place(ctx, *key, category, start)
			if err != nil {
				return err
			}
			if !placed {
				return fmt.Errorf("%s at %s conflicts with an existing activity; nothing changed",
					category.Spec().DisplayName, domain.FormatClock(start))
			}

			if title != "" || location != "" || notes != "" {
				blocks, err := app.Days.Get(ctx, *key)
				if err != nil {
					return err
				}
				form := timeline.FormFromBlock(block)
				if title != "" {
					form.Title = title
				}
				form.Location, form.Notes = location, notes
				if block, err = app.Days.Edit(ctx, *key, len(blocks)-1, form); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Placed %s at %s–%s",
				block.DisplayTitle(), domain.FormatClock(block.StartMin), domain.FormatClock(block.EndMin()))))
			return printDay(cmd, app, *key)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title (default: the category's default title)")
	cmd.Flags().StringVar(&location, "location", "", "Location")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")

	return cmd
}

func newDayMoveCmd(app *App, key *calendar.DateKey) *cobra.Command {
	return &cobra.Command{
		Use:   "move N TIME",
		Short: "Drag block N to start at TIME, keeping its duration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parsePosition("block", args[0])
			if err != nil {
				return err
			}
			start, err := domain.ParseTimeOfDay(args[1])
			if err != nil {
				return err
			}
			moved, err := app.Days.Move(context.Background(), *key, index, start)
			if err != nil {
				return err
			}
			if !moved {
				return fmt.Errorf("block %s at %s would overlap another activity; nothing changed", args[0], domain.FormatClock(start))
			}
			return printDay(cmd, app, *key)
		},
	}
}

func newDayResizeCmd(app *App, key *calendar.DateKey) *cobra.Command {
	var edgeStr string
	var by int

	cmd := &cobra.Command{
		Use:   "resize N",
		Short: "Drag the top or bottom edge of block N",
		Long: "Drag an edge of block N by --by minutes (negative moves it up). Durations\n" +
			"snap to the half-hour grid, never drop below 30 minutes and never pass midnight.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parsePosition("block", args[0])
			if err != nil {
				return err
			}
			edge, err := timeline.ParseResizeEdge(edgeStr)
			if err != nil {
				return err
			}
			block, err := app.Days.Resize(context.Background(), *key, index, edge, by)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("%s now %s–%s (%s)",
				block.DisplayTitle(), domain.FormatClock(block.StartMin), domain.FormatClock(block.EndMin()),
				formatter.FormatMinutes(block.DurationMin))))
			return printDay(cmd, app, *key)
		},
	}

	cmd.Flags().StringVar(&edgeStr, "edge", "bottom", "Edge to drag: top or bottom")
	cmd.Flags().IntVar(&by, "by", 0, "Minutes to drag the edge by")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}

func newDayEditCmd(app *App, key *calendar.DateKey) *cobra.Command {
	var title, location, notes, categoryStr string
	var start, duration int

	cmd := &cobra.Command{
		Use:   "edit N",
		Short: "Edit the fields of block N",
		Long: "Edit block N. Start and duration are rounded up to the half-hour grid;\n" +
			"a block may not cross midnight.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			index, err := parsePosition("block", args[0])
			if err != nil {
				return err
			}
			blocks, err := app.Days.Get(ctx, *key)
			if err != nil {
				return err
			}
			if index >= len(blocks) {
				return fmt.Errorf("block %s: %w", args[0], timeline.ErrIndexOutOfRange)
			}

			form := timeline.FormFromBlock(blocks[index])
			flags := cmd.Flags()
			if flags.Changed("category") {
				if form.Category, err = domain.ParseCategory(categoryStr); err != nil {
					return err
				}
			}
			if flags.Changed("title") {
				form.Title = title
			}
			if flags.Changed("location") {
				form.Location = location
			}
			if flags.Changed("notes") {
				form.Notes = notes
			}
			if flags.Changed("start") {
				form.StartMin = start
			}
			if flags.Changed("duration") {
				form.DurationMin = duration
			}

			block, err := app.Days.Edit(ctx, *key, index, form)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Saved "+block.DisplayTitle()))
			return printDay(cmd, app, *key)
		},
	}

	cmd.Flags().StringVar(&categoryStr, "category", "", "Category")
	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&location, "location", "", "Location")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	cmd.Flags().Var(newClockValue(&start, 0), "start", "Start time (14:30 or 2:30 PM)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes")

	return cmd
}

func newDayDeleteCmd(app *App, key *calendar.DateKey) *cobra.Command {
	return &cobra.Command{
		Use:     "delete N",
		Aliases: []string{"rm"},
		Short:   "Remove block N",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parsePosition("block", args[0])
			if err != nil {
				return err
			}
			if err := app.Days.Delete(context.Background(), *key, index); err != nil {
				return err
			}
			return printDay(cmd, app, *key)
		},
	}
}
