package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/tratlus/internal/cli/formatter"
	"github.com/alexanderramin/tratlus/internal/repository"
	"github.com/alexanderramin/tratlus/internal/swipe"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// errNeedsTerminal is returned by interactive commands run without a TTY
// and without a batch alternative.
var errNeedsTerminal = errors.New("this command needs an interactive terminal")

func newSwipeCmd(app *App) *cobra.Command {
	var auto bool
	var seed int64
	var profileFlag, moves string

	cmd := &cobra.Command{
		Use:   "swipe",
		Short: "Swipe through travel cards to build a preference profile",
		Long: "Like or pass on travel cards in six categories. Five swipes complete a\n" +
			"category. The resulting tag scores are saved as a preference profile that\n" +
			"'tratlus plan' uses to personalize itineraries.\n\n" +
			"Without a terminal, pass --auto to swipe randomly or --moves with a string\n" +
			"of r (like), l (pass) and > (next category), e.g. --moves 'rrlrl>rlrrl'.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if !cmd.Flags().Changed("seed") {
				seed = app.now().UnixNano()
			}

			profileID, err := resolveProfileID(ctx, app, profileFlag)
			if err != nil {
				return friendly("profile", profileFlag, err)
			}
			var sess *swipe.Session
			if profileID != "" {
				if sess, _, err = app.Swipe.Resume(ctx, profileID, seed); err != nil {
					return err
				}
			} else {
				sess = app.Swipe.NewSession(seed)
			}

			out := cmd.OutOrStdout()
			switch {
			case auto:
				events, err := sess.AutoComplete()
				if err != nil {
					return err
				}
				printEvents(cmd, events, sess)
			case moves != "":
				if err := applyMoves(cmd, sess, moves); err != nil {
					return err
				}
			case app.interactive():
				final, err := tea.NewProgram(newSwipeModel(sess)).Run()
				if err != nil {
					return fmt.Errorf("running swipe deck: %w", err)
				}
				if m, ok := final.(swipeModel); !ok || !m.save {
					fmt.Fprintln(out, formatter.Dim("Discarded; nothing saved."))
					return nil
				}
			default:
				return fmt.Errorf("%w; pass --auto or --moves", errNeedsTerminal)
			}

			p, err := app.Swipe.Save(ctx, profileID, sess)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatProfile(p, sess.Required()))
			fmt.Fprintln(out, formatter.Success("Saved profile "+shortID(p.ID)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&auto, "auto", false, "Fill every category with random swipes")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Shuffle seed (default: time-based)")
	cmd.Flags().StringVar(&profileFlag, "profile", "", "Resume and update this profile (ID or prefix)")
	cmd.Flags().StringVar(&moves, "moves", "", "Batch swipes: r=like, l=pass, >=next category")
	cmd.MarkFlagsMutuallyExclusive("auto", "moves")

	return cmd
}

// applyMoves replays a --moves script against the session.
func applyMoves(cmd *cobra.Command, sess *swipe.Session, moves string) error {
	for i, r := range moves {
		if r == ' ' || r == ',' {
			continue
		}
		if r == '>' {
			if _, ok, err := sess.Advance(); err != nil {
				return err
			} else if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("All categories complete."))
			}
			continue
		}
		d, err := swipe.ParseDirection(string(r))
		if err != nil {
			return fmt.Errorf("move %d: %w", i+1, err)
		}
		_, events, err := sess.Swipe(d)
		if errors.Is(err, swipe.ErrNoCards) {
			return fmt.Errorf("move %d: no %s cards left; add '>' to continue", i+1, sess.Category().DisplayName())
		}
		if err != nil {
			return fmt.Errorf("move %d: %w", i+1, err)
		}
		printEvents(cmd, events, sess)
	}
	return nil
}

func printEvents(cmd *cobra.Command, events []swipe.Event, sess *swipe.Session) {
	for _, line := range describeEvents(events, sess, false) {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
}

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Aliases: []string{"profiles"},
		Short:   "Inspect saved preference profiles",
	}
	cmd.AddCommand(newProfileListCmd(app), newProfileShowCmd(app), newProfileDeleteCmd(app))
	return cmd
}

func newProfileListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List preference profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := app.Swipe.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfileList(profiles, app.now()))
			return nil
		},
	}
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [ID]",
		Short: "Show a profile (default: the most recent)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			id, err := resolveProfileID(ctx, app, input)
			if err != nil {
				return friendly("profile", input, err)
			}
			p, err := app.Swipe.Profile(ctx, id)
			if errors.Is(err, repository.ErrNotFound) && input == "" {
				return errors.New("no preference profiles yet; run 'tratlus swipe' first")
			}
			if err != nil {
				return friendly("profile", input, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p, swipe.RequiredSwipes))
			return nil
		},
	}
}

func newProfileDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a profile; its itineraries are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProfileID(ctx, app, args[0])
			if err != nil {
				return friendly("profile", args[0], err)
			}
			if err := app.Swipe.Delete(ctx, id); err != nil {
				return friendly("profile", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted profile "+shortID(id)))
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
