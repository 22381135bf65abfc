package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tratlus/internal/repository"
)

// resolveProfileID resolves a full profile UUID or a unique prefix of one.
// An empty input stays empty, meaning "the most recent profile".
func resolveProfileID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	profiles, err := app.Swipe.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, p := range profiles {
		if p.ID == input {
			return p.ID, nil
		}
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("profile %q: %w", input, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("profile ID prefix %q is ambiguous (%d matches): %w", input, len(matches), repository.ErrAmbiguousID)
	}
}

// friendly rewrites storage errors into messages that name the command's
// argument.
func friendly(what, id string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s %q not found", what, id)
	case errors.Is(err, repository.ErrAmbiguousID):
		return fmt.Errorf("%s ID prefix %q is ambiguous; use more characters", what, id)
	default:
		return err
	}
}
