package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bridgehq/bridge/internal/client/match"
)

// runMatching drives the candidate flow until a group forms, then hands off
// to chat. Returns done=true when the user quits for good; false when they
// left a group and want to match again.
func (a *App) runMatching(ctx context.Context) (done bool, err error) {
	// A user may already belong to a group from a previous run; check before
	// showing candidates at all.
	if a.coordinator.State() != match.StateGrouped {
		if _, err := a.coordinator.CheckExistingGroup(ctx); err != nil {
			fmt.Fprintf(a.out, "Could not check your group: %v\n", err)
		}
	}

	for a.coordinator.State() != match.StateGrouped {
		stop, err := a.candidateRound(ctx)
		if err != nil {
			return false, err
		}
		if stop {
			return true, nil
		}
	}

	left, err := a.runChat(ctx)
	if err != nil {
		return false, err
	}
	if left {
		a.resetAfterLeave()
		return false, nil
	}
	return true, nil
}

// candidateRound shows the ranked list, sends one request and waits for the
// group to form. stop=true means the user chose to quit.
func (a *App) candidateRound(ctx context.Context) (stop bool, err error) {
	if err := a.coordinator.FetchCandidates(ctx); err != nil {
		fmt.Fprintf(a.out, "Could not load matches: %v\n", err)
		retry, cerr := Confirm(a.reader, "Try again?", a.out)
		if cerr != nil {
			return false, cerr
		}
		return !retry, nil
	}

	candidates := a.coordinator.Candidates()
	if len(candidates) == 0 {
		fmt.Fprintln(a.out, "No matches available right now. Check back later.")
		retry, cerr := Confirm(a.reader, "Refresh the list?", a.out)
		if cerr != nil {
			return false, cerr
		}
		return !retry, nil
	}

	fmt.Fprintln(a.out, "\nWe found some brilliant matches!")
	for i, c := range candidates {
		fmt.Fprintf(a.out, "%d. %s — %d%% match\n   %s\n", i+1, c.Name, c.CompatibilityScore, c.Bio)
	}

	choice, err := GetSimpleText(a.reader, "Pick a number to connect (or 'q' to quit)", a.out)
	if err != nil {
		return false, err
	}
	if choice == "q" {
		return true, nil
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(candidates) {
		fmt.Fprintln(a.out, "Invalid choice.")
		return false, nil
	}

	if err := a.coordinator.SendRequest(ctx, candidates[idx-1].ID); err != nil {
		// Candidate list is preserved; the round simply restarts.
		fmt.Fprintf(a.out, "Could not send the request: %v\n", err)
		return false, nil
	}

	fmt.Fprintln(a.out, "Waiting for your friends to bridge...")
	state := a.coordinator.AwaitOutcome(ctx)

	if state == match.StateGrouped {
		return false, nil
	}
	if a.coordinator.TimedOut() {
		fmt.Fprintln(a.out, "No group formed yet. You can keep waiting or go back to the list.")
	}
	a.coordinator.BackToCandidates()
	return false, nil
}

// resetAfterLeave rebuilds the coordinator so the next round starts from a
// clean idle state.
func (a *App) resetAfterLeave() {
	a.coordinator.Teardown()
	a.coordinator = match.NewCoordinator(a.client, a.log, a.config.MatchPollInterval, a.config.MatchPollBound)
}
