package services

import (
	"context"
	"errors"
	"fmt"

	loopfsm "github.com/looplab/fsm"

	"nhatro-backend/internal/apperr"
	"nhatro-backend/models"
)

// buildEvents converts a declarative transition table into looplab/fsm
// EventDescs. The event name is the destination status, so callers apply a
// transition by naming the status they want to reach. Transitions with the
// same destination collapse into one EventDesc with multiple sources.
func buildEvents(table []models.StatusTransition) []loopfsm.EventDesc {
	grouped := make(map[string][]string)
	order := make([]string, 0, len(table))

	for _, t := range table {
		if _, seen := grouped[t.Dst]; !seen {
			order = append(order, t.Dst)
		}
		grouped[t.Dst] = append(grouped[t.Dst], t.Src)
	}

	out := make([]loopfsm.EventDesc, 0, len(order))
	for _, dst := range order {
		out = append(out, loopfsm.EventDesc{Name: dst, Src: grouped[dst], Dst: dst})
	}
	return out
}

// applyTransition validates that target is reachable from current under the
// given table. looplab/fsm is stateful, so a short-lived machine is built
// per call, seeded with the current status.
func applyTransition(table []models.StatusTransition, current, target string) error {
	machine := loopfsm.NewFSM(current, buildEvents(table), nil)

	if err := machine.Event(context.Background(), target); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var unknownEvent loopfsm.UnknownEventError
		if errors.As(err, &invalidEvent) || errors.As(err, &unknownEvent) {
			return apperr.Validation(fmt.Sprintf("cannot move from %s to %s", current, target))
		}
		return apperr.Internal(err)
	}
	return nil
}
