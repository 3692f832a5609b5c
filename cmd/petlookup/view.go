package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrymomot/asyncstate"
	"github.com/dmitrymomot/asyncstate/petstore"
)

// view renders machine snapshots to the terminal: a prompt while idle, a
// loading placeholder while pending, the pet card once resolved, and the
// error with a recovery hint once rejected.
type view struct {
	out     io.Writer
	machine *asyncstate.Machine[petstore.Pet]
}

func newView(out io.Writer, machine *asyncstate.Machine[petstore.Pet]) *view {
	return &view{out: out, machine: machine}
}

func (v *view) prompt() {
	fmt.Fprintln(v.out, "Submit a pet name:")
}

func (v *view) renderLoop(ctx context.Context, updates <-chan asyncstate.Snapshot[petstore.Pet]) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			v.render(snap)
		}
	}
}

func (v *view) render(snap asyncstate.Snapshot[petstore.Pet]) {
	switch snap.Status {
	case asyncstate.StatusIdle:
		v.prompt()
	case asyncstate.StatusPending:
		fmt.Fprintln(v.out, "loading...")
	case asyncstate.StatusResolved:
		v.renderPet(snap.Data)
	case asyncstate.StatusRejected:
		fmt.Fprintf(v.out, "There was an error: %v\n", snap.Err)
		// Recovery path: back to idle so the next submit starts clean. The
		// reset snapshot re-renders the prompt.
		v.machine.Reset()
	}
}

func (v *view) renderPet(pet petstore.Pet) {
	fmt.Fprintf(v.out, "%s (#%s)\n", pet.Name, pet.Number)
	if pet.ImageURL != "" {
		fmt.Fprintf(v.out, "  image: %s\n", pet.ImageURL)
	}
	for _, move := range pet.Moves {
		fmt.Fprintf(v.out, "  %-20s %-10s power %d\n", move.Name, move.Type, move.Power)
	}
}
