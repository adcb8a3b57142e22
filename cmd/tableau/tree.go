package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/phanxgames/tableau"
	"github.com/spf13/cobra"
)

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the actor tree with allocations and map state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, _, err := loadStage(args[0])
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), stage.Root())
			return nil
		},
	}
}

func printTree(w io.Writer, root *tableau.Actor) {
	tableau.DepthFirst(root, func(a *tableau.Actor, depth int) tableau.TraverseResult {
		b := a.AllocationBox()
		fmt.Fprintf(w, "%s%s [%g,%g %gx%g]%s\n",
			strings.Repeat("  ", depth), displayName(a),
			b.X1, b.Y1, b.Width(), b.Height(), stateFlags(a))
		return tableau.TraverseContinue
	}, nil)
}

func stateFlags(a *tableau.Actor) string {
	var flags []string
	if a.IsVisible() {
		flags = append(flags, "visible")
	}
	if a.IsRealized() {
		flags = append(flags, "realized")
	}
	if a.IsMapped() {
		flags = append(flags, "mapped")
	}
	if a.IsReactive() {
		flags = append(flags, "reactive")
	}
	if len(flags) == 0 {
		return ""
	}
	return " " + strings.Join(flags, " ")
}

func displayName(a *tableau.Actor) string {
	if a.Name() == "" {
		return "<unnamed>"
	}
	return a.Name()
}
