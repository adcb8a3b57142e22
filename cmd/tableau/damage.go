package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phanxgames/tableau"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

type move struct {
	name   string
	dx, dy float64
}

func parseMove(s string) (move, error) {
	name, delta, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return move{}, fmt.Errorf("invalid move %q, want NAME=DX,DY", s)
	}
	xs, ys, ok := strings.Cut(delta, ",")
	if !ok {
		return move{}, fmt.Errorf("invalid move %q, want NAME=DX,DY", s)
	}
	dx, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}
	dy, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}
	return move{name: name, dx: dx, dy: dy}, nil
}

func newDamageCmd() *cobra.Command {
	var (
		moves       []string
		showMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "damage FILE",
		Short: "Print the stage damage caused by moving actors",
		Long: `damage paints the scene once, applies every --move and prints the
device boxes the next frame would repaint.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := make([]move, 0, len(moves))
			for _, m := range moves {
				mv, err := parseMove(m)
				if err != nil {
					return err
				}
				parsed = append(parsed, mv)
			}

			stage, actors, err := loadStage(args[0])
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			if showMetrics {
				m, err := tableau.NewStageMetrics(reg, "scene")
				if err != nil {
					return err
				}
				stage.SetMetrics(m)
			}
			stage.Paint(&nopRenderer{})

			for _, mv := range parsed {
				a, ok := actors[mv.name]
				if !ok {
					return fmt.Errorf("no actor named %q", mv.name)
				}
				a.MoveBy(mv.dx, mv.dy)
			}
			printDamage(cmd.OutOrStdout(), stage.Update())
			if showMetrics {
				return printMetrics(cmd.OutOrStdout(), reg)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&moves, "move", nil, "Move an actor, as NAME=DX,DY (repeatable)")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print the stage metrics in the Prometheus text format")
	return cmd
}

func printDamage(w io.Writer, d tableau.Damage) {
	switch {
	case d.IsFull():
		fmt.Fprintln(w, "full")
	case d.IsEmpty():
		fmt.Fprintln(w, "none")
	default:
		for _, b := range d.Boxes() {
			fmt.Fprintf(w, "%g,%g %gx%g\n", b.X1, b.Y1, b.Width(), b.Height())
		}
	}
}

func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
