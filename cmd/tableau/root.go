package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phanxgames/tableau"
	"github.com/phanxgames/tableau/internal/scenefile"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "tableau",
		Short:         "Inspect tableau scene files",
		Long:          `tableau loads a YAML scene, lays it out on a stage and reports what the stage would paint.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				tableau.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log warnings and frame stats to stderr")
	root.AddCommand(newTreeCmd(), newDamageCmd(), newPickCmd(), newVersionCmd())
	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadStage reads a scene file and returns its laid out stage. Debug
// switches come from the TABLEAU_* environment.
func loadStage(path string) (*tableau.Stage, map[string]*tableau.Actor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	sc, err := scenefile.Load(f)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := tableau.LoadDebugConfig()
	if err != nil {
		return nil, nil, err
	}
	stage, actors, err := sc.NewStage()
	if err != nil {
		return nil, nil, err
	}
	stage.SetDebugConfig(cfg)
	stage.SetDebugMode(cfg.CheckInvariants)
	stage.Update()
	return stage, actors, nil
}

// nopRenderer tracks transforms and discards every fill.
type nopRenderer struct {
	tableau.MatrixStack
}

func (nopRenderer) PushClip(tableau.Box)                       {}
func (nopRenderer) PopClip()                                   {}
func (nopRenderer) FillRect(tableau.Box, tableau.Color, uint8) {}
func (nopRenderer) FillPick(tableau.Box, int32)                {}
func (nopRenderer) Offscreen() bool                            { return false }
