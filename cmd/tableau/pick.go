package main

import (
	"fmt"
	"strconv"

	"github.com/phanxgames/tableau"
	"github.com/spf13/cobra"
)

func newPickCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "pick FILE X Y",
		Short: "Print the actor at a stage position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}
			stage, _, err := loadStage(args[0])
			if err != nil {
				return err
			}
			mode := tableau.PickReactive
			if all {
				mode = tableau.PickAll
			}
			a := stage.GetActorAtPos(mode, x, y)
			if a == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "none")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), displayName(a))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Consider every actor, not only reactive ones")
	return cmd
}
