package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scummvm/scummvm-sub094/internal/game"
	"github.com/scummvm/scummvm-sub094/internal/perf"
)

var (
	flagProfileCycles int
	flagPlot          string
)

var profileCmd = &cobra.Command{
	Use:   "profile [game]",
	Short: "Measure the time taken by each game cycle",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfile,
}

func init() {
	profileCmd.Flags().IntVar(&flagProfileCycles, "cycles", 1000, "Number of game cycles to measure")
	profileCmd.Flags().StringVar(&flagPlot, "plot", "cycles.png", "Write the cycle time plot to this PNG file")
}

func runProfile(cmd *cobra.Command, args []string) error {
	rec := perf.NewRecorder(flagProfileCycles)
	s, err := openGame(args, game.WithRecorder(rec))
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.game.RunCycles(flagProfileCycles); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rec.Stats())

	f, err := os.Create(flagPlot)
	if err != nil {
		return err
	}
	defer f.Close()
	return rec.Plot(f, 800, 400)
}
