package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/scummvm/scummvm-sub094/pkg/utils"
)

var (
	flagCycles   int
	flagSay      []string
	flagAnswers  []string
	flagDump     string
	flagPriority string
	flagRealtime bool
)

var runCmd = &cobra.Command{
	Use:   "run [game]",
	Short: "Run a game",
	Long: `Run the logic scripts of a game starting at logic 0.

Without --realtime the game runs as fast as possible for --cycles game
cycles. With it, cycles are paced by the interpreter clock until the
game quits or the process is interrupted.

Examples:
  agi run ./kq1
  agi run kq1.7z --cycles 200 --say "look" --dump screen.png
  agi run --realtime --config agi.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagCycles, "cycles", 100, "Number of game cycles to run")
	runCmd.Flags().StringArrayVar(&flagSay, "say", nil, "Sentence typed by the player, may be repeated")
	runCmd.Flags().StringArrayVar(&flagAnswers, "answer", nil, "Answer to a get.string prompt, may be repeated")
	runCmd.Flags().StringVar(&flagDump, "dump", "", "Write the visual screen to this .png or .bmp file")
	runCmd.Flags().StringVar(&flagPriority, "dump-priority", "", "Write the priority screen to this .png or .bmp file")
	runCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace cycles by the interpreter clock")
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := openGame(args)
	if err != nil {
		return err
	}
	defer s.Close()
	s.host.Answers = flagAnswers
	for _, sentence := range flagSay {
		s.game.Enter(sentence)
	}

	if flagRealtime {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		if err := s.game.Run(ctx); err != nil && err != context.Canceled {
			return err
		}
	} else if err := s.game.RunCycles(flagCycles); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, msg := range s.host.Output {
		fmt.Fprintln(out, msg)
	}
	s.log.Infof("ran %d cycles", s.game.Cycles())

	if flagDump != "" {
		if err := utils.SaveImage(s.game.Screen().Image(), flagDump); err != nil {
			return err
		}
	}
	if flagPriority != "" {
		if err := utils.SaveImage(s.game.Screen().PriorityImage(), flagPriority); err != nil {
			return err
		}
	}
	return nil
}
