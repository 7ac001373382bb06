// agi runs the logic scripts of an AGI adventure game without a display.
//
// Usage:
//
//	agi run <game>              - Run a game for a number of cycles or until it quits
//	agi disasm <logic file>     - Print the bytecode of a logic resource
//	agi profile <game>          - Plot the time taken by each cycle
//	agi version                 - Print the supported interpreter versions
//
// <game> is a directory, .zip or .7z archive of decoded resources. When
// it is omitted the game named by the configuration is used.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scummvm/scummvm-sub094/internal/config"
	"github.com/scummvm/scummvm-sub094/internal/game"
	"github.com/scummvm/scummvm-sub094/internal/resource"
	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/pkg/log"
)

var (
	flagConfig  string
	flagVersion string
	flagSeed    int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "agi",
	Short:         "Headless AGI logic interpreter",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&flagVersion, "interpreter", "", "Interpreter version, overrides the configuration")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed, overrides the configuration when non zero")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagVersion != "" {
		if _, err := types.StringToVersion(flagVersion); err != nil {
			return cfg, err
		}
		cfg.Version = flagVersion
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	return cfg, nil
}

// session is an opened game and the interpreter running it.
type session struct {
	cfg     config.Config
	log     log.Logger
	archive *resource.Archive
	info    *resource.Info
	game    *game.Game
	host    *game.Headless
}

// openGame opens the game at path, or the configured one, and builds
// an interpreter for it with the extra options appended.
func openGame(args []string, opts ...game.Opt) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, log: log.NewWithWriter(os.Stderr, cfg.Log.Level)}

	p := cfg.Game
	if len(args) > 0 {
		p = args[0]
	}
	if p == "" {
		return nil, fmt.Errorf("no game given")
	}
	if s.archive, err = resource.Open(p); err != nil {
		return nil, err
	}
	if s.info, err = s.archive.LoadInfo(); err != nil {
		s.archive.Close()
		return nil, err
	}
	profile, err := cfg.Profile(s.info.Version)
	if err != nil {
		s.archive.Close()
		return nil, err
	}
	s.log.Infof("%s: interpreter %s, %d words, %d items", p, profile.Version, len(s.info.Words), len(s.info.Items))

	s.host = game.NewHeadless(s.log)
	opts = append([]game.Opt{
		game.WithLogger(s.log),
		game.WithProfile(profile),
		game.WithSeed(cfg.Seed),
		game.WithMaxCallDepth(cfg.Interpreter.MaxCallDepth),
		game.WithObjects(cfg.Interpreter.Objects),
		game.WithTrace(cfg.Interpreter.Trace),
		game.WithInfo(s.info),
		game.WithSubsystems(s.host),
	}, opts...)
	if s.game, err = game.New(s.archive, opts...); err != nil {
		s.archive.Close()
		return nil, err
	}
	return s, nil
}

func (s *session) Close() error { return s.archive.Close() }
