package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/scummvm/scummvm-sub094/internal/config"
	"github.com/scummvm/scummvm-sub094/internal/types"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "List the supported interpreter versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		var extra []interface{}
		if cfg.Profiles != "" {
			extra = append(extra, cfg.Profiles)
		}
		profiles, err := config.LoadProfiles(extra...)
		if err != nil {
			return err
		}

		versions := make([]types.Version, 0, len(profiles))
		for v := range profiles {
			versions = append(versions, v)
		}
		sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "  %-10s  %-7s  %s\n", "VERSION", "ACTIONS", "QUIT ARGS")
		for _, v := range versions {
			p := profiles[v]
			fmt.Fprintf(out, "  %-10s  %#-7x  %d\n", v, p.Actions, p.QuitArgs)
		}
		return nil
	},
}
