package main

import (
	"github.com/spf13/cobra"

	"github.com/scummvm/scummvm-sub094/internal/logic"
	"github.com/scummvm/scummvm-sub094/pkg/utils"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <logic file>",
	Short: "Disassemble a logic resource",
	Long: `Print the bytecode of a logic resource, one instruction per line.

The file may be compressed with gzip or xz, or be the first entry of a
zip or 7z archive. Opcodes are decoded with the set of the interpreter
version given by --interpreter or the configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: runDisasm,
}

func runDisasm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	profile, err := cfg.Profile("")
	if err != nil {
		return err
	}
	t, err := logic.NewTable(profile)
	if err != nil {
		return err
	}

	code, err := utils.LoadFile(args[0])
	if err != nil {
		return err
	}
	return logic.Disassemble(cmd.OutOrStdout(), code, t)
}
