package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/DeusData/dartgraph/internal/discover"
	"github.com/DeusData/dartgraph/internal/scan"
)

func newScanCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "scan DIR",
		Short: "Extract every Dart file under DIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig(root, flags)
			if err != nil {
				return err
			}
			res, err := scan.Run(cmd.Context(), root, cfg)
			if err != nil {
				return err
			}
			return writeJSON(cmd, res)
		},
	}
}

func newPrescanCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "prescan DIR",
		Short: "Print the declared-symbol index for the Dart files under DIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig(root, flags)
			if err != nil {
				return err
			}
			files, err := discover.Discover(cmd.Context(), root, cfg.DiscoverOptions())
			if err != nil {
				return err
			}
			idx, err := scan.PreScan(cmd.Context(), discover.Paths(files), cfg.EffectiveWorkers())
			if err != nil {
				return err
			}
			return writeJSON(cmd, idx)
		},
	}
}
