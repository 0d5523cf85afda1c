package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DeusData/dartgraph/internal/extract"
)

func newExtractCmd() *cobra.Command {
	var dependency bool

	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Extract entities from one Dart file and print the record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := extract.New(extract.Options{})
			if err != nil {
				return err
			}
			defer ex.Close()

			rec := ex.ParseFile(extract.ResolvePath(args[0]), dependency)
			return writeJSON(cmd, rec)
		},
	}
	cmd.Flags().BoolVar(&dependency, "dependency", false, "mark entities as third-party code")
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
