package main

import (
	"fmt"

	"github.com/odvcencio/crateship/pkg/manifest"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	opts := &releaseOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether the manifest version is already on the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			crate, err := manifest.Load(opts.manifestPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Detected crate version %s\n", crate.Version)

			checker, err := newChecker(cfg)
			if err != nil {
				return err
			}
			released, err := checker.Released(cmd.Context(), crate.Name, crate.Version)
			if err != nil {
				return fmt.Errorf("check registry: %w", err)
			}
			if released {
				fmt.Fprintf(cmd.OutOrStdout(), "Version %s already exists on the registry\n", crate.Version)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Version %s is not on the registry yet\n", crate.Version)
			}
			return nil
		},
	}

	addReleaseFlags(cmd, opts)
	return cmd
}
