package main

import (
	"github.com/odvcencio/crateship/pkg/pipeline"
	"github.com/spf13/cobra"
)

func newReleaseCmd() *cobra.Command {
	opts := &releaseOptions{}
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Publish and tag the manifest version unless the registry already has it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			checker, err := newChecker(cfg)
			if err != nil {
				return err
			}
			executor, err := newExecutor(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			p := &pipeline.Pipeline{
				ManifestPath: opts.manifestPath,
				Checker:      checker,
				Executor:     executor,
				Out:          cmd.OutOrStdout(),
				DryRun:       dryRun,
			}
			_, err = p.Run(cmd.Context())
			return err
		},
	}

	addReleaseFlags(cmd, opts)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "stop after the registry check; no publish, no tag")
	return cmd
}

func addReleaseFlags(cmd *cobra.Command, opts *releaseOptions) {
	cmd.Flags().StringVar(&opts.manifestPath, "manifest", "Cargo.toml", "path to the crate manifest")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a crateship config file (default: .crateship.yaml if present)")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "registry check strategy: lookup, list, or index")
	cmd.Flags().StringVar(&opts.tagVia, "tag-via", "", "how to record the release tag: git or api")
	cmd.Flags().StringVar(&opts.remote, "remote", "", "git remote to push the tag to")
}
