package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/husky-nft/nftgate/config"
)

// SetVersion records the build info injected through ldflags.
func SetVersion(version, commit string) {
	config.SetBuildInfo(version, commit)
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nftgate",
		Short:         "Wallet-gated NFT collection service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(apiCmd())
	cmd.AddCommand(indexerCmd())
	cmd.AddCommand(migrateCmd())
	cmd.AddCommand(checkCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and commit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", config.Version, config.CommitHash)
		},
	}
}
