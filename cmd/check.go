package cmd

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/husky-nft/nftgate/config"
	"github.com/husky-nft/nftgate/log"
	"github.com/husky-nft/nftgate/nft"
)

// checkCmd groups one-shot queries that print JSON to stdout.
func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a single query against the chain and print the result as JSON",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "ownership <wallet>",
			Short: "Check whether a wallet holds an NFT of the collection",
			Args:  cobra.ExactArgs(1),
			RunE: withService(func(ctx context.Context, svc *nft.Service, args []string, out io.Writer) error {
				res, err := svc.Ownership(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(out, res)
			}),
		},
		&cobra.Command{
			Use:   "token <mint>",
			Short: "Print the details of one NFT",
			Args:  cobra.ExactArgs(1),
			RunE: withService(func(ctx context.Context, svc *nft.Service, args []string, out io.Writer) error {
				rec, err := svc.FetchNftDetails(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(out, rec)
			}),
		},
		&cobra.Command{
			Use:   "collection",
			Short: "List the collection live from the chain",
			Args:  cobra.NoArgs,
			RunE: withService(func(ctx context.Context, svc *nft.Service, _ []string, out io.Writer) error {
				entries, err := svc.ListCollection(ctx)
				if err != nil {
					return err
				}
				return printJSON(out, entries)
			}),
		},
	)

	return cmd
}

type serviceRun func(ctx context.Context, svc *nft.Service, args []string, out io.Writer) error

// withService builds a quiet service from the environment for one-shot commands.
func withService(run serviceRun) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.GetConfig()
		if err != nil {
			return err
		}
		logger := log.NewLogger(cfg)
		return run(cmd.Context(), newService(cfg, logger), args, cmd.OutOrStdout())
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
