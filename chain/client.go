package chain

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/husky-nft/nftgate/config"
	"github.com/husky-nft/nftgate/metrics"
	"github.com/husky-nft/nftgate/types"
)

// Client is the read-only Solana RPC surface used by the nft service.
type Client interface {
	// TokenAccountsByOwner lists the SPL token accounts owned by owner.
	TokenAccountsByOwner(ctx context.Context, owner solana.PublicKey) ([]KeyedData, error)
	// TokenAccountsHeldBy lists every SPL token account whose owner field is holder,
	// using program-account filters.
	TokenAccountsHeldBy(ctx context.Context, holder solana.PublicKey) ([]KeyedData, error)
	// AccountData returns the raw data of addr. A missing account is a NotFound error.
	AccountData(ctx context.Context, addr solana.PublicKey) ([]byte, error)
}

type RPCClient struct {
	endpoints    []string
	clients      map[string]*rpc.Client
	health       *healthTracker
	commitment   rpc.CommitmentType
	tokenProgram solana.PublicKey
	timeout      time.Duration
	logger       *slog.Logger
}

var _ Client = (*RPCClient)(nil)

func New(cfg *config.Config, logger *slog.Logger) *RPCClient {
	cc := cfg.GetChainConfig()
	return NewRPCClient(cc.RpcUrls, cc.GetCommitment(), cc.TokenProgramKey(), cfg.GetQueryTimeout(), logger)
}

func NewRPCClient(endpoints []string, commitment rpc.CommitmentType, tokenProgram solana.PublicKey, timeout time.Duration, logger *slog.Logger) *RPCClient {
	clients := make(map[string]*rpc.Client, len(endpoints))
	for _, endpoint := range endpoints {
		clients[endpoint] = rpc.New(endpoint)
	}

	return &RPCClient{
		endpoints:    endpoints,
		clients:      clients,
		health:       newHealthTracker(),
		commitment:   commitment,
		tokenProgram: tokenProgram,
		timeout:      timeout,
		logger:       logger.With("component", "rpc"),
	}
}

// call wraps one RPC method with rotation, a per-attempt timeout and metrics.
func call[T any](ctx context.Context, c *RPCClient, target string, fn func(ctx context.Context, cl *rpc.Client) (T, error)) (T, error) {
	return executeWithEndpointRotation(ctx, c.health, c.endpoints, target, func(ctx context.Context, endpoint string) (T, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		start := time.Now()
		res, err := fn(attemptCtx, c.clients[endpoint])
		switch {
		case err == nil:
			metrics.TrackExternalRequest(target, "ok", time.Since(start))
		case errors.Is(err, rpc.ErrNotFound):
			metrics.TrackExternalRequest(target, "not_found", time.Since(start))
		default:
			metrics.TrackExternalRequest(target, "error", time.Since(start))
			c.logger.Debug("rpc attempt failed",
				slog.String("method", target),
				slog.String("endpoint", endpoint),
				slog.Any("error", err))
		}
		return res, err
	})
}

func (c *RPCClient) TokenAccountsByOwner(ctx context.Context, owner solana.PublicKey) ([]KeyedData, error) {
	program := c.tokenProgram
	res, err := call(ctx, c, "getTokenAccountsByOwner", func(ctx context.Context, cl *rpc.Client) (*rpc.GetTokenAccountsResult, error) {
		return cl.GetTokenAccountsByOwner(ctx, owner,
			&rpc.GetTokenAccountsConfig{ProgramId: &program},
			&rpc.GetTokenAccountsOpts{
				Commitment: c.commitment,
				Encoding:   solana.EncodingBase64,
			},
		)
	})
	if err != nil {
		return nil, err
	}
	if res == nil {
		return []KeyedData{}, nil
	}

	out := make([]KeyedData, 0, len(res.Value))
	for _, acc := range res.Value {
		if acc == nil || acc.Account.Data == nil {
			continue
		}
		out = append(out, KeyedData{Address: acc.Pubkey, Data: acc.Account.Data.GetBinary()})
	}
	return out, nil
}

func (c *RPCClient) TokenAccountsHeldBy(ctx context.Context, holder solana.PublicKey) ([]KeyedData, error) {
	res, err := call(ctx, c, "getProgramAccounts", func(ctx context.Context, cl *rpc.Client) (rpc.GetProgramAccountsResult, error) {
		return cl.GetProgramAccountsWithOpts(ctx, c.tokenProgram, &rpc.GetProgramAccountsOpts{
			Commitment: c.commitment,
			Encoding:   solana.EncodingBase64,
			Filters: []rpc.RPCFilter{
				{DataSize: types.TokenAccountSize},
				{Memcmp: &rpc.RPCFilterMemcmp{
					Offset: types.TokenAccountOwnerOffset,
					Bytes:  solana.Base58(holder.Bytes()),
				}},
			},
		})
	})
	if err != nil {
		return nil, err
	}

	out := make([]KeyedData, 0, len(res))
	for _, acc := range res {
		if acc == nil || acc.Account == nil || acc.Account.Data == nil {
			continue
		}
		out = append(out, KeyedData{Address: acc.Pubkey, Data: acc.Account.Data.GetBinary()})
	}
	return out, nil
}

func (c *RPCClient) AccountData(ctx context.Context, addr solana.PublicKey) ([]byte, error) {
	res, err := call(ctx, c, "getAccountInfo", func(ctx context.Context, cl *rpc.Client) (*rpc.GetAccountInfoResult, error) {
		return cl.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
			Commitment: c.commitment,
			Encoding:   solana.EncodingBase64,
		})
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, types.NewNotFoundError("account " + addr.String())
	}
	if err != nil {
		return nil, err
	}
	if res == nil || res.Value == nil || res.Value.Data == nil {
		return nil, types.NewNotFoundError("account " + addr.String())
	}
	return res.Value.Data.GetBinary(), nil
}
