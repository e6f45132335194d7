package chain

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/husky-nft/nftgate/log"
	"github.com/husky-nft/nftgate/types"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// fakeRPC is a minimal JSON-RPC endpoint. Handlers return the "result" value.
type fakeRPC struct {
	mu       sync.Mutex
	handlers map[string]func(params json.RawMessage) any
	requests []rpcRequest
	status   int
}

func newFakeRPC(t *testing.T) (*fakeRPC, *httptest.Server) {
	f := &fakeRPC{handlers: make(map[string]func(json.RawMessage) any)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req rpcRequest
		_ = json.Unmarshal(body, &req)

		f.mu.Lock()
		f.requests = append(f.requests, req)
		status := f.status
		handler := f.handlers[req.Method]
		f.mu.Unlock()

		if status != 0 {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		var result any
		if handler != nil {
			result = handler(req.Params)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		})
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeRPC) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func accountJSON(data []byte, owner solana.PublicKey) map[string]any {
	return map[string]any{
		"data":       []string{base64.StdEncoding.EncodeToString(data), "base64"},
		"executable": false,
		"lamports":   2039280,
		"owner":      owner.String(),
		"rentEpoch":  0,
	}
}

func newTestClient(endpoints ...string) *RPCClient {
	return NewRPCClient(endpoints, rpc.CommitmentConfirmed, solana.TokenProgramID, time.Second, log.Discard())
}

func TestRPCClient_TokenAccountsByOwner(t *testing.T) {
	fake, srv := newFakeRPC(t)
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	tokenAcc := solana.NewWallet().PublicKey()

	fake.handlers["getTokenAccountsByOwner"] = func(json.RawMessage) any {
		return map[string]any{
			"context": map[string]any{"slot": 1},
			"value": []any{
				map[string]any{
					"pubkey":  tokenAcc.String(),
					"account": accountJSON(tokenAccountData(mint, owner, 1), solana.TokenProgramID),
				},
			},
		}
	}

	accounts, err := newTestClient(srv.URL).TokenAccountsByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, tokenAcc, accounts[0].Address)

	decoded, err := DecodeTokenAccount(accounts[0].Address, accounts[0].Data)
	require.NoError(t, err)
	assert.Equal(t, mint, decoded.Mint)
}

func TestRPCClient_TokenAccountsHeldBy_Filters(t *testing.T) {
	fake, srv := newFakeRPC(t)
	holder := solana.NewWallet().PublicKey()

	fake.handlers["getProgramAccounts"] = func(json.RawMessage) any {
		return []any{}
	}

	accounts, err := newTestClient(srv.URL).TokenAccountsHeldBy(context.Background(), holder)
	require.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)

	require.Equal(t, 1, fake.count())
	var params []json.RawMessage
	require.NoError(t, json.Unmarshal(fake.requests[0].Params, &params))
	require.Len(t, params, 2)

	var program string
	require.NoError(t, json.Unmarshal(params[0], &program))
	assert.Equal(t, solana.TokenProgramID.String(), program)

	var opts struct {
		Filters []struct {
			DataSize uint64 `json:"dataSize"`
			Memcmp   *struct {
				Offset uint64 `json:"offset"`
				Bytes  string `json:"bytes"`
			} `json:"memcmp"`
		} `json:"filters"`
	}
	require.NoError(t, json.Unmarshal(params[1], &opts))
	require.Len(t, opts.Filters, 2)
	assert.Equal(t, uint64(types.TokenAccountSize), opts.Filters[0].DataSize)
	require.NotNil(t, opts.Filters[1].Memcmp)
	assert.Equal(t, uint64(types.TokenAccountOwnerOffset), opts.Filters[1].Memcmp.Offset)
	assert.Equal(t, holder.String(), opts.Filters[1].Memcmp.Bytes)
}

func TestRPCClient_AccountDataMissing(t *testing.T) {
	fake, srv := newFakeRPC(t)
	fake.handlers["getAccountInfo"] = func(json.RawMessage) any {
		return map[string]any{"context": map[string]any{"slot": 1}, "value": nil}
	}

	_, err := newTestClient(srv.URL).AccountData(context.Background(), solana.NewWallet().PublicKey())
	require.Error(t, err)
	assert.True(t, types.Is(err, types.ErrTypeNotFound))
	assert.Equal(t, 1, fake.count(), "missing accounts must not be retried")
}

func TestRPCClient_AccountDataRotatesOnFailure(t *testing.T) {
	fastBackoff(t)
	broken, brokenSrv := newFakeRPC(t)
	broken.status = http.StatusBadGateway

	healthy, healthySrv := newFakeRPC(t)
	payload := []byte{4, 1, 2, 3}
	healthy.handlers["getAccountInfo"] = func(json.RawMessage) any {
		return map[string]any{
			"context": map[string]any{"slot": 1},
			"value":   accountJSON(payload, solana.TokenMetadataProgramID),
		}
	}

	data, err := newTestClient(brokenSrv.URL, healthySrv.URL).AccountData(context.Background(), solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, maxRetriesPerURL, broken.count())
	assert.Equal(t, 1, healthy.count())
}
