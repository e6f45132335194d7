package offchain

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/husky-nft/nftgate/types"
)

func newTestReader(gateway string) *WebReader {
	return NewWebReader(&fiber.Client{}, gateway+"/ipfs/", gateway+"/ar", time.Second)
}

func TestWebReader_Resolve(t *testing.T) {
	r := NewWebReader(&fiber.Client{}, "https://ipfs.io/ipfs/", "https://arweave.net", time.Second)

	tests := []struct {
		uri  string
		want string
	}{
		{"https://example.com/1.json", "https://example.com/1.json"},
		{"HTTP://example.com/1.json", "HTTP://example.com/1.json"},
		{"ipfs://bafy123/1.json", "https://ipfs.io/ipfs/bafy123/1.json"},
		{"ipfs://ipfs/bafy123", "https://ipfs.io/ipfs/bafy123"},
		{"ar://abcDEF", "https://arweave.net/abcDEF"},
		{"data:application/json,{}", "data:application/json,{}"},
	}
	for _, tt := range tests {
		got, err := r.Resolve(tt.uri)
		require.NoError(t, err, tt.uri)
		assert.Equal(t, tt.want, got, tt.uri)
	}

	_, err := r.Resolve("ftp://example.com/1.json")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestWebReader_DataURI(t *testing.T) {
	r := newTestReader("http://unused")

	encoded := base64.StdEncoding.EncodeToString([]byte(`{"name":"Husky #1"}`))
	body, err := r.Get(context.Background(), "data:application/json;base64,"+encoded)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Husky #1"}`, string(body))

	body, err = r.Get(context.Background(), `data:application/json,%7B%22name%22%3A%22x%22%7D`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x"}`, string(body))

	_, err = r.Get(context.Background(), "data:application/json;base64,")
	assert.ErrorIs(t, err, ErrBadDataURI)
}

func TestWebReader_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.json", "/ipfs/bafy/1.json", "/ar/tx1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"path":"` + r.URL.Path + `"}`))
		case "/tx":
			http.Redirect(w, r, "/sandboxed/tx", http.StatusFound)
		case "/sandboxed/tx":
			_, _ = w.Write([]byte(`{"name":"redirected"}`))
		case "/loop":
			http.Redirect(w, r, "/loop", http.StatusFound)
		case "/limited":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	r := newTestReader(srv.URL)
	ctx := context.Background()

	body, err := r.Get(ctx, srv.URL+"/ok.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"/ok.json"}`, string(body))

	body, err = r.Get(ctx, "ipfs://bafy/1.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"/ipfs/bafy/1.json"}`, string(body))

	body, err = r.Get(ctx, "ar://tx1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"/ar/tx1"}`, string(body))

	body, err = r.Get(ctx, srv.URL+"/tx")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"redirected"}`, string(body))

	_, err = r.Get(ctx, srv.URL+"/loop")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyRedirects)
	assert.True(t, types.Is(err, types.ErrTypeNetwork))

	_, err = r.Get(ctx, srv.URL+"/missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadStatus)
	assert.True(t, types.Is(err, types.ErrTypeNetwork))

	_, err = r.Get(ctx, srv.URL+"/limited")
	require.Error(t, err)
	assert.True(t, types.Is(err, types.ErrTypeRateLimit))
}

func TestWebReader_EmptyAndCancelled(t *testing.T) {
	r := newTestReader("http://unused")

	_, err := r.Get(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyURI)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Get(ctx, "https://example.com/1.json")
	assert.ErrorIs(t, err, context.Canceled)
}
