package config

import (
	"fmt"
	"net/url"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/husky-nft/nftgate/types"
)

const (
	DefaultRpcUrl            = "https://api.mainnet-beta.solana.com"
	DefaultCommitment        = "confirmed"
	DefaultCollectionAddress = "8TtouGqvJfjPKRkDVJVw7vN3qk6SM3E8D8iFj72KrKAv"
	DefaultMetadataProgramId = "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"
	DefaultTokenProgramId    = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	DefaultIpfsGateway       = "https://ipfs.io/ipfs"
	DefaultArweaveGateway    = "https://arweave.net"
)

type ChainConfig struct {
	RpcUrls           []string
	Commitment        string
	CollectionAddress string
	CreatorAddress    string
	MetadataProgramId string
	TokenProgramId    string
	IpfsGateway       string
	ArweaveGateway    string
	Environment       string
}

func (cc ChainConfig) Validate() error {
	if len(cc.RpcUrls) == 0 {
		return types.NewValidationError("SOLANA_RPC_URLS", "required field is missing")
	}
	for _, rpcUrl := range cc.RpcUrls {
		if err := validateHttpUrl("SOLANA_RPC_URLS", rpcUrl); err != nil {
			return err
		}
	}

	switch cc.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return types.NewInvalidValueError("SOLANA_COMMITMENT", cc.Commitment, "must be 'processed', 'confirmed' or 'finalized'")
	}

	addrs := []struct {
		field string
		value string
	}{
		{"COLLECTION_ADDRESS", cc.CollectionAddress},
		{"CREATOR_ADDRESS", cc.CreatorAddress},
		{"METADATA_PROGRAM_ID", cc.MetadataProgramId},
		{"TOKEN_PROGRAM_ID", cc.TokenProgramId},
	}
	for _, a := range addrs {
		if len(a.value) == 0 {
			return types.NewValidationError(a.field, "required field is missing")
		}
		if _, err := solana.PublicKeyFromBase58(a.value); err != nil {
			return types.NewInvalidValueError(a.field, a.value, "must be a base58 public key")
		}
	}

	if err := validateHttpUrl("IPFS_GATEWAY", cc.IpfsGateway); err != nil {
		return err
	}
	if err := validateHttpUrl("ARWEAVE_GATEWAY", cc.ArweaveGateway); err != nil {
		return err
	}

	return nil
}

func (cc ChainConfig) GetCommitment() rpc.CommitmentType {
	return rpc.CommitmentType(cc.Commitment)
}

// The key accessors below assume Validate has passed.

func (cc ChainConfig) CollectionKey() solana.PublicKey {
	return solana.MustPublicKeyFromBase58(cc.CollectionAddress)
}

func (cc ChainConfig) CreatorKey() solana.PublicKey {
	return solana.MustPublicKeyFromBase58(cc.CreatorAddress)
}

func (cc ChainConfig) MetadataProgramKey() solana.PublicKey {
	return solana.MustPublicKeyFromBase58(cc.MetadataProgramId)
}

func (cc ChainConfig) TokenProgramKey() solana.PublicKey {
	return solana.MustPublicKeyFromBase58(cc.TokenProgramId)
}

func validateHttpUrl(field, raw string) error {
	if len(raw) == 0 {
		return types.NewValidationError(field, "required field is missing")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return types.NewInvalidValueError(field, raw, fmt.Sprintf("invalid URL: %v", err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return types.NewInvalidValueError(field, raw, fmt.Sprintf("must use http or https scheme, got: %s", u.Scheme))
	}
	return nil
}
