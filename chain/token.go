package chain

import (
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/husky-nft/nftgate/types"
)

// TokenAccount is the part of an SPL token account the service reads.
type TokenAccount struct {
	Address solana.PublicKey
	Mint    solana.PublicKey
	Owner   solana.PublicKey
	Amount  uint64
}

// KeyedData is an account address with its raw data.
type KeyedData struct {
	Address solana.PublicKey
	Data    []byte
}

// DecodeTokenAccount reads mint, owner and amount from an SPL token account.
// Trailing fields (delegate, state, close authority) are ignored.
func DecodeTokenAccount(addr solana.PublicKey, data []byte) (TokenAccount, error) {
	if len(data) < types.TokenAccountSize {
		return TokenAccount{}, types.NewDecodeError(
			"token account "+addr.String(),
			fmt.Errorf("expected %d bytes, got %d", types.TokenAccountSize, len(data)),
		)
	}

	dec := bin.NewBinDecoder(data)
	mint, err := dec.ReadNBytes(32)
	if err != nil {
		return TokenAccount{}, types.NewDecodeError("token account mint", err)
	}
	owner, err := dec.ReadNBytes(32)
	if err != nil {
		return TokenAccount{}, types.NewDecodeError("token account owner", err)
	}
	amount, err := dec.ReadUint64(binary.LittleEndian)
	if err != nil {
		return TokenAccount{}, types.NewDecodeError("token account amount", err)
	}

	return TokenAccount{
		Address: addr,
		Mint:    solana.PublicKeyFromBytes(mint),
		Owner:   solana.PublicKeyFromBytes(owner),
		Amount:  amount,
	}, nil
}
