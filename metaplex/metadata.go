package metaplex

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/husky-nft/nftgate/types"
)

// KeyMetadataV1 is the account discriminator of a Token Metadata account.
const KeyMetadataV1 uint8 = 4

const metadataSeed = "metadata"

var (
	ErrTruncated  = errors.New("metadata account data is truncated")
	ErrInvalidKey = errors.New("account is not a metadata account")
)

type Creator struct {
	Address  solana.PublicKey `json:"address"`
	Verified bool             `json:"verified"`
	Share    uint8            `json:"share"`
}

type Data struct {
	Name                 string    `json:"name"`
	Symbol               string    `json:"symbol"`
	Uri                  string    `json:"uri"`
	SellerFeeBasisPoints uint16    `json:"seller_fee_basis_points"`
	Creators             []Creator `json:"creators"`
}

type Collection struct {
	Verified bool             `json:"verified"`
	Key      solana.PublicKey `json:"key"`
}

// Metadata is the decoded Token Metadata account. Optional trailing fields are
// nil when absent.
type Metadata struct {
	Key                 uint8            `json:"key"`
	UpdateAuthority     solana.PublicKey `json:"update_authority"`
	Mint                solana.PublicKey `json:"mint"`
	Data                Data             `json:"data"`
	PrimarySaleHappened bool             `json:"primary_sale_happened"`
	IsMutable           bool             `json:"is_mutable"`
	EditionNonce        *uint8           `json:"edition_nonce"`
	TokenStandard       *uint8           `json:"token_standard"`
	Collection          *Collection      `json:"collection"`
}

// InCollection reports whether the metadata carries a verified collection equal to key.
func (m *Metadata) InCollection(key solana.PublicKey) bool {
	return m.Collection != nil && m.Collection.Verified && m.Collection.Key.Equals(key)
}

// VerifiedCreators returns the base58 addresses of the creators that signed the metadata.
func (m *Metadata) VerifiedCreators() []string {
	var out []string
	for _, c := range m.Data.Creators {
		if c.Verified {
			out = append(out, c.Address.String())
		}
	}
	return out
}

// FindMetadataAddress derives the metadata PDA of mint under programID.
func FindMetadataAddress(programID, mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{
			[]byte(metadataSeed),
			programID.Bytes(),
			mint.Bytes(),
		},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive metadata address for %s: %w", mint, err)
	}
	return addr, nil
}

// Decode parses a Borsh-encoded Token Metadata account.
func Decode(data []byte) (*Metadata, error) {
	r := reader{dec: bin.NewBorshDecoder(data)}

	var md Metadata
	var err error
	if md.Key, err = r.u8(); err != nil {
		return nil, err
	}
	if md.Key != KeyMetadataV1 {
		return nil, fmt.Errorf("%w: key %d", ErrInvalidKey, md.Key)
	}
	if md.UpdateAuthority, err = r.pubkey(); err != nil {
		return nil, err
	}
	if md.Mint, err = r.pubkey(); err != nil {
		return nil, err
	}
	if md.Data, err = r.data(); err != nil {
		return nil, err
	}
	if md.PrimarySaleHappened, err = r.boolean(); err != nil {
		return nil, err
	}
	if md.IsMutable, err = r.boolean(); err != nil {
		return nil, err
	}

	// Accounts written before these fields existed simply end here.
	if md.EditionNonce, err = r.optionalU8(); err != nil {
		return nil, err
	}
	if md.TokenStandard, err = r.optionalU8(); err != nil {
		return nil, err
	}
	if md.Collection, err = r.collection(); err != nil {
		return nil, err
	}

	return &md, nil
}

// Encode is the inverse of Decode. Optional fields are written as None when nil.
func Encode(md *Metadata) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)

	writeString := func(s string) error {
		if err := enc.WriteUint32(uint32(len(s)), binary.LittleEndian); err != nil {
			return err
		}
		return enc.WriteBytes([]byte(s), false)
	}
	writeOptionalU8 := func(v *uint8) error {
		if v == nil {
			return enc.WriteUint8(0)
		}
		if err := enc.WriteUint8(1); err != nil {
			return err
		}
		return enc.WriteUint8(*v)
	}

	steps := []func() error{
		func() error { return enc.WriteUint8(md.Key) },
		func() error { return enc.WriteBytes(md.UpdateAuthority.Bytes(), false) },
		func() error { return enc.WriteBytes(md.Mint.Bytes(), false) },
		func() error { return writeString(md.Data.Name) },
		func() error { return writeString(md.Data.Symbol) },
		func() error { return writeString(md.Data.Uri) },
		func() error { return enc.WriteUint16(md.Data.SellerFeeBasisPoints, binary.LittleEndian) },
		func() error {
			if md.Data.Creators == nil {
				return enc.WriteUint8(0)
			}
			if err := enc.WriteUint8(1); err != nil {
				return err
			}
			if err := enc.WriteUint32(uint32(len(md.Data.Creators)), binary.LittleEndian); err != nil {
				return err
			}
			for _, c := range md.Data.Creators {
				if err := enc.WriteBytes(c.Address.Bytes(), false); err != nil {
					return err
				}
				if err := enc.WriteBool(c.Verified); err != nil {
					return err
				}
				if err := enc.WriteUint8(c.Share); err != nil {
					return err
				}
			}
			return nil
		},
		func() error { return enc.WriteBool(md.PrimarySaleHappened) },
		func() error { return enc.WriteBool(md.IsMutable) },
		func() error { return writeOptionalU8(md.EditionNonce) },
		func() error { return writeOptionalU8(md.TokenStandard) },
		func() error {
			if md.Collection == nil {
				return enc.WriteUint8(0)
			}
			if err := enc.WriteUint8(1); err != nil {
				return err
			}
			if err := enc.WriteBool(md.Collection.Verified); err != nil {
				return err
			}
			return enc.WriteBytes(md.Collection.Key.Bytes(), false)
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, types.NewInternalError("encode metadata", err)
		}
	}
	return buf.Bytes(), nil
}
