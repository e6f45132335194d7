package metaplex

import (
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/husky-nft/nftgate/types"
)

const (
	pubkeySize  = 32
	creatorSize = pubkeySize + 2
)

// reader wraps a Borsh decoder and checks the remaining length before every
// read so that short buffers surface as ErrTruncated.
type reader struct {
	dec *bin.Decoder
}

func (r reader) need(n int, what string) error {
	if r.dec.Remaining() < n {
		return fmt.Errorf("%w: %s needs %d bytes, %d remaining", ErrTruncated, what, n, r.dec.Remaining())
	}
	return nil
}

func (r reader) u8() (uint8, error) {
	if err := r.need(1, "u8"); err != nil {
		return 0, err
	}
	return r.dec.ReadUint8()
}

func (r reader) boolean() (bool, error) {
	v, err := r.u8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (r reader) u16() (uint16, error) {
	if err := r.need(2, "u16"); err != nil {
		return 0, err
	}
	return r.dec.ReadUint16(binary.LittleEndian)
}

func (r reader) u32() (uint32, error) {
	if err := r.need(4, "u32"); err != nil {
		return 0, err
	}
	return r.dec.ReadUint32(binary.LittleEndian)
}

func (r reader) pubkey() (solana.PublicKey, error) {
	if err := r.need(pubkeySize, "pubkey"); err != nil {
		return solana.PublicKey{}, err
	}
	b, err := r.dec.ReadNBytes(pubkeySize)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(b), nil
}

func (r reader) str(field string) (string, error) {
	n, err := r.u32()
	if err != nil {
		return "", err
	}
	if err := r.need(int(n), field); err != nil {
		return "", err
	}
	b, err := r.dec.ReadNBytes(int(n))
	if err != nil {
		return "", err
	}
	return types.TrimOnchainString(string(b)), nil
}

func (r reader) data() (Data, error) {
	var d Data
	var err error
	if d.Name, err = r.str("name"); err != nil {
		return d, err
	}
	if d.Symbol, err = r.str("symbol"); err != nil {
		return d, err
	}
	if d.Uri, err = r.str("uri"); err != nil {
		return d, err
	}
	if d.SellerFeeBasisPoints, err = r.u16(); err != nil {
		return d, err
	}

	present, err := r.boolean()
	if err != nil || !present {
		return d, err
	}
	count, err := r.u32()
	if err != nil {
		return d, err
	}
	if err := r.need(int(count)*creatorSize, "creators"); err != nil {
		return d, err
	}
	d.Creators = make([]Creator, 0, count)
	for i := uint32(0); i < count; i++ {
		var c Creator
		if c.Address, err = r.pubkey(); err != nil {
			return d, err
		}
		if c.Verified, err = r.boolean(); err != nil {
			return d, err
		}
		if c.Share, err = r.u8(); err != nil {
			return d, err
		}
		d.Creators = append(d.Creators, c)
	}
	return d, nil
}

// optionalU8 returns nil when the buffer is exhausted or the option tag is None.
func (r reader) optionalU8() (*uint8, error) {
	if r.dec.Remaining() == 0 {
		return nil, nil
	}
	present, err := r.boolean()
	if err != nil || !present {
		return nil, err
	}
	v, err := r.u8()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r reader) collection() (*Collection, error) {
	if r.dec.Remaining() == 0 {
		return nil, nil
	}
	present, err := r.boolean()
	if err != nil || !present {
		return nil, err
	}
	var c Collection
	if c.Verified, err = r.boolean(); err != nil {
		return nil, err
	}
	if c.Key, err = r.pubkey(); err != nil {
		return nil, err
	}
	return &c, nil
}
