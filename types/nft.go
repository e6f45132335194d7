package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Trait is a single off-chain attribute of an NFT.
type Trait struct {
	TraitType string     `json:"trait_type" extensions:"x-order:0"`
	Value     TraitValue `json:"value" extensions:"x-order:1"`
}

// TraitValue accepts strings, numbers and booleans and keeps their textual form.
type TraitValue string

func (v *TraitValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TraitValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*v = TraitValue(n.String())
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = TraitValue(strconv.FormatBool(b))
		return nil
	}

	// objects and arrays are kept verbatim
	*v = TraitValue(string(data))
	return nil
}

// NftRecord is the display record of a single NFT.
type NftRecord struct {
	Name   string  `json:"name" extensions:"x-order:0"`
	Image  string  `json:"image" extensions:"x-order:1"`
	Uri    string  `json:"uri" extensions:"x-order:2"`
	Mint   string  `json:"mint" extensions:"x-order:3"`
	Traits []Trait `json:"traits" extensions:"x-order:4"`
}

// CollectionEntry is one item of the collection gallery.
type CollectionEntry struct {
	Mint        string `json:"mint" extensions:"x-order:0"`
	Name        string `json:"name" extensions:"x-order:1"`
	Image       string `json:"image" extensions:"x-order:2"`
	Description string `json:"description,omitempty" extensions:"x-order:3"`
}

// OwnershipResult answers whether a wallet holds an NFT of the target collection.
type OwnershipResult struct {
	Wallet string  `json:"wallet" extensions:"x-order:0"`
	Owned  bool    `json:"owned" extensions:"x-order:1"`
	Mint   *string `json:"mint" extensions:"x-order:2"`
}

// DashboardView is everything the dashboard page shows for a connected wallet.
type DashboardView struct {
	Wallet          string            `json:"wallet" extensions:"x-order:0"`
	Owned           bool              `json:"owned" extensions:"x-order:1"`
	Nft             *NftRecord        `json:"nft" extensions:"x-order:2"`
	Collection      []CollectionEntry `json:"collection" extensions:"x-order:3"`
	CollectionError string            `json:"collection_error,omitempty" extensions:"x-order:4"`
}

// TrimOnchainString strips the NUL padding Metaplex stores after names, symbols and URIs.
// Interior NULs are removed and invalid UTF-8 is replaced, since postgres text
// columns reject both.
func TrimOnchainString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(strings.ToValidUTF8(s, "\uFFFD"))
}
