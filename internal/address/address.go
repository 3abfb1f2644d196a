// Package address converts account addresses between their bech32m and hex forms.
package address

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
)

const hrpPrefix = "mn_addr"

var (
	// ErrEmpty is returned for blank input.
	ErrEmpty = errors.New("empty address")
	// ErrWrongNetwork is returned when a bech32m address carries another network's prefix.
	ErrWrongNetwork = errors.New("address belongs to a different network")
)

// Codec encodes and decodes unshielded addresses for one network.
type Codec struct {
	hrp string
}

// NewCodec returns a codec using the human readable part of network.
func NewCodec(network model.Network) Codec {
	return Codec{hrp: HRP(network)}
}

// HRP returns the human readable part used by network. Mainnet has no suffix.
func HRP(network model.Network) string {
	if network == model.Mainnet || network == "" {
		return hrpPrefix
	}
	return hrpPrefix + "_" + string(network)
}

// Encode turns a hex payload into its bech32m form.
func (c Codec) Encode(hexPayload string) (string, error) {
	raw, err := decodeHex(hexPayload)
	if err != nil {
		return "", err
	}
	conv, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert bits: %w", err)
	}
	return bech32.EncodeM(c.hrp, conv)
}

// Decode turns a bech32m address into its hex payload.
func (c Codec) Decode(addr string) (string, error) {
	hrp, data, version, err := bech32.DecodeGeneric(strings.ToLower(strings.TrimSpace(addr)))
	if err != nil {
		return "", fmt.Errorf("decode bech32m %q: %w", addr, err)
	}
	if version != bech32.VersionM {
		return "", fmt.Errorf("decode %q: not a bech32m address", addr)
	}
	if hrp != c.hrp {
		return "", fmt.Errorf("%w: got %q, want %q", ErrWrongNetwork, hrp, c.hrp)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", fmt.Errorf("convert bits: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// Normalize accepts either form and returns both.
func (c Codec) Normalize(addr string) (model.Address, error) {
	s := strings.TrimSpace(addr)
	if s == "" {
		return model.Address{}, ErrEmpty
	}
	if strings.HasPrefix(strings.ToLower(s), hrpPrefix) {
		h, err := c.Decode(s)
		if err != nil {
			return model.Address{}, err
		}
		return model.Address{Bech32: strings.ToLower(s), Hex: h}, nil
	}
	raw, err := decodeHex(s)
	if err != nil {
		return model.Address{}, err
	}
	h := hex.EncodeToString(raw)
	b, err := c.Encode(h)
	if err != nil {
		return model.Address{}, err
	}
	return model.Address{Bech32: b, Hex: h}, nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	if s == "" {
		return nil, ErrEmpty
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode hex %q: %w", s, err)
	}
	return raw, nil
}
