package classifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	errMissingField = errors.New("missing field")
	errNotObject    = errors.New("payload is not an object")
	errNotArray     = errors.New("payload is not an array")
	errShortArray   = errors.New("payload array too short")
)

type fields map[string]json.RawMessage

func objectFields(data json.RawMessage) (fields, error) {
	if !startsWith(data, '{') {
		return nil, errNotObject
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(fields, len(raw))
	for k, v := range raw {
		out[canonicalKey(k)] = v
	}
	return out, nil
}

func arrayItems(data json.RawMessage, size int) ([]json.RawMessage, error) {
	if !startsWith(data, '[') {
		return nil, errNotArray
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if len(items) < size {
		return nil, fmt.Errorf("%w: %d < %d", errShortArray, len(items), size)
	}
	return items, nil
}

func (f fields) get(names ...string) (json.RawMessage, error) {
	for _, n := range names {
		if v, ok := f[canonicalKey(n)]; ok && !isNull(v) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", errMissingField, strings.Join(names, "|"))
}

func (f fields) amount(names ...string) (*big.Int, error) {
	v, err := f.get(names...)
	if err != nil {
		return nil, err
	}
	return parseAmount(v)
}

func (f fields) account(names ...string) (string, error) {
	v, err := f.get(names...)
	if err != nil {
		return "", err
	}
	return parseAccount(v)
}

func (f fields) text(names ...string) (string, error) {
	v, err := f.get(names...)
	if err != nil {
		return "", err
	}
	return parseText(v)
}

// parseAmount accepts JSON integers, decimal strings and 0x-prefixed hex strings.
func parseAmount(raw json.RawMessage) (*big.Int, error) {
	raw = bytes.TrimSpace(raw)
	s := string(raw)
	if startsWith(raw, '"') {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", string(raw))
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative amount %q", string(raw))
	}
	return v, nil
}

// parseAccount accepts a plain string or a single-key wrapper such as {"id": "..."}.
func parseAccount(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if startsWith(raw, '{') {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return "", err
		}
		if len(wrapper) != 1 {
			return "", fmt.Errorf("ambiguous account %s", string(raw))
		}
		for _, v := range wrapper {
			return parseAccount(v)
		}
	}
	s, err := parseText(raw)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", errors.New("empty account")
	}
	return s, nil
}

func parseText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if startsWith(raw, '"') {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	if len(raw) > 0 && (raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')) {
		return string(raw), nil
	}
	return "", fmt.Errorf("not a string %s", string(raw))
}

func parseBool(raw json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, fmt.Errorf("not a bool %s: %w", string(raw), err)
	}
	return b, nil
}

func parseUint32(raw json.RawMessage) (uint32, error) {
	var v uint32
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("not a uint32 %s: %w", string(raw), err)
	}
	return v, nil
}

func startsWith(raw json.RawMessage, c byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == c
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
