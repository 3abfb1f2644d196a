package substrate

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/chain"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/decoder"
	"github.com/goodnatureofminers/midnight-indexer/pkg/safe"
)

type headerDTO struct {
	ParentHash string          `json:"parentHash"`
	Number     json.RawMessage `json:"number"`
}

func (h headerDTO) toHeader(hash string) (*chain.Header, error) {
	number, err := parseUint(h.Number)
	if err != nil {
		return nil, fmt.Errorf("header number: %w", err)
	}
	return &chain.Header{
		Number:     number,
		Hash:       decoder.NormalizeHash(hash),
		ParentHash: decoder.NormalizeHash(h.ParentHash),
	}, nil
}

type signedBlockDTO struct {
	Block blockDTO `json:"block"`
}

type blockDTO struct {
	Header     headerDTO         `json:"header"`
	Extrinsics []json.RawMessage `json:"extrinsics"`
	Slot       json.RawMessage   `json:"slot"`
}

func (b blockDTO) toRawBlock(hash string) (*chain.RawBlock, error) {
	header, err := b.Header.toHeader(hash)
	if err != nil {
		return nil, err
	}
	block := &chain.RawBlock{
		Hash:       decoder.NormalizeHash(hash),
		Header:     *header,
		Extrinsics: make([]chain.RawExtrinsic, 0, len(b.Extrinsics)),
	}
	if !isNull(b.Slot) {
		if block.Slot, err = parseUint(b.Slot); err != nil {
			return nil, fmt.Errorf("slot: %w", err)
		}
	}
	for i, raw := range b.Extrinsics {
		ext, err := parseExtrinsic(raw)
		if err != nil {
			return nil, fmt.Errorf("extrinsic %d: %w", i, err)
		}
		block.Extrinsics = append(block.Extrinsics, ext)
	}
	return block, nil
}

type extrinsicDTO struct {
	Hash      string          `json:"hash"`
	Section   string          `json:"section"`
	Method    json.RawMessage `json:"method"`
	Args      json.RawMessage `json:"args"`
	IsSigned  *bool           `json:"isSigned"`
	Signer    json.RawMessage `json:"signer"`
	Signature json.RawMessage `json:"signature"`
}

type methodDTO struct {
	Pallet  string          `json:"pallet"`
	Section string          `json:"section"`
	Method  string          `json:"method"`
	Args    json.RawMessage `json:"args"`
}

type signatureDTO struct {
	Signer json.RawMessage `json:"signer"`
}

// parseExtrinsic accepts a decoded extrinsic object. Opaque hex strings are kept as raw bytes
// with no section or method.
func parseExtrinsic(raw json.RawMessage) (chain.RawExtrinsic, error) {
	raw = bytes.TrimSpace(raw)
	if startsWith(raw, '"') {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return chain.RawExtrinsic{}, err
		}
		b, err := hex.DecodeString(decoder.NormalizeHash(s))
		if err != nil {
			return chain.RawExtrinsic{}, fmt.Errorf("opaque extrinsic: %w", err)
		}
		return chain.RawExtrinsic{Raw: b}, nil
	}

	var dto extrinsicDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return chain.RawExtrinsic{}, err
	}
	ext := chain.RawExtrinsic{
		Hash:    decoder.NormalizeHash(dto.Hash),
		Section: dto.Section,
		Raw:     raw,
	}

	args := dto.Args
	switch {
	case startsWith(dto.Method, '{'):
		var m methodDTO
		if err := json.Unmarshal(dto.Method, &m); err != nil {
			return chain.RawExtrinsic{}, fmt.Errorf("method: %w", err)
		}
		ext.Method = m.Method
		if m.Pallet != "" {
			ext.Section = m.Pallet
		} else if m.Section != "" {
			ext.Section = m.Section
		}
		if isNull(args) {
			args = m.Args
		}
	case startsWith(dto.Method, '"'):
		var s string
		if err := json.Unmarshal(dto.Method, &s); err != nil {
			return chain.RawExtrinsic{}, fmt.Errorf("method: %w", err)
		}
		if section, method, ok := strings.Cut(s, "."); ok {
			if ext.Section == "" {
				ext.Section = section
			}
			ext.Method = method
		} else {
			ext.Method = s
		}
	}
	if ext.Section == "" || ext.Method == "" {
		return chain.RawExtrinsic{}, errors.New("missing section or method")
	}

	var err error
	if ext.Args, err = orderedValues(args); err != nil {
		return chain.RawExtrinsic{}, fmt.Errorf("args: %w", err)
	}

	ext.Signer = accountOf(dto.Signer)
	if ext.Signer == "" && startsWith(dto.Signature, '{') {
		var sig signatureDTO
		if err := json.Unmarshal(dto.Signature, &sig); err == nil {
			ext.Signer = accountOf(sig.Signer)
		}
	}
	if dto.IsSigned != nil {
		ext.Signed = *dto.IsSigned
	} else {
		ext.Signed = ext.Signer != ""
	}
	return ext, nil
}

type eventRecordDTO struct {
	Phase json.RawMessage `json:"phase"`
	Event eventDTO        `json:"event"`
}

type eventDTO struct {
	Pallet  string          `json:"pallet"`
	Section string          `json:"section"`
	Method  string          `json:"method"`
	Data    json.RawMessage `json:"data"`
}

func (r eventRecordDTO) toRawEvent() (chain.RawEvent, error) {
	ev := chain.RawEvent{
		Section: r.Event.Section,
		Method:  r.Event.Method,
		Data:    r.Event.Data,
	}
	if r.Event.Pallet != "" {
		ev.Section = r.Event.Pallet
	}
	if ev.Section == "" || ev.Method == "" {
		return chain.RawEvent{}, errors.New("missing section or method")
	}
	if len(ev.Data) == 0 {
		ev.Data = json.RawMessage("null")
	}

	// Initialization and Finalization phases arrive as plain strings.
	if !startsWith(r.Phase, '{') {
		return ev, nil
	}
	var phase map[string]json.RawMessage
	if err := json.Unmarshal(r.Phase, &phase); err != nil {
		return chain.RawEvent{}, fmt.Errorf("phase: %w", err)
	}
	for k, v := range phase {
		if !strings.EqualFold(k, "applyExtrinsic") {
			continue
		}
		n, err := parseUint(v)
		if err != nil {
			return chain.RawEvent{}, fmt.Errorf("phase index: %w", err)
		}
		idx, err := safe.Uint32(n)
		if err != nil {
			return chain.RawEvent{}, fmt.Errorf("phase index: %w", err)
		}
		ev.ExtrinsicIndex = &idx
	}
	return ev, nil
}

// timestampOf reads the millisecond argument of the block's timestamp.set inherent.
func timestampOf(block *chain.RawBlock) (uint64, error) {
	for _, ext := range block.Extrinsics {
		if chain.CallKey(ext.Section, ext.Method) != "timestamp.set" {
			continue
		}
		if len(ext.Args) == 0 {
			return 0, fmt.Errorf("block %s: timestamp.set without arguments", block.Hash)
		}
		ts, err := parseUint(ext.Args[0])
		if err != nil {
			return 0, fmt.Errorf("block %s: timestamp: %w", block.Hash, err)
		}
		return ts, nil
	}
	return 0, fmt.Errorf("block %s: no timestamp.set call", block.Hash)
}

// orderedValues returns array elements, or object values in document order.
func orderedValues(raw json.RawMessage) ([]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || isNull(raw):
		return nil, nil
	case startsWith(raw, '['):
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return items, nil
	case startsWith(raw, '{'):
		dec := json.NewDecoder(bytes.NewReader(raw))
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		var items []json.RawMessage
		for dec.More() {
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			var v json.RawMessage
			if err := dec.Decode(&v); err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	default:
		return []json.RawMessage{raw}, nil
	}
}

// accountOf accepts a plain string or a wrapper such as {"id": "..."}.
func accountOf(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	switch {
	case startsWith(raw, '"'):
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case startsWith(raw, '{'):
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return ""
		}
		for _, key := range []string{"id", "Id", "address", "Address"} {
			if v, ok := wrapper[key]; ok {
				return accountOf(v)
			}
		}
	}
	return ""
}

// parseUint accepts JSON integers, decimal strings with optional thousands separators and
// 0x-prefixed hex strings.
func parseUint(raw json.RawMessage) (uint64, error) {
	raw = bytes.TrimSpace(raw)
	s := string(raw)
	if startsWith(raw, '"') {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

func startsWith(raw json.RawMessage, c byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == c
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || string(raw) == "null"
}
