// Package reconciler merges the chain view and the ledger view of a block into one bundle.
package reconciler

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/chain"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/classifier"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/decoder"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/goodnatureofminers/midnight-indexer/pkg/safe"
	"go.uber.org/zap"
)

// AddressNormalizer converts owner addresses to their canonical forms.
type AddressNormalizer interface {
	Normalize(addr string) (model.Address, error)
}

// Reconciler builds model.BlockBundle values.
type Reconciler struct {
	addresses AddressNormalizer
	logger    *zap.Logger
}

// New constructs a Reconciler.
func New(addresses AddressNormalizer, logger *zap.Logger) *Reconciler {
	return &Reconciler{addresses: addresses, logger: logger}
}

// Reconcile merges the classified calls of block with the ledger view of the same height.
// A nil ledger yields a chain-only bundle with LedgerPending set.
func (r *Reconciler) Reconcile(block *chain.DecodedBlock, calls []classifier.Classified, ledger *chain.LedgerBlock) (model.BlockBundle, error) {
	b := &builder{
		r:      r,
		bundle: model.BlockBundle{Block: block.Block, LedgerPending: ledger == nil},
	}

	ledgerTxs := make(map[string]*chain.LedgerTransaction)
	if ledger != nil {
		if ledger.ProtocolVersion != 0 {
			b.bundle.Block.ProtocolVersion = ledger.ProtocolVersion
		}
		if ledger.Author != "" {
			b.bundle.Block.Author = decoder.NormalizeHash(ledger.Author)
		}
		for i := range ledger.Transactions {
			lt := &ledger.Transactions[i]
			ledgerTxs[decoder.NormalizeHash(lt.Hash)] = lt
		}
	}

	seen := make(map[string]struct{}, len(calls))
	for _, c := range calls {
		hash := c.Call.Hash
		if hash == "" {
			hash = fmt.Sprintf("%s-%d", block.Block.Hash, c.Call.Index)
			r.logger.Warn("call without hash, using positional key",
				zap.Uint64("height", block.Block.Height),
				zap.Uint32("extrinsic", c.Call.Index),
			)
		}
		if _, dup := seen[hash]; dup {
			continue
		}
		seen[hash] = struct{}{}

		lt := ledgerTxs[hash]
		if err := b.addChainTx(hash, c, lt); err != nil {
			return model.BlockBundle{}, err
		}
	}

	if ledger != nil {
		next := uint32(len(block.Calls))
		for i := range ledger.Transactions {
			lt := &ledger.Transactions[i]
			hash := decoder.NormalizeHash(lt.Hash)
			if _, ok := seen[hash]; ok {
				continue
			}
			seen[hash] = struct{}{}
			if err := b.addLedgerOnlyTx(hash, next, lt); err != nil {
				return model.BlockBundle{}, err
			}
			next++
		}
	}

	count, err := safe.Uint32(len(b.bundle.Txs))
	if err != nil {
		return model.BlockBundle{}, fmt.Errorf("transaction count: %w", err)
	}
	b.bundle.Block.TxCount = count
	return b.bundle, nil
}

type builder struct {
	r      *Reconciler
	bundle model.BlockBundle
}

func (b *builder) addChainTx(hash string, c classifier.Classified, lt *chain.LedgerTransaction) error {
	raw, err := encodeCall(c.Call)
	if err != nil {
		return fmt.Errorf("encode call %s: %w", hash, err)
	}
	tx := model.Transaction{
		Hash:        hash,
		BlockHeight: b.bundle.Block.Height,
		BlockHash:   b.bundle.Block.Hash,
		Index:       c.Call.Index,
		Timestamp:   b.bundle.Block.Timestamp,
		Shielded:    c.Shielded,
		Status:      c.Status,
		Source:      model.SourceChain,
		Section:     c.Call.Section,
		Method:      c.Call.Method,
		Signer:      b.owner(c.Call.Signer),
		Signed:      c.Call.Signed,
		Fee:         c.Fee,
		Raw:         raw,
	}

	var nextOut, nextIn uint32
	if lt != nil {
		applyLedger(&tx, lt)
		nextOut, nextIn = b.addLedgerChildren(hash, lt)
	} else {
		nextOut, nextIn = b.addMovements(hash, c.Movements)
	}
	b.addShielded(hash, c.Extraction, nextOut, nextIn)
	b.bundle.Txs = append(b.bundle.Txs, tx)
	return nil
}

func (b *builder) addLedgerOnlyTx(hash string, index uint32, lt *chain.LedgerTransaction) error {
	tx := model.Transaction{
		Hash:        hash,
		BlockHeight: b.bundle.Block.Height,
		BlockHash:   b.bundle.Block.Hash,
		Index:       index,
		Timestamp:   b.bundle.Block.Timestamp,
		Source:      model.SourceLedger,
	}
	applyLedger(&tx, lt)
	b.addLedgerChildren(hash, lt)
	b.bundle.Txs = append(b.bundle.Txs, tx)
	return nil
}

// applyLedger copies the ledger-owned fields onto tx. The ledger owns status once present.
func applyLedger(tx *model.Transaction, lt *chain.LedgerTransaction) {
	id := lt.ID
	start, end := lt.StartIndex, lt.EndIndex
	tx.LedgerID = &id
	tx.MerkleRoot = decoder.NormalizeHash(lt.MerkleRoot)
	tx.StartIndex = &start
	tx.EndIndex = &end
	tx.PaidFee = lt.PaidFee
	tx.EstimatedFee = lt.EstimatedFee
	tx.LedgerRaw = lt.Raw
	tx.Identifiers = lt.Identifiers
	tx.Segments = lt.Segments
	tx.Source = model.SourceLedger
	tx.Status = lt.Status
	if tx.Status == "" {
		tx.Status = model.StatusFromSegments(lt.Segments)
	}
	if len(lt.ZswapEvents) > 0 {
		tx.Shielded = true
	}
}

func (b *builder) addLedgerChildren(hash string, lt *chain.LedgerTransaction) (nextOut, nextIn uint32) {
	for _, u := range lt.UnshieldedCreated {
		b.bundle.Outputs = append(b.bundle.Outputs, model.TransactionOutput{
			TxHash:            hash,
			Index:             u.OutputIndex,
			Owner:             b.owner(u.Owner),
			TokenType:         decoder.NormalizeHash(u.TokenType),
			Value:             nonNil(u.Value),
			IntentHash:        decoder.NormalizeHash(u.IntentHash),
			InitialNonce:      decoder.NormalizeHash(u.InitialNonce),
			RegisteredForDust: u.RegisteredForDust,
			CreatedAt:         u.CreatedAt,
			Source:            model.SourceLedger,
		})
		if u.OutputIndex+1 > nextOut {
			nextOut = u.OutputIndex + 1
		}
	}

	for i, u := range lt.UnshieldedSpent {
		index := uint32(i)
		in := model.TransactionInput{
			TxHash:    hash,
			Index:     index,
			Owner:     b.owner(u.Owner),
			TokenType: decoder.NormalizeHash(u.TokenType),
			Value:     nonNil(u.Value),
			Source:    model.SourceLedger,
		}
		if u.CreatedAtTxHash != "" {
			in.Prev = &model.OutputRef{TxHash: decoder.NormalizeHash(u.CreatedAtTxHash), Index: u.OutputIndex}
		}
		b.bundle.Inputs = append(b.bundle.Inputs, in)
		nextIn = index + 1
	}

	for i, a := range lt.ContractActions {
		b.bundle.ContractActions = append(b.bundle.ContractActions, model.ContractAction{
			TxHash:     hash,
			Position:   uint32(i),
			Kind:       a.Kind,
			Address:    decoder.NormalizeHash(a.Address),
			State:      a.State,
			ZswapState: a.ZswapState,
			EntryPoint: a.EntryPoint,
			Balances:   normalizeBalances(a.Balances),
		})
	}

	var pos uint32
	for _, e := range lt.ZswapEvents {
		b.bundle.LedgerEvents = append(b.bundle.LedgerEvents, ledgerEvent(hash, pos, model.LedgerEventZswap, e))
		pos++
	}
	for _, e := range lt.DustEvents {
		b.bundle.LedgerEvents = append(b.bundle.LedgerEvents, ledgerEvent(hash, pos, model.LedgerEventDust, e))
		pos++
	}
	return nextOut, nextIn
}

// addMovements turns chain movements into outputs for receivers and inputs for senders.
func (b *builder) addMovements(hash string, movements []classifier.Movement) (nextOut, nextIn uint32) {
	for _, m := range movements {
		if m.Amount == nil {
			continue
		}
		if m.To != "" {
			b.bundle.Outputs = append(b.bundle.Outputs, model.TransactionOutput{
				TxHash:    hash,
				Index:     nextOut,
				Owner:     b.owner(m.To),
				TokenType: m.TokenType,
				Value:     new(big.Int).Set(m.Amount),
				CreatedAt: b.bundle.Block.Timestamp,
				Source:    model.SourceChain,
			})
			nextOut++
		}
		if m.From != "" {
			b.bundle.Inputs = append(b.bundle.Inputs, model.TransactionInput{
				TxHash:    hash,
				Index:     nextIn,
				Owner:     b.owner(m.From),
				TokenType: m.TokenType,
				Value:     new(big.Int).Set(m.Amount),
				Source:    model.SourceChain,
			})
			nextIn++
		}
	}
	return nextOut, nextIn
}

// addShielded records shielded outputs and spends after the unshielded positions.
func (b *builder) addShielded(hash string, ex classifier.Extraction, nextOut, nextIn uint32) {
	height := b.bundle.Block.Height
	for _, so := range ex.ShieldedOutputs {
		value := nonNil(so.Value)
		b.bundle.Outputs = append(b.bundle.Outputs, model.TransactionOutput{
			TxHash:     hash,
			Index:      nextOut,
			TokenType:  so.TokenType,
			Value:      value,
			Shielded:   true,
			Commitment: so.Commitment,
			CreatedAt:  b.bundle.Block.Timestamp,
			Source:     model.SourceChain,
		})
		nextOut++
		b.bundle.Notes = append(b.bundle.Notes, model.ShieldedNote{
			Commitment:    so.Commitment,
			TokenType:     so.TokenType,
			Value:         value,
			CreatedTxHash: hash,
			CreatedHeight: height,
			Status:        model.NoteUnspent,
		})
	}
	for _, ss := range ex.ShieldedSpends {
		b.bundle.Inputs = append(b.bundle.Inputs, model.TransactionInput{
			TxHash:     hash,
			Index:      nextIn,
			Shielded:   true,
			Commitment: ss.Commitment,
			Nullifier:  ss.Nullifier,
			Source:     model.SourceChain,
		})
		nextIn++
	}
}

func (b *builder) owner(addr string) string {
	if addr == "" {
		return ""
	}
	a, err := b.r.addresses.Normalize(addr)
	if err != nil {
		b.r.logger.Debug("address kept in source form", zap.String("address", addr), zap.Error(err))
		return strings.TrimSpace(addr)
	}
	return a.Hex
}

func ledgerEvent(hash string, pos uint32, kind model.LedgerEventKind, e chain.LedgerEventRecord) model.LedgerEvent {
	return model.LedgerEvent{
		TxHash:      hash,
		Position:    pos,
		Kind:        kind,
		Variant:     e.Variant,
		EventID:     e.ID,
		MaxID:       e.MaxID,
		Raw:         e.Raw,
		OutputNonce: decoder.NormalizeHash(e.OutputNonce),
	}
}

func normalizeBalances(in []model.ContractBalance) []model.ContractBalance {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.ContractBalance, 0, len(in))
	for _, bal := range in {
		out = append(out, model.ContractBalance{TokenType: decoder.NormalizeHash(bal.TokenType), Amount: nonNil(bal.Amount)})
	}
	return out
}

type callPayload struct {
	Call   json.RawMessage   `json:"call,omitempty"`
	Args   []json.RawMessage `json:"args,omitempty"`
	Events []eventPayload    `json:"events,omitempty"`
}

type eventPayload struct {
	Section string          `json:"section"`
	Method  string          `json:"method"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// encodeCall keeps the call and every event, recognized or not, for later re-derivation.
func encodeCall(c chain.Call) ([]byte, error) {
	p := callPayload{
		Call: asJSON(c.Raw),
		Args: append([]json.RawMessage(nil), c.Args...),
	}
	for i, arg := range p.Args {
		p.Args[i] = asJSON(arg)
	}
	for _, ev := range c.Events {
		p.Events = append(p.Events, eventPayload{Section: ev.Section, Method: ev.Method, Data: asJSON(ev.Data)})
	}
	return json.Marshal(p)
}

func asJSON(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || json.Valid(raw) {
		return raw
	}
	quoted, _ := json.Marshal(string(raw))
	return quoted
}

func nonNil(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
