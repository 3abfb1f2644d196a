package ledgerapi

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/chain"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/decoder"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
)

type blockByHeightData struct {
	Block *blockDTO `json:"block"`
}

type hashRef struct {
	Hash string `json:"hash"`
}

type blockDTO struct {
	Hash            string           `json:"hash"`
	Height          uint64           `json:"height"`
	ProtocolVersion uint32           `json:"protocolVersion"`
	Timestamp       int64            `json:"timestamp"`
	Author          *string          `json:"author"`
	Parent          *hashRef         `json:"parent"`
	Transactions    []transactionDTO `json:"transactions"`
}

type transactionDTO struct {
	Typename          string              `json:"__typename"`
	ID                uint64              `json:"id"`
	Hash              string              `json:"hash"`
	Raw               string              `json:"raw"`
	Identifiers       []string            `json:"identifiers"`
	MerkleTreeRoot    string              `json:"merkleTreeRoot"`
	StartIndex        *uint64             `json:"startIndex"`
	EndIndex          *uint64             `json:"endIndex"`
	Fees              *feesDTO            `json:"fees"`
	TransactionResult *resultDTO          `json:"transactionResult"`
	ContractActions   []contractActionDTO `json:"contractActions"`
	Created           []utxoDTO           `json:"unshieldedCreatedOutputs"`
	Spent             []utxoDTO           `json:"unshieldedSpentOutputs"`
	ZswapEvents       []ledgerEventDTO    `json:"zswapLedgerEvents"`
	DustEvents        []ledgerEventDTO    `json:"dustLedgerEvents"`
}

type feesDTO struct {
	PaidFees      json.RawMessage `json:"paidFees"`
	EstimatedFees json.RawMessage `json:"estimatedFees"`
}

type resultDTO struct {
	Status   string       `json:"status"`
	Segments []segmentDTO `json:"segments"`
}

type segmentDTO struct {
	ID      uint32 `json:"id"`
	Success bool   `json:"success"`
}

type contractActionDTO struct {
	Typename   string       `json:"__typename"`
	Address    string       `json:"address"`
	State      string       `json:"state"`
	ZswapState string       `json:"zswapState"`
	EntryPoint string       `json:"entryPoint"`
	Balances   []balanceDTO `json:"unshieldedBalances"`
}

type balanceDTO struct {
	TokenType string          `json:"tokenType"`
	Amount    json.RawMessage `json:"amount"`
}

type utxoDTO struct {
	Owner             string          `json:"owner"`
	TokenType         string          `json:"tokenType"`
	Value             json.RawMessage `json:"value"`
	IntentHash        string          `json:"intentHash"`
	OutputIndex       uint32          `json:"outputIndex"`
	InitialNonce      string          `json:"initialNonce"`
	RegisteredForDust bool            `json:"registeredForDustGeneration"`
	Ctime             *int64          `json:"ctime"`
	CreatedAt         *hashRef        `json:"createdAtTransaction"`
	SpentAt           *hashRef        `json:"spentAtTransaction"`
}

type ledgerEventDTO struct {
	Typename string `json:"__typename"`
	ID       uint64 `json:"id"`
	MaxID    uint64 `json:"maxId"`
	Raw      string `json:"raw"`
	Output   *struct {
		Nonce string `json:"nonce"`
	} `json:"output"`
}

func (b *blockDTO) toLedgerBlock() (*chain.LedgerBlock, error) {
	out := &chain.LedgerBlock{
		Hash:            decoder.NormalizeHash(b.Hash),
		Height:          b.Height,
		ProtocolVersion: b.ProtocolVersion,
		Timestamp:       time.UnixMilli(b.Timestamp).UTC(),
		Transactions:    make([]chain.LedgerTransaction, 0, len(b.Transactions)),
	}
	if b.Author != nil {
		out.Author = decoder.NormalizeHash(*b.Author)
	}
	if b.Parent != nil {
		out.ParentHash = decoder.NormalizeHash(b.Parent.Hash)
	}
	for i := range b.Transactions {
		tx, err := b.Transactions[i].toLedgerTransaction()
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", b.Transactions[i].Hash, err)
		}
		out.Transactions = append(out.Transactions, tx)
	}
	return out, nil
}

func (t *transactionDTO) toLedgerTransaction() (chain.LedgerTransaction, error) {
	raw, err := hexBytes(t.Raw)
	if err != nil {
		return chain.LedgerTransaction{}, fmt.Errorf("raw: %w", err)
	}
	tx := chain.LedgerTransaction{
		Hash:        decoder.NormalizeHash(t.Hash),
		ID:          t.ID,
		Raw:         raw,
		Identifiers: make([]string, 0, len(t.Identifiers)),
		MerkleRoot:  decoder.NormalizeHash(t.MerkleTreeRoot),
	}
	for _, id := range t.Identifiers {
		tx.Identifiers = append(tx.Identifiers, decoder.NormalizeHash(id))
	}
	if t.StartIndex != nil {
		tx.StartIndex = *t.StartIndex
	}
	if t.EndIndex != nil {
		tx.EndIndex = *t.EndIndex
	}
	if t.Fees != nil {
		if tx.PaidFee, err = optionalAmount(t.Fees.PaidFees); err != nil {
			return chain.LedgerTransaction{}, fmt.Errorf("paid fee: %w", err)
		}
		if tx.EstimatedFee, err = optionalAmount(t.Fees.EstimatedFees); err != nil {
			return chain.LedgerTransaction{}, fmt.Errorf("estimated fee: %w", err)
		}
	}
	if t.TransactionResult != nil {
		tx.Status = status(t.TransactionResult.Status)
		for _, s := range t.TransactionResult.Segments {
			tx.Segments = append(tx.Segments, model.ResultSegment{SegmentID: s.ID, Success: s.Success})
		}
	}

	for i, a := range t.ContractActions {
		action, err := a.toContractAction()
		if err != nil {
			return chain.LedgerTransaction{}, fmt.Errorf("contract action %d: %w", i, err)
		}
		tx.ContractActions = append(tx.ContractActions, action)
	}
	for i, u := range t.Created {
		utxo, err := u.toLedgerUtxo()
		if err != nil {
			return chain.LedgerTransaction{}, fmt.Errorf("created output %d: %w", i, err)
		}
		tx.UnshieldedCreated = append(tx.UnshieldedCreated, utxo)
	}
	for i, u := range t.Spent {
		utxo, err := u.toLedgerUtxo()
		if err != nil {
			return chain.LedgerTransaction{}, fmt.Errorf("spent output %d: %w", i, err)
		}
		tx.UnshieldedSpent = append(tx.UnshieldedSpent, utxo)
	}
	if tx.ZswapEvents, err = ledgerEvents(t.ZswapEvents); err != nil {
		return chain.LedgerTransaction{}, fmt.Errorf("zswap events: %w", err)
	}
	if tx.DustEvents, err = ledgerEvents(t.DustEvents); err != nil {
		return chain.LedgerTransaction{}, fmt.Errorf("dust events: %w", err)
	}
	return tx, nil
}

func (a contractActionDTO) toContractAction() (chain.LedgerContractAction, error) {
	var kind model.ContractActionKind
	switch a.Typename {
	case "ContractDeploy":
		kind = model.ContractDeploy
	case "ContractCall":
		kind = model.ContractCall
	case "ContractUpdate":
		kind = model.ContractUpdate
	default:
		return chain.LedgerContractAction{}, fmt.Errorf("unknown contract action %q", a.Typename)
	}
	state, err := hexBytes(a.State)
	if err != nil {
		return chain.LedgerContractAction{}, fmt.Errorf("state: %w", err)
	}
	zswapState, err := hexBytes(a.ZswapState)
	if err != nil {
		return chain.LedgerContractAction{}, fmt.Errorf("zswap state: %w", err)
	}
	action := chain.LedgerContractAction{
		Kind:       kind,
		Address:    decoder.NormalizeHash(a.Address),
		State:      state,
		ZswapState: zswapState,
		EntryPoint: a.EntryPoint,
	}
	for _, b := range a.Balances {
		amount, err := amountOf(b.Amount)
		if err != nil {
			return chain.LedgerContractAction{}, fmt.Errorf("balance %s: %w", b.TokenType, err)
		}
		action.Balances = append(action.Balances, model.ContractBalance{
			TokenType: decoder.NormalizeHash(b.TokenType),
			Amount:    amount,
		})
	}
	return action, nil
}

func (u utxoDTO) toLedgerUtxo() (chain.LedgerUtxo, error) {
	value, err := amountOf(u.Value)
	if err != nil {
		return chain.LedgerUtxo{}, fmt.Errorf("value: %w", err)
	}
	utxo := chain.LedgerUtxo{
		Owner:             u.Owner,
		TokenType:         decoder.NormalizeHash(u.TokenType),
		Value:             value,
		IntentHash:        decoder.NormalizeHash(u.IntentHash),
		InitialNonce:      decoder.NormalizeHash(u.InitialNonce),
		RegisteredForDust: u.RegisteredForDust,
		OutputIndex:       u.OutputIndex,
	}
	if u.CreatedAt != nil {
		utxo.CreatedAtTxHash = decoder.NormalizeHash(u.CreatedAt.Hash)
	}
	if u.SpentAt != nil {
		utxo.SpentAtTxHash = decoder.NormalizeHash(u.SpentAt.Hash)
	}
	if u.Ctime != nil {
		utxo.CreatedAt = time.Unix(*u.Ctime, 0).UTC()
	}
	return utxo, nil
}

func ledgerEvents(in []ledgerEventDTO) ([]chain.LedgerEventRecord, error) {
	out := make([]chain.LedgerEventRecord, 0, len(in))
	for _, e := range in {
		raw, err := hexBytes(e.Raw)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", e.ID, err)
		}
		rec := chain.LedgerEventRecord{
			ID:      e.ID,
			MaxID:   e.MaxID,
			Variant: e.Typename,
			Raw:     raw,
		}
		if e.Output != nil {
			rec.OutputNonce = e.Output.Nonce
		}
		out = append(out, rec)
	}
	return out, nil
}

func status(s string) model.TransactionStatus {
	switch strings.ToUpper(s) {
	case "SUCCESS":
		return model.StatusSuccess
	case "PARTIAL_SUCCESS", "PARTIAL":
		return model.StatusPartial
	case "FAILURE":
		return model.StatusFailure
	default:
		return ""
	}
}

func hexBytes(s string) ([]byte, error) {
	s = decoder.NormalizeHash(s)
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}

func optionalAmount(raw json.RawMessage) (*big.Int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	return amountOf(raw)
}

// amountOf accepts a JSON integer or a decimal string; u128 values do not fit a GraphQL Int.
func amountOf(raw json.RawMessage) (*big.Int, error) {
	s := string(raw)
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
	}
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %s", string(raw))
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative amount %s", string(raw))
	}
	return v, nil
}
