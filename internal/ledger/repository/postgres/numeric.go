package postgres

import (
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
)

var ten = big.NewInt(10)

func numeric(v *big.Int) pgtype.Numeric {
	if v == nil {
		return pgtype.Numeric{}
	}
	return pgtype.Numeric{Int: new(big.Int).Set(v), Valid: true}
}

// fromNumeric converts a scanned NUMERIC(78,0) to an integer. NULL yields nil.
func fromNumeric(n pgtype.Numeric) (*big.Int, error) {
	if !n.Valid {
		return nil, nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return nil, fmt.Errorf("numeric is not a finite number")
	}
	if n.Int == nil {
		return new(big.Int), nil
	}
	out := new(big.Int).Set(n.Int)
	switch {
	case n.Exp > 0:
		out.Mul(out, new(big.Int).Exp(ten, big.NewInt(int64(n.Exp)), nil))
	case n.Exp < 0:
		div := new(big.Int).Exp(ten, big.NewInt(int64(-n.Exp)), nil)
		q, rem := new(big.Int).QuoRem(out, div, new(big.Int))
		if rem.Sign() != 0 {
			return nil, fmt.Errorf("numeric %s has a fractional part", n.Int.String())
		}
		out = q
	}
	return out, nil
}

func nullText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func textValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}

func nullUint32(v uint32) *int64 {
	if v == 0 {
		return nil
	}
	n := int64(v)
	return &n
}
