package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// decimalToPgNumeric converts a shopspring decimal to a pgtype.Numeric
// for NUMERIC(10,2) columns.
func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(d.String()); err != nil {
		return n, fmt.Errorf("convert decimal to numeric: %w", err)
	}
	return n, nil
}

// pgNumericToDecimal converts a pgtype.Numeric back to a shopspring
// decimal. Invalid (NULL) numerics become zero, which is what the
// aggregate queries want for empty periods.
func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

// textToStringPtr converts a nullable text column to *string.
func textToStringPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

// stringPtrToText converts *string to a nullable text parameter.
func stringPtrToText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// isPgUniqueViolation checks if an error is a PostgreSQL unique
// constraint violation (error code 23505).
func isPgUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
