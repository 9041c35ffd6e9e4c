package analytics

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"GMS-backend/internal/platform/db"
)

// Totals は1区間分の集計結果。収入 = Payments + Sales。
type Totals struct {
	Payments decimal.Decimal
	Sales    decimal.Decimal
	Expenses decimal.Decimal
}

// CategoryTotal はカテゴリ別の経費合計。
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Store は集計クエリの集合。収入 = 入金(payments) + 部品売上(sales)、
// 支出 = 車両関連経費(expenses)。区間はすべて閉区間 [start, end]。
type Store interface {
	CountVehiclesByStatus(ctx context.Context, status string) (int64, error)
	CountRentalsByStatus(ctx context.Context, status string) (int64, error)
	SumPartQuantity(ctx context.Context) (int64, error)

	// WindowTotals は全区間を1つの読み取り専用Txで集計し、
	// windows と同じ順序で結果を返す。
	WindowTotals(ctx context.Context, windows []Window) ([]Totals, error)

	ExpensesByCategory(ctx context.Context) ([]CategoryTotal, error)
}

type mysqlStore struct {
	conn *sql.DB
}

func NewStore(conn *sql.DB) Store { return &mysqlStore{conn: conn} }

func (s *mysqlStore) CountVehiclesByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := s.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM vehicles WHERE status = ?`, status).Scan(&n)
	return n, err
}

func (s *mysqlStore) CountRentalsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := s.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rentals WHERE status = ?`, status).Scan(&n)
	return n, err
}

func (s *mysqlStore) SumPartQuantity(ctx context.Context) (int64, error) {
	var n int64
	err := s.conn.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM parts`).Scan(&n)
	return n, err
}

func (s *mysqlStore) WindowTotals(ctx context.Context, windows []Window) ([]Totals, error) {
	out := make([]Totals, 0, len(windows))
	err := db.ReadOnly(ctx, s.conn, func(ctx context.Context, tx db.DBTX) error {
		for _, w := range windows {
			var t Totals
			var err error
			if t.Payments, err = sumRange(ctx, tx,
				`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE paid_on BETWEEN ? AND ?`,
				w.Start, w.End); err != nil {
				return err
			}
			if t.Sales, err = sumRange(ctx, tx,
				`SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE sold_on BETWEEN ? AND ?`,
				w.Start, w.End); err != nil {
				return err
			}
			if t.Expenses, err = sumRange(ctx, tx,
				`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE spent_on BETWEEN ? AND ?`,
				w.Start, w.End); err != nil {
				return err
			}
			out = append(out, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func sumRange(ctx context.Context, tx db.DBTX, query string, start, end time.Time) (decimal.Decimal, error) {
	var raw string
	if err := tx.QueryRowContext(ctx, query, start, end).Scan(&raw); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}

func (s *mysqlStore) ExpensesByCategory(ctx context.Context) ([]CategoryTotal, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT category, COALESCE(SUM(amount), 0) AS total
		FROM expenses
		GROUP BY category
		ORDER BY total DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		var raw string
		if err := rows.Scan(&ct.Category, &raw); err != nil {
			return nil, err
		}
		if ct.Total, err = decimal.NewFromString(raw); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}
