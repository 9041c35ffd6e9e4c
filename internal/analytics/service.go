package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"GMS-backend/internal/garage"
	"GMS-backend/internal/rental"
)

// Clock は現在時刻の供給源。集計区間の打ち切りをテスト可能にする。
type Clock interface{ Now() time.Time }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

const trailingMonths = 12

type Service struct {
	store Store
	clock Clock
}

func NewService(conn *sql.DB) *Service {
	return &Service{store: NewStore(conn), clock: realClock{}}
}

// テスト用にストアと時計を差し替え可能なコンストラクタ
func NewServiceWithStore(store Store, clock Clock) *Service {
	return &Service{store: store, clock: clock}
}

// Dashboard は在庫・稼働状況のカウントと当月の収支を返す。
func (s *Service) Dashboard(ctx context.Context) (DashboardResponse, error) {
	sum, err := s.summaryStats(ctx, s.clock.Now())
	if err != nil {
		return DashboardResponse{}, err
	}
	return DashboardResponse{
		ActiveVehicles:  sum.ActiveVehicles,
		ActiveRentals:   sum.ActiveRentals,
		PartsInStock:    sum.PartsInStock,
		MonthlyIncome:   sum.MonthlyIncome,
		MonthlyExpenses: sum.MonthlyExpenses,
		MonthlyProfit:   sum.MonthlyProfit,
	}, nil
}

// Monthly は直近12ヶ月の月次収支（古い順）とカテゴリ別経費内訳を返す。
func (s *Service) Monthly(ctx context.Context) (AnalyticsResponse, error) {
	var resp AnalyticsResponse

	windows := MonthWindows(s.clock.Now(), trailingMonths)
	totals, err := s.store.WindowTotals(ctx, windows)
	if err != nil {
		return resp, err
	}
	resp.Months = make([]string, 0, len(windows))
	resp.Income = make([]decimal.Decimal, 0, len(windows))
	resp.Expenses = make([]decimal.Decimal, 0, len(windows))
	resp.Profit = make([]decimal.Decimal, 0, len(windows))
	for i, w := range windows {
		income := totals[i].Payments.Add(totals[i].Sales)
		resp.Months = append(resp.Months, w.Label())
		resp.Income = append(resp.Income, income)
		resp.Expenses = append(resp.Expenses, totals[i].Expenses)
		resp.Profit = append(resp.Profit, income.Sub(totals[i].Expenses))
	}

	cats, err := s.store.ExpensesByCategory(ctx)
	if err != nil {
		return resp, err
	}
	resp.Categories = make([]CategoryTotalResponse, 0, len(cats))
	for _, ct := range cats {
		resp.Categories = append(resp.Categories, CategoryTotalResponse{
			Category: ct.Category,
			Total:    ct.Total,
		})
	}
	return resp, nil
}

// ExportPDF は月次レポートPDFを生成し、ファイル名とバイト列を返す。
func (s *Service) ExportPDF(ctx context.Context) (string, []byte, error) {
	now := s.clock.Now()
	sum, err := s.summaryStats(ctx, now)
	if err != nil {
		return "", nil, err
	}
	data, err := renderPDF(sum, now)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("report_%s.pdf", now.Format("20060102")), data, nil
}

// ExportExcel は月次レポートのExcelブックを生成する。
func (s *Service) ExportExcel(ctx context.Context) (string, []byte, error) {
	now := s.clock.Now()
	sum, err := s.summaryStats(ctx, now)
	if err != nil {
		return "", nil, err
	}
	monthly, err := s.Monthly(ctx)
	if err != nil {
		return "", nil, err
	}
	data, err := renderExcel(sum, monthly, now)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("report_%s.xlsx", now.Format("20060102")), data, nil
}

// summaryStats はレポートとダッシュボード共通の主要6指標を組み立てる。
func (s *Service) summaryStats(ctx context.Context, now time.Time) (summaryStats, error) {
	var sum summaryStats
	var err error

	if sum.ActiveVehicles, err = s.store.CountVehiclesByStatus(ctx, garage.StatusActive); err != nil {
		return sum, err
	}
	if sum.ActiveRentals, err = s.store.CountRentalsByStatus(ctx, rental.StatusActive); err != nil {
		return sum, err
	}
	if sum.PartsInStock, err = s.store.SumPartQuantity(ctx); err != nil {
		return sum, err
	}

	totals, err := s.store.WindowTotals(ctx, []Window{CurrentMonthWindow(now)})
	if err != nil {
		return sum, err
	}
	sum.MonthlyIncome = totals[0].Payments.Add(totals[0].Sales)
	sum.MonthlyExpenses = totals[0].Expenses
	sum.MonthlyProfit = sum.MonthlyIncome.Sub(sum.MonthlyExpenses)
	return sum, nil
}
