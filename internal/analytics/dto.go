package analytics

import "github.com/shopspring/decimal"

type DashboardResponse struct {
	ActiveVehicles  int64           `json:"active_vehicles"`
	ActiveRentals   int64           `json:"active_rentals"`
	PartsInStock    int64           `json:"parts_in_stock"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	MonthlyProfit   decimal.Decimal `json:"monthly_profit"`
}

type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// 月次系列はグラフ描画向けの平行配列で返す（添字が同じ月を指す）
type AnalyticsResponse struct {
	Months     []string                `json:"months"`
	Income     []decimal.Decimal       `json:"income"`
	Expenses   []decimal.Decimal       `json:"expenses"`
	Profit     []decimal.Decimal       `json:"profit"`
	Categories []CategoryTotalResponse `json:"categories"`
}
