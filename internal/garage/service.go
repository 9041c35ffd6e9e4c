package garage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"GMS-backend/internal/platform/apperr"
)

const dateLayout = "2006-01-02"

type Service struct {
	store Store
}

func NewService(db *sql.DB) *Service { return &Service{store: NewStore(db)} }

// テスト用にストア差し替え可能なコンストラクタ
func NewServiceWithStore(store Store) *Service { return &Service{store: store} }

// ===== Vehicles =====

func (s *Service) CreateVehicle(ctx context.Context, in CreateVehicleRequest) (VehicleResponse, error) {
	if strings.TrimSpace(in.Brand) == "" || strings.TrimSpace(in.Model) == "" {
		return VehicleResponse{}, apperr.Invalid("brand and model are required")
	}
	if in.Year < 1900 || in.Year > time.Now().Year()+1 {
		return VehicleResponse{}, apperr.Invalid("year is out of range")
	}

	price := decimal.Zero
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return VehicleResponse{}, apperr.Invalid("purchase_price must be >= 0")
		}
		price = *in.PurchasePrice
	}

	v := &Vehicle{
		Brand:         strings.TrimSpace(in.Brand),
		Model:         strings.TrimSpace(in.Model),
		Year:          in.Year,
		VIN:           toNullString(in.VIN),
		PurchasePrice: price,
		Description:   toNullString(in.Description),
		Status:        StatusActive,
	}

	if err := s.store.InsertVehicle(ctx, v); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return VehicleResponse{}, apperr.Conflict("vin already exists")
		}
		return VehicleResponse{}, err
	}
	return buildVehicleResponse(v), nil
}

func (s *Service) GetVehicle(ctx context.Context, id int64) (VehicleDetailResponse, error) {
	v, err := s.store.GetVehicleByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return VehicleDetailResponse{}, apperr.NotFound("vehicle not found")
		}
		return VehicleDetailResponse{}, err
	}

	expenses, err := s.store.ListExpensesByVehicle(ctx, id)
	if err != nil {
		return VehicleDetailResponse{}, err
	}
	rentals, err := s.store.ListRentalsByVehicle(ctx, id)
	if err != nil {
		return VehicleDetailResponse{}, err
	}
	totalExpenses, err := s.store.SumExpensesByVehicle(ctx, id)
	if err != nil {
		return VehicleDetailResponse{}, err
	}
	totalIncome, err := s.store.SumPaymentsByVehicle(ctx, id)
	if err != nil {
		return VehicleDetailResponse{}, err
	}

	resp := VehicleDetailResponse{
		Vehicle:       buildVehicleResponse(v),
		Expenses:      make([]ExpenseResponse, 0, len(expenses)),
		Rentals:       make([]RentalSummaryResponse, 0, len(rentals)),
		TotalExpenses: totalExpenses,
		TotalIncome:   totalIncome,
	}
	for _, e := range expenses {
		resp.Expenses = append(resp.Expenses, buildExpenseResponse(&e))
	}
	for _, r := range rentals {
		resp.Rentals = append(resp.Rentals, RentalSummaryResponse{
			RentalID:    r.RentalID,
			RentalULID:  r.RentalULID,
			ClientName:  r.ClientName,
			StartDate:   r.StartDate.Format(dateLayout),
			EndDate:     r.EndDate.Format(dateLayout),
			DailyRate:   r.DailyRate,
			TotalAmount: r.TotalAmount,
			Status:      r.Status,
		})
	}
	return resp, nil
}

func (s *Service) ListVehicles(ctx context.Context, f VehicleFilter) ([]VehicleResponse, error) {
	items, err := s.store.ListVehicles(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]VehicleResponse, 0, len(items))
	for i := range items {
		out = append(out, buildVehicleResponse(&items[i]))
	}
	return out, nil
}

// ===== Expenses =====

func (s *Service) AddExpense(ctx context.Context, vehicleID int64, in CreateExpenseRequest) (ExpenseResponse, error) {
	spentOn, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return ExpenseResponse{}, apperr.Invalid("invalid date format, expected YYYY-MM-DD")
	}
	if in.Amount.IsNegative() {
		return ExpenseResponse{}, apperr.Invalid("amount must be >= 0")
	}
	if strings.TrimSpace(in.Category) == "" {
		return ExpenseResponse{}, apperr.Invalid("category is required")
	}

	if _, err := s.store.GetVehicleByID(ctx, vehicleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ExpenseResponse{}, apperr.NotFound("vehicle not found")
		}
		return ExpenseResponse{}, err
	}

	e := &Expense{
		VehicleID:   vehicleID,
		SpentOn:     spentOn,
		Amount:      in.Amount,
		Category:    strings.TrimSpace(in.Category),
		Description: toNullString(in.Description),
	}
	if err := s.store.InsertExpense(ctx, e); err != nil {
		return ExpenseResponse{}, err
	}
	return buildExpenseResponse(e), nil
}

func (s *Service) ListExpenses(ctx context.Context, vehicleID int64) ([]ExpenseResponse, error) {
	if _, err := s.store.GetVehicleByID(ctx, vehicleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("vehicle not found")
		}
		return nil, err
	}
	items, err := s.store.ListExpensesByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	out := make([]ExpenseResponse, 0, len(items))
	for i := range items {
		out = append(out, buildExpenseResponse(&items[i]))
	}
	return out, nil
}

func (s *Service) ListVehicleRentals(ctx context.Context, vehicleID int64) ([]RentalSummaryResponse, error) {
	if _, err := s.store.GetVehicleByID(ctx, vehicleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("vehicle not found")
		}
		return nil, err
	}
	items, err := s.store.ListRentalsByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	out := make([]RentalSummaryResponse, 0, len(items))
	for _, r := range items {
		out = append(out, RentalSummaryResponse{
			RentalID:    r.RentalID,
			RentalULID:  r.RentalULID,
			ClientName:  r.ClientName,
			StartDate:   r.StartDate.Format(dateLayout),
			EndDate:     r.EndDate.Format(dateLayout),
			DailyRate:   r.DailyRate,
			TotalAmount: r.TotalAmount,
			Status:      r.Status,
		})
	}
	return out, nil
}

// ===== helpers =====

func buildVehicleResponse(v *Vehicle) VehicleResponse {
	return VehicleResponse{
		VehicleID:     v.VehicleID,
		Brand:         v.Brand,
		Model:         v.Model,
		Year:          v.Year,
		VIN:           nullToPtr(v.VIN),
		PurchasePrice: v.PurchasePrice,
		Description:   nullToPtr(v.Description),
		Status:        v.Status,
		CreatedAt:     v.CreatedAt,
	}
}

func buildExpenseResponse(e *Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		VehicleID:   e.VehicleID,
		Date:        e.SpentOn.Format(dateLayout),
		Amount:      e.Amount,
		Category:    e.Category,
		Description: nullToPtr(e.Description),
	}
}

func toNullString(s *string) (ns sql.NullString) {
	if s == nil {
		return
	}
	if v := strings.TrimSpace(*s); v != "" {
		ns.Valid, ns.String = true, v
	}
	return
}

func nullToPtr(ns sql.NullString) *string {
	if ns.Valid {
		v := ns.String
		return &v
	}
	return nil
}
