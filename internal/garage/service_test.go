package garage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"GMS-backend/internal/platform/apperr"
)

type fakeStore struct {
	vehicles map[int64]*Vehicle
	expenses map[int64][]Expense
	rentals  map[int64][]RentalSummary
	payments map[int64]decimal.Decimal
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		vehicles: map[int64]*Vehicle{},
		expenses: map[int64][]Expense{},
		rentals:  map[int64][]RentalSummary{},
		payments: map[int64]decimal.Decimal{},
		nextID:   1,
	}
}

func (f *fakeStore) InsertVehicle(_ context.Context, v *Vehicle) error {
	v.VehicleID = f.nextID
	f.nextID++
	f.vehicles[v.VehicleID] = v
	return nil
}

func (f *fakeStore) GetVehicleByID(_ context.Context, id int64) (*Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return v, nil
}

func (f *fakeStore) ListVehicles(_ context.Context, fl VehicleFilter) ([]Vehicle, error) {
	var out []Vehicle
	for _, v := range f.vehicles {
		if fl.Status != nil && v.Status != *fl.Status {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeStore) InsertExpense(_ context.Context, e *Expense) error {
	e.ExpenseID = f.nextID
	f.nextID++
	f.expenses[e.VehicleID] = append(f.expenses[e.VehicleID], *e)
	return nil
}

func (f *fakeStore) ListExpensesByVehicle(_ context.Context, vehicleID int64) ([]Expense, error) {
	return f.expenses[vehicleID], nil
}

func (f *fakeStore) SumExpensesByVehicle(_ context.Context, vehicleID int64) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range f.expenses[vehicleID] {
		sum = sum.Add(e.Amount)
	}
	return sum, nil
}

func (f *fakeStore) ListRentalsByVehicle(_ context.Context, vehicleID int64) ([]RentalSummary, error) {
	return f.rentals[vehicleID], nil
}

func (f *fakeStore) SumPaymentsByVehicle(_ context.Context, vehicleID int64) (decimal.Decimal, error) {
	return f.payments[vehicleID], nil
}

func TestCreateVehicle(t *testing.T) {
	svc := NewServiceWithStore(newFakeStore())

	res, err := svc.CreateVehicle(context.Background(), CreateVehicleRequest{
		Brand: " Toyota ", Model: "Corolla", Year: 2018,
	})
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}
	if res.Brand != "Toyota" {
		t.Fatalf("brand = %q, want trimmed Toyota", res.Brand)
	}
	if res.Status != StatusActive {
		t.Fatalf("status = %s, want %s", res.Status, StatusActive)
	}
	if !res.PurchasePrice.Equal(decimal.Zero) {
		t.Fatalf("purchase_price = %s, want 0", res.PurchasePrice)
	}
}

func TestCreateVehicleTrimsOptionalFields(t *testing.T) {
	svc := NewServiceWithStore(newFakeStore())
	vin := "  JT2AE92E5H0212223  "

	res, err := svc.CreateVehicle(context.Background(), CreateVehicleRequest{
		Brand: "Toyota", Model: "Corolla", Year: 2018, VIN: &vin,
	})
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}
	if res.VIN == nil || *res.VIN != "JT2AE92E5H0212223" {
		t.Fatalf("vin = %v, want trimmed JT2AE92E5H0212223", res.VIN)
	}
}

func TestCreateVehicleValidation(t *testing.T) {
	svc := NewServiceWithStore(newFakeStore())
	negative := decimal.NewFromInt(-1)

	cases := []struct {
		name string
		req  CreateVehicleRequest
	}{
		{"missing brand", CreateVehicleRequest{Model: "Corolla", Year: 2018}},
		{"missing model", CreateVehicleRequest{Brand: "Toyota", Year: 2018}},
		{"year too old", CreateVehicleRequest{Brand: "Toyota", Model: "Corolla", Year: 1800}},
		{"year in far future", CreateVehicleRequest{Brand: "Toyota", Model: "Corolla", Year: time.Now().Year() + 5}},
		{"negative price", CreateVehicleRequest{Brand: "Toyota", Model: "Corolla", Year: 2018, PurchasePrice: &negative}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.CreateVehicle(context.Background(), c.req)
			var api *apperr.APIError
			if !errors.As(err, &api) || api.Code != apperr.CodeInvalidArgument {
				t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
			}
		})
	}
}

func TestGetVehicleTotals(t *testing.T) {
	store := newFakeStore()
	svc := NewServiceWithStore(store)

	res, err := svc.CreateVehicle(context.Background(), CreateVehicleRequest{
		Brand: "Honda", Model: "Civic", Year: 2015,
	})
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}

	for _, amount := range []int64{150, 250} {
		_, err := svc.AddExpense(context.Background(), res.VehicleID, CreateExpenseRequest{
			Date: "2024-02-01", Amount: decimal.NewFromInt(amount), Category: "repair",
		})
		if err != nil {
			t.Fatalf("AddExpense: %v", err)
		}
	}
	store.payments[res.VehicleID] = decimal.NewFromInt(900)

	detail, err := svc.GetVehicle(context.Background(), res.VehicleID)
	if err != nil {
		t.Fatalf("GetVehicle: %v", err)
	}
	if want := decimal.NewFromInt(400); !detail.TotalExpenses.Equal(want) {
		t.Fatalf("total expenses = %s, want %s", detail.TotalExpenses, want)
	}
	if want := decimal.NewFromInt(900); !detail.TotalIncome.Equal(want) {
		t.Fatalf("total income = %s, want %s", detail.TotalIncome, want)
	}
	if len(detail.Expenses) != 2 {
		t.Fatalf("expenses = %d, want 2", len(detail.Expenses))
	}
}

func TestGetVehicleNotFound(t *testing.T) {
	svc := NewServiceWithStore(newFakeStore())
	_, err := svc.GetVehicle(context.Background(), 999)
	var api *apperr.APIError
	if !errors.As(err, &api) || api.Code != apperr.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestAddExpenseValidation(t *testing.T) {
	store := newFakeStore()
	svc := NewServiceWithStore(store)
	res, err := svc.CreateVehicle(context.Background(), CreateVehicleRequest{
		Brand: "Mazda", Model: "3", Year: 2020,
	})
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}

	_, err = svc.AddExpense(context.Background(), res.VehicleID, CreateExpenseRequest{
		Date: "2024/02/01", Amount: decimal.NewFromInt(10), Category: "repair",
	})
	var api *apperr.APIError
	if !errors.As(err, &api) || api.Code != apperr.CodeInvalidArgument {
		t.Fatalf("expected INVALID_ARGUMENT for bad date, got %v", err)
	}

	_, err = svc.AddExpense(context.Background(), 999, CreateExpenseRequest{
		Date: "2024-02-01", Amount: decimal.NewFromInt(10), Category: "repair",
	})
	if !errors.As(err, &api) || api.Code != apperr.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for unknown vehicle, got %v", err)
	}
}
