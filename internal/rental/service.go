package rental

import (
	"context"
	"crypto/rand"
	"database/sql"
	"strconv"
	"strings"
	"time"

	ulid "github.com/oklog/ulid/v2"

	"GMS-backend/internal/platform/apperr"
)

const dateLayout = "2006-01-02"

// ---- Clock & ID ----

type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type IDGen interface{ NewULID(t time.Time) string }
type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// ---- Service ----

type Service struct {
	store Store
	clock Clock
	id    IDGen
}

func NewService(conn *sql.DB) *Service {
	return &Service{store: NewStore(conn), clock: realClock{}, id: ulidGen{}}
}

func NewServiceWithStore(store Store) *Service {
	return &Service{store: store, clock: realClock{}, id: ulidGen{}}
}

// ===== Clients =====

func (s *Service) CreateClient(ctx context.Context, in CreateClientRequest) (ClientResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return ClientResponse{}, apperr.Invalid("name is required")
	}
	c := &Client{
		Name:  strings.TrimSpace(in.Name),
		Phone: toNullString(in.Phone),
		Email: toNullString(in.Email),
	}
	if err := s.store.InsertClient(ctx, c); err != nil {
		return ClientResponse{}, err
	}
	return buildClientResponse(c), nil
}

func (s *Service) ListClients(ctx context.Context) ([]ClientResponse, error) {
	items, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ClientResponse, 0, len(items))
	for i := range items {
		out = append(out, buildClientResponse(&items[i]))
	}
	return out, nil
}

// ===== Rentals =====

func (s *Service) CreateRental(ctx context.Context, in CreateRentalRequest) (RentalResponse, error) {
	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return RentalResponse{}, apperr.Invalid("invalid start_date format, expected YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return RentalResponse{}, apperr.Invalid("invalid end_date format, expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return RentalResponse{}, apperr.Invalid("end_date must not be before start_date")
	}
	if !in.DailyRate.IsPositive() {
		return RentalResponse{}, apperr.Invalid("daily_rate must be > 0")
	}

	r := &Rental{
		RentalULID:  s.id.NewULID(s.clock.Now()),
		VehicleID:   in.VehicleID,
		ClientID:    in.ClientID,
		StartDate:   start,
		EndDate:     end,
		DailyRate:   in.DailyRate,
		TotalAmount: ContractTotal(in.DailyRate, start, end),
		Status:      StatusActive,
	}
	if err := s.store.CreateRental(ctx, r); err != nil {
		return RentalResponse{}, err
	}
	return buildRentalResponse(r), nil
}

// キーは数値なら rental_id、それ以外は rental_ulid とみなす
func (s *Service) GetRentalByKey(ctx context.Context, key string) (RentalResponse, error) {
	r, err := s.resolveRental(ctx, key)
	if err != nil {
		return RentalResponse{}, err
	}
	return buildRentalResponse(r), nil
}

func (s *Service) ListRentals(ctx context.Context, f RentalFilter) ([]RentalResponse, error) {
	items, err := s.store.ListRentals(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]RentalResponse, 0, len(items))
	for i := range items {
		out = append(out, buildRentalResponse(&items[i]))
	}
	return out, nil
}

func (s *Service) CompleteRental(ctx context.Context, key string) (RentalResponse, error) {
	return s.transition(ctx, key, StatusCompleted)
}

func (s *Service) CancelRental(ctx context.Context, key string) (RentalResponse, error) {
	return s.transition(ctx, key, StatusCancelled)
}

func (s *Service) transition(ctx context.Context, key, to string) (RentalResponse, error) {
	r, err := s.resolveRental(ctx, key)
	if err != nil {
		return RentalResponse{}, err
	}
	updated, err := s.store.TransitionRental(ctx, r.RentalID, to)
	if err != nil {
		return RentalResponse{}, err
	}
	return buildRentalResponse(updated), nil
}

// ===== Payments =====

func (s *Service) AddPayment(ctx context.Context, key string, in CreatePaymentRequest) (PaymentResponse, error) {
	paidOn, err := time.Parse(dateLayout, in.PaymentDate)
	if err != nil {
		return PaymentResponse{}, apperr.Invalid("invalid payment_date format, expected YYYY-MM-DD")
	}
	if !in.Amount.IsPositive() {
		return PaymentResponse{}, apperr.Invalid("amount must be > 0")
	}

	r, err := s.resolveRental(ctx, key)
	if err != nil {
		return PaymentResponse{}, err
	}

	p := &Payment{
		RentalID:    r.RentalID,
		Amount:      in.Amount,
		PaidOn:      paidOn,
		Description: toNullString(in.Description),
	}
	if err := s.store.InsertPayment(ctx, p); err != nil {
		return PaymentResponse{}, err
	}
	return buildPaymentResponse(p), nil
}

func (s *Service) ListPayments(ctx context.Context, key string) ([]PaymentResponse, error) {
	r, err := s.resolveRental(ctx, key)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListPaymentsByRental(ctx, r.RentalID)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentResponse, 0, len(items))
	for i := range items {
		out = append(out, buildPaymentResponse(&items[i]))
	}
	return out, nil
}

// ===== Availability =====

// CheckAvailability は日付入力の不備を available=false として返す（HTTPエラーにしない）。
// 車両が存在しない場合のみ NOT_FOUND。
func (s *Service) CheckAvailability(ctx context.Context, vehicleID int64, startStr, endStr string) (AvailabilityResponse, error) {
	if _, err := s.store.GetVehicleStatus(ctx, vehicleID); err != nil {
		return AvailabilityResponse{}, err
	}

	if startStr == "" || endStr == "" {
		return AvailabilityResponse{Available: false, Message: "start_date and end_date are required"}, nil
	}
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return AvailabilityResponse{Available: false, Message: "invalid start_date format, expected YYYY-MM-DD"}, nil
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return AvailabilityResponse{Available: false, Message: "invalid end_date format, expected YYYY-MM-DD"}, nil
	}
	if end.Before(start) {
		return AvailabilityResponse{Available: false, Message: "end_date must not be before start_date"}, nil
	}

	active, err := s.store.ListActiveRentalsByVehicle(ctx, vehicleID)
	if err != nil {
		return AvailabilityResponse{}, err
	}
	for _, r := range active {
		if Overlaps(r.StartDate, r.EndDate, start, end) {
			return AvailabilityResponse{Available: false, Message: "vehicle is already rented for the requested dates"}, nil
		}
	}
	return AvailabilityResponse{Available: true, Message: "vehicle is available"}, nil
}

// ===== helpers =====

func (s *Service) resolveRental(ctx context.Context, key string) (*Rental, error) {
	if key == "" {
		return nil, apperr.Invalid("rental id or ulid is required")
	}
	if id, err := strconv.ParseInt(key, 10, 64); err == nil && id > 0 {
		return s.store.GetRentalByID(ctx, id)
	}
	return s.store.GetRentalByULID(ctx, key)
}

func buildClientResponse(c *Client) ClientResponse {
	return ClientResponse{
		ClientID:  c.ClientID,
		Name:      c.Name,
		Phone:     nullToPtr(c.Phone),
		Email:     nullToPtr(c.Email),
		CreatedAt: c.CreatedAt,
	}
}

func buildRentalResponse(r *Rental) RentalResponse {
	return RentalResponse{
		RentalID:    r.RentalID,
		RentalULID:  r.RentalULID,
		VehicleID:   r.VehicleID,
		ClientID:    r.ClientID,
		StartDate:   r.StartDate.Format(dateLayout),
		EndDate:     r.EndDate.Format(dateLayout),
		DailyRate:   r.DailyRate,
		TotalAmount: r.TotalAmount,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

func buildPaymentResponse(p *Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		RentalID:    p.RentalID,
		Amount:      p.Amount,
		PaymentDate: p.PaidOn.Format(dateLayout),
		Description: nullToPtr(p.Description),
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
