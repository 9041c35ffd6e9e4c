package dismantle

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"GMS-backend/internal/parts"
	"GMS-backend/internal/platform/apperr"
)

const dateLayout = "2006-01-02"

type Service struct {
	store    Store
	partsSvc *parts.Service
}

func NewService(conn *sql.DB, partsSvc *parts.Service) *Service {
	return &Service{store: NewStore(conn), partsSvc: partsSvc}
}

func NewServiceWithStore(store Store, partsSvc *parts.Service) *Service {
	return &Service{store: store, partsSvc: partsSvc}
}

func (s *Service) CreateRecord(ctx context.Context, in CreateRecordRequest) (RecordResponse, error) {
	if strings.TrimSpace(in.CarBrand) == "" || strings.TrimSpace(in.CarModel) == "" {
		return RecordResponse{}, apperr.Invalid("car_brand and car_model are required")
	}
	if in.CarYear < 1900 || in.CarYear > time.Now().Year()+1 {
		return RecordResponse{}, apperr.Invalid("car_year is out of range")
	}
	dismantledOn, err := time.Parse(dateLayout, in.DisassemblyDate)
	if err != nil {
		return RecordResponse{}, apperr.Invalid("invalid disassembly_date format, expected YYYY-MM-DD")
	}

	rec := &DisassemblyRecord{
		VehicleID:    toNullInt64(in.VehicleID),
		CarBrand:     strings.TrimSpace(in.CarBrand),
		CarModel:     strings.TrimSpace(in.CarModel),
		CarYear:      in.CarYear,
		VIN:          toNullString(in.VIN),
		Description:  toNullString(in.Description),
		DismantledOn: dismantledOn,
	}
	if err := s.store.CreateRecord(ctx, rec); err != nil {
		return RecordResponse{}, err
	}
	return buildRecordResponse(rec), nil
}

func (s *Service) GetRecord(ctx context.Context, id int64) (RecordResponse, error) {
	rec, err := s.store.GetRecordByID(ctx, id)
	if err != nil {
		return RecordResponse{}, err
	}
	return buildRecordResponse(rec), nil
}

func (s *Service) ListRecords(ctx context.Context) ([]RecordResponse, error) {
	items, err := s.store.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RecordResponse, 0, len(items))
	for i := range items {
		out = append(out, buildRecordResponse(&items[i]))
	}
	return out, nil
}

// AddPart は解体記録から取り外した部品を在庫へ登録する。
// 実体の登録は parts 側に委譲し、ここでは記録の存在確認と紐付けだけ行う。
func (s *Service) AddPart(ctx context.Context, recordID int64, in parts.CreatePartRequest) (parts.PartResponse, error) {
	if _, err := s.store.GetRecordByID(ctx, recordID); err != nil {
		return parts.PartResponse{}, err
	}
	in.DisassemblyRecordID = &recordID
	return s.partsSvc.CreatePart(ctx, in)
}

func (s *Service) ListParts(ctx context.Context, recordID int64) ([]parts.PartResponse, error) {
	if _, err := s.store.GetRecordByID(ctx, recordID); err != nil {
		return nil, err
	}
	return s.partsSvc.ListParts(ctx, parts.PartFilter{DisassemblyRecordID: &recordID})
}

// ===== helpers =====

func buildRecordResponse(r *DisassemblyRecord) RecordResponse {
	resp := RecordResponse{
		RecordID:        r.RecordID,
		CarBrand:        r.CarBrand,
		CarModel:        r.CarModel,
		CarYear:         r.CarYear,
		VIN:             nullToPtr(r.VIN),
		Description:     nullToPtr(r.Description),
		DisassemblyDate: r.DismantledOn.Format(dateLayout),
		CreatedAt:       r.CreatedAt,
	}
	if r.VehicleID.Valid {
		v := r.VehicleID.Int64
		resp.VehicleID = &v
	}
	return resp
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

func toNullInt64(v *int64) (ni sql.NullInt64) {
	if v != nil && *v > 0 {
		ni.Valid, ni.Int64 = true, *v
	}
	return
}
