package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid argument", Invalid("bad input"), http.StatusBadRequest},
		{"not found", NotFound("no row"), http.StatusNotFound},
		{"conflict", Conflict("dup"), http.StatusConflict},
		{"insufficient stock", InsufficientStock(), http.StatusConflict},
		{"internal", Internal("boom"), http.StatusInternalServerError},
		{"plain error", errors.New("db gone"), http.StatusInternalServerError},
		{"wrapped api error", fmt.Errorf("ctx: %w", NotFound("no row")), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHTTPStatus(tt.err); got != tt.want {
				t.Fatalf("ToHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFromErr(t *testing.T) {
	body := FromErr(Conflict("vin already exists"))
	if body.Error.Code != CodeConflict || body.Error.Message != "vin already exists" {
		t.Fatalf("unexpected body: %+v", body)
	}

	// 想定外エラーは内部事情を漏らさない
	body = FromErr(errors.New("dial tcp: connection refused"))
	if body.Error.Code != CodeInternal {
		t.Fatalf("expected INTERNAL, got %s", body.Error.Code)
	}
	if body.Error.Message != "internal error" {
		t.Fatalf("internal detail leaked: %q", body.Error.Message)
	}
}
