package rental

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"GMS-backend/internal/platform/apperr"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, NewServiceWithStore(newFakeStore()))
	return r
}

func TestListRentalsRejectsBadFilters(t *testing.T) {
	r := newTestRouter()

	for _, q := range []string{"vehicle_id=abc", "vehicle_id=0", "client_id=xyz", "client_id=-3"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/rentals?"+q, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", q, w.Code)
		}
		var body apperr.ErrorDTO
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: %v", q, err)
		}
		if body.Error.Code != apperr.CodeInvalidArgument {
			t.Fatalf("%s: code = %s, want %s", q, body.Error.Code, apperr.CodeInvalidArgument)
		}
	}
}

func TestListRentalsAcceptsValidFilters(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rentals?vehicle_id=3&client_id=7", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
