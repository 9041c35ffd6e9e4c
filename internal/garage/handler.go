package garage

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"GMS-backend/internal/platform/apperr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/vehicles", h.CreateVehicle)
	r.GET("/vehicles", h.ListVehicles)
	r.GET("/vehicles/:vehicle_id", h.GetVehicle)

	r.POST("/vehicles/:vehicle_id/expenses", h.AddExpense)
	r.GET("/vehicles/:vehicle_id/expenses", h.ListExpenses)
	r.GET("/vehicles/:vehicle_id/rentals", h.ListVehicleRentals)
}

func (h *Handler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.Header("Location", "/vehicles/"+strconv.FormatInt(res.VehicleID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListVehicles(c *gin.Context) {
	var f VehicleFilter
	if v := c.Query("status"); v != "" {
		f.Status = &v
	}
	res, err := h.svc.ListVehicles(c.Request.Context(), f)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func (h *Handler) GetVehicle(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}
	res, err := h.svc.GetVehicle(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) AddExpense(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.AddExpense(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListExpenses(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}
	res, err := h.svc.ListExpenses(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func (h *Handler) ListVehicleRentals(c *gin.Context) {
	id, ok := vehicleID(c)
	if !ok {
		return
	}
	res, err := h.svc.ListVehicleRentals(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func vehicleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("vehicle_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "vehicle_id must be a number"))
		return 0, false
	}
	return id, true
}
