package rental

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"GMS-backend/internal/platform/apperr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/clients", h.CreateClient)
	r.GET("/clients", h.ListClients)

	r.POST("/rentals", h.CreateRental)
	r.GET("/rentals", h.ListRentals)
	// :rental_key は数値ID or ULID
	r.GET("/rentals/:rental_key", h.GetRental)
	r.POST("/rentals/:rental_key/complete", h.CompleteRental)
	r.POST("/rentals/:rental_key/cancel", h.CancelRental)
	r.POST("/rentals/:rental_key/payments", h.AddPayment)
	r.GET("/rentals/:rental_key/payments", h.ListPayments)

	r.GET("/vehicles/:vehicle_id/availability", h.CheckAvailability)
}

func (h *Handler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.CreateClient(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListClients(c *gin.Context) {
	res, err := h.svc.ListClients(c.Request.Context())
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func (h *Handler) CreateRental(c *gin.Context) {
	var req CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.CreateRental(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.Header("Location", "/rentals/"+res.RentalULID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListRentals(c *gin.Context) {
	var f RentalFilter
	if v := c.Query("status"); v != "" {
		f.Status = &v
	}
	if v := c.Query("vehicle_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "vehicle_id must be a number"))
			return
		}
		f.VehicleID = &id
	}
	if v := c.Query("client_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "client_id must be a number"))
			return
		}
		f.ClientID = &id
	}
	res, err := h.svc.ListRentals(c.Request.Context(), f)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func (h *Handler) GetRental(c *gin.Context) {
	res, err := h.svc.GetRentalByKey(c.Request.Context(), c.Param("rental_key"))
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) CompleteRental(c *gin.Context) {
	res, err := h.svc.CompleteRental(c.Request.Context(), c.Param("rental_key"))
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) CancelRental(c *gin.Context) {
	res, err := h.svc.CancelRental(c.Request.Context(), c.Param("rental_key"))
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) AddPayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.AddPayment(c.Request.Context(), c.Param("rental_key"), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListPayments(c *gin.Context) {
	res, err := h.svc.ListPayments(c.Request.Context(), c.Param("rental_key"))
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("vehicle_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "vehicle_id must be a number"))
		return
	}
	res, err := h.svc.CheckAvailability(c.Request.Context(), id, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
