package parts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"GMS-backend/internal/platform/apperr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/suppliers", h.CreateSupplier)
	r.GET("/suppliers", h.ListSuppliers)

	r.POST("/parts", h.CreatePart)
	r.GET("/parts", h.ListParts)
	r.GET("/parts/:part_id", h.GetPart)
	r.POST("/parts/:part_id/sales", h.SellPart)

	r.GET("/sales", h.ListSales)
}

func (h *Handler) CreateSupplier(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListSuppliers(c *gin.Context) {
	res, err := h.svc.ListSuppliers(c.Request.Context())
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func (h *Handler) CreatePart(c *gin.Context) {
	var req CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.CreatePart(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.Header("Location", "/parts/"+strconv.FormatInt(res.PartID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) GetPart(c *gin.Context) {
	id, ok := partID(c)
	if !ok {
		return
	}
	res, err := h.svc.GetPart(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListParts(c *gin.Context) {
	var f PartFilter
	f.Search = c.Query("search")
	if v := c.Query("supplier_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "supplier_id must be a number"))
			return
		}
		f.SupplierID = &id
	}
	res, err := h.svc.ListParts(c.Request.Context(), f)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func (h *Handler) SellPart(c *gin.Context) {
	id, ok := partID(c)
	if !ok {
		return
	}
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.SellPart(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListSales(c *gin.Context) {
	res, err := h.svc.ListSales(c.Request.Context())
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func partID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("part_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "part_id must be a number"))
		return 0, false
	}
	return id, true
}
