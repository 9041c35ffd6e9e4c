package dismantle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"GMS-backend/internal/parts"
	"GMS-backend/internal/platform/apperr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/disassembly", h.CreateRecord)
	r.GET("/disassembly", h.ListRecords)
	r.GET("/disassembly/:record_id", h.GetRecord)
	r.POST("/disassembly/:record_id/parts", h.AddPart)
	r.GET("/disassembly/:record_id/parts", h.ListParts)
}

func (h *Handler) CreateRecord(c *gin.Context) {
	var req CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.CreateRecord(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.Header("Location", "/disassembly/"+strconv.FormatInt(res.RecordID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListRecords(c *gin.Context) {
	res, err := h.svc.ListRecords(c.Request.Context())
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func (h *Handler) GetRecord(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	res, err := h.svc.GetRecord(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) AddPart(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	var req parts.CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.AddPart(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListParts(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	res, err := h.svc.ListParts(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func recordID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("record_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "record_id must be a number"))
		return 0, false
	}
	return id, true
}
