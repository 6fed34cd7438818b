package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jake-esse/ai-broker/internal/core/domain"
	"github.com/jake-esse/ai-broker/internal/core/freight"
	"github.com/jake-esse/ai-broker/internal/core/ports"
)

// LoadHandler handles HTTP requests for load operations.
type LoadHandler struct {
	service ports.LoadService
}

func NewLoadHandler(service ports.LoadService) *LoadHandler {
	return &LoadHandler{service: service}
}

type createLoadRequest struct {
	ShipperEmail string           `json:"shipper_email" validate:"required,email"`
	ThreadID     string           `json:"thread_id"`
	Data         freight.LoadData `json:"data"`
}

type createLoadResponse struct {
	LoadID        string   `json:"load_id"`
	LoadNumber    string   `json:"load_number"`
	Status        string   `json:"status"`
	FreightType   string   `json:"freight_type"`
	Description   string   `json:"description"`
	IsComplete    bool     `json:"is_complete"`
	MissingFields []string `json:"missing_fields"`
	Warnings      []string `json:"warnings,omitempty"`
}

type listLoadsResponse struct {
	Items      []*domain.Load `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// Create handles POST /v1/loads, a load tender entered through the dashboard.
//
// @Summary      Create a load
// @Tags         loads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLoadRequest  true  "Load tender"
// @Success      201   {object}  createLoadResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/loads [post]
func (h *LoadHandler) Create(c echo.Context) error {
	var req createLoadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.service.CreateLoad(c.Request().Context(), ports.CreateLoadInput{
		ShipperEmail: req.ShipperEmail,
		ThreadID:     req.ThreadID,
		Data:         req.Data,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createLoadResponse{
		LoadID:        result.LoadID,
		LoadNumber:    result.LoadNumber,
		Status:        result.Status,
		FreightType:   string(result.FreightType),
		Description:   result.FreightType.Description(),
		IsComplete:    result.IsComplete,
		MissingFields: result.MissingFields,
		Warnings:      result.Warnings,
	})
}

// Get handles GET /v1/loads/:load_number.
//
// @Summary      Get a load by load number
// @Tags         loads
// @Produce      json
// @Security     BearerAuth
// @Param        load_number  path      string  true  "Load number (e.g. LD-7A8B9C2D)"
// @Success      200          {object}  domain.Load
// @Failure      403          {object}  map[string]string
// @Failure      404          {object}  map[string]string
// @Router       /v1/loads/{load_number} [get]
func (h *LoadHandler) Get(c echo.Context) error {
	role, brokerID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	load, err := h.service.GetLoad(c.Request().Context(), ports.GetLoadInput{
		LoadNumber: c.Param("load_number"),
		Role:       role,
		BrokerID:   brokerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, load)
}

// List handles GET /v1/loads with filtering and pagination.
//
// @Summary      List loads
// @Tags         loads
// @Produce      json
// @Security     BearerAuth
// @Param        status        query     string  false  "Filter by load status"
// @Param        freight_type  query     string  false  "Filter by freight type"
// @Param        search        query     string  false  "Partial match on load number or shipper email"
// @Param        date_from     query     string  false  "Created on or after (YYYY-MM-DD)"
// @Param        date_to       query     string  false  "Created on or before (YYYY-MM-DD)"
// @Param        page          query     int     false  "Page number (1-based)"
// @Param        limit         query     int     false  "Page size (max 100)"
// @Success      200           {object}  listLoadsResponse
// @Failure      401           {object}  map[string]string
// @Router       /v1/loads [get]
func (h *LoadHandler) List(c echo.Context) error {
	role, brokerID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListLoads(c.Request().Context(), ports.ListLoadsInput{
		Role:        role,
		BrokerID:    brokerID,
		Status:      c.QueryParam("status"),
		FreightType: c.QueryParam("freight_type"),
		Search:      c.QueryParam("search"),
		DateFrom:    c.QueryParam("date_from"),
		DateTo:      c.QueryParam("date_to"),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listLoadsResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}
