package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jake-esse/ai-broker/internal/core/ports"
)

// CarrierHandler handles HTTP requests for carrier matching.
type CarrierHandler struct {
	matcher ports.CarrierMatcher
}

func NewCarrierHandler(matcher ports.CarrierMatcher) *CarrierHandler {
	return &CarrierHandler{matcher: matcher}
}

type carrierMatchResponse struct {
	LoadNumber string               `json:"load_number"`
	Matches    []ports.CarrierScore `json:"matches"`
}

// Match handles GET /v1/loads/:load_number/carriers.
//
// @Summary      Rank carriers for a load
// @Tags         carriers
// @Produce      json
// @Security     BearerAuth
// @Param        load_number  path      string  true  "Load number"
// @Success      200          {object}  carrierMatchResponse
// @Failure      404          {object}  map[string]string
// @Router       /v1/loads/{load_number}/carriers [get]
func (h *CarrierHandler) Match(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	loadNumber := c.Param("load_number")
	matches, err := h.matcher.MatchCarriers(c.Request().Context(), loadNumber)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, carrierMatchResponse{
		LoadNumber: loadNumber,
		Matches:    matches,
	})
}
