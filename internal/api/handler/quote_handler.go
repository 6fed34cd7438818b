package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jake-esse/ai-broker/internal/api/metrics"
	"github.com/jake-esse/ai-broker/internal/core/ports"
)

// QuoteHandler handles HTTP requests for quote operations.
type QuoteHandler struct {
	service ports.QuoteService
}

func NewQuoteHandler(service ports.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// Generate handles POST /v1/loads/:load_number/quote.
//
// @Summary      Price a ready load and send the quote
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        load_number  path      string  true  "Load number"
// @Success      201          {object}  domain.Quote
// @Failure      404          {object}  map[string]string
// @Failure      422          {object}  map[string]string
// @Router       /v1/loads/{load_number}/quote [post]
func (h *QuoteHandler) Generate(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	quote, err := h.service.GenerateQuote(c.Request().Context(), c.Param("load_number"))
	if err != nil {
		return err
	}

	metrics.QuotesGeneratedTotal.WithLabelValues(quote.MarketCondition).Inc()
	return c.JSON(http.StatusCreated, quote)
}

// Get handles GET /v1/quotes/:id.
//
// @Summary      Get a quote by ID
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  domain.Quote
// @Failure      404  {object}  map[string]string
// @Router       /v1/quotes/{id} [get]
func (h *QuoteHandler) Get(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	quote, err := h.service.GetQuote(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quote)
}
