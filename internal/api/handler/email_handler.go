package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jake-esse/ai-broker/internal/core/freight"
	"github.com/jake-esse/ai-broker/internal/core/ports"
)

// Enqueuer decouples the handler from the dispatcher implementation.
type Enqueuer interface {
	Enqueue(email ports.InboundEmailInput)
	EnqueueBatch(emails []ports.InboundEmailInput)
}

// EmailHandler receives inbound email webhooks from the mail provider and
// hands them to the intake worker pool. Responses are always 202: processing
// is asynchronous and retries are absorbed by Message-ID deduplication.
type EmailHandler struct {
	queue Enqueuer
}

func NewEmailHandler(queue Enqueuer) *EmailHandler {
	return &EmailHandler{queue: queue}
}

// inboundEmailRequest is one email from the provider webhook. ExtractedData
// holds the structured fields the upstream extraction step pulled from the
// message body; the wire shape is freight.LoadData's JSON form.
type inboundEmailRequest struct {
	MessageID     string           `json:"message_id" validate:"required"`
	ThreadID      string           `json:"thread_id"`
	From          string           `json:"from"       validate:"required,email"`
	Subject       string           `json:"subject"`
	Body          string           `json:"body"`
	ReceivedAt    string           `json:"received_at"`
	ExtractedData freight.LoadData `json:"extracted_data"`
}

type inboundEmailResponse struct {
	Accepted int `json:"accepted"`
}

func (r inboundEmailRequest) toInput() ports.InboundEmailInput {
	received, _ := time.Parse(time.RFC3339, r.ReceivedAt)
	return ports.InboundEmailInput{
		MessageID:  r.MessageID,
		ThreadID:   r.ThreadID,
		From:       r.From,
		Subject:    r.Subject,
		Body:       r.Body,
		ReceivedAt: received,
		Extracted:  r.ExtractedData,
	}
}

// Inbound handles POST /v1/emails/inbound.
//
// @Summary      Ingest one inbound email
// @Tags         emails
// @Accept       json
// @Produce      json
// @Param        body  body      inboundEmailRequest  true  "Inbound email"
// @Success      202   {object}  inboundEmailResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/emails/inbound [post]
func (h *EmailHandler) Inbound(c echo.Context) error {
	var req inboundEmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	h.queue.Enqueue(req.toInput())
	return c.JSON(http.StatusAccepted, inboundEmailResponse{Accepted: 1})
}

// InboundBatch handles POST /v1/emails/inbound/batch.
//
// @Summary      Ingest a batch of inbound emails
// @Tags         emails
// @Accept       json
// @Produce      json
// @Param        body  body      []inboundEmailRequest  true  "Inbound emails"
// @Success      202   {object}  inboundEmailResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/emails/inbound/batch [post]
func (h *EmailHandler) InboundBatch(c echo.Context) error {
	var reqs []inboundEmailRequest
	if err := c.Bind(&reqs); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if len(reqs) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "empty batch"})
	}

	inputs := make([]ports.InboundEmailInput, 0, len(reqs))
	for i := range reqs {
		if err := c.Validate(&reqs[i]); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		inputs = append(inputs, reqs[i].toInput())
	}

	h.queue.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, inboundEmailResponse{Accepted: len(inputs)})
}
