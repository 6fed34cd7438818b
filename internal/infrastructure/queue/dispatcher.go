package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/jake-esse/ai-broker/internal/api/metrics"
	"github.com/jake-esse/ai-broker/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes inbound emails to a fixed set of workers using consistent
// hashing on the thread ID, so all messages on one conversation are processed
// in order and clarification merges never race each other.
type Dispatcher struct {
	workers []chan ports.InboundEmailInput
	service ports.IntakeService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.IntakeService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.InboundEmailInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.InboundEmailInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an email to the worker responsible for its conversation.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(email ports.InboundEmailInput) {
	i := d.shardIndex(shardKey(email))
	d.workers[i] <- email
	metrics.IntakeQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple emails preserving per-conversation ordering.
func (d *Dispatcher) EnqueueBatch(emails []ports.InboundEmailInput) {
	for _, e := range emails {
		d.Enqueue(e)
	}
}

// shardKey picks the ordering key: the thread when one exists, otherwise the
// message itself.
func shardKey(email ports.InboundEmailInput) string {
	if email.ThreadID != "" {
		return email.ThreadID
	}
	return email.MessageID
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.InboundEmailInput) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case email, ok := <-ch:
			if !ok {
				return
			}
			d.process(ctx, id, email)
			metrics.IntakeQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, email ports.InboundEmailInput) {
	start := time.Now()
	res, err := d.service.ProcessEmail(ctx, email)
	if err != nil {
		metrics.EmailsErrorsTotal.WithLabelValues("intake_failed").Inc()
		metrics.EmailProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		d.log.Error().Err(err).
			Str("message_id", email.MessageID).
			Int("worker_id", id).
			Msg("email processing failed")
		return
	}

	metrics.EmailsProcessedTotal.WithLabelValues(string(res.Intent), res.Action).Inc()
	metrics.EmailProcessingDuration.WithLabelValues(res.Action).Observe(time.Since(start).Seconds())

	switch res.Action {
	case ports.IntakeActionDuplicate:
		metrics.EmailsDedupTotal.WithLabelValues("hit").Inc()
		return
	default:
		metrics.EmailsDedupTotal.WithLabelValues("miss").Inc()
	}

	switch res.Action {
	case ports.IntakeActionCreated, ports.IntakeActionCompleted:
		metrics.LoadsClassifiedTotal.WithLabelValues(string(res.FreightType)).Inc()
	case ports.IntakeActionClarification:
		metrics.LoadsClassifiedTotal.WithLabelValues(string(res.FreightType)).Inc()
		metrics.ClarificationsRequestedTotal.Inc()
	}
}
