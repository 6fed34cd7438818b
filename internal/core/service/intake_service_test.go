package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jake-esse/ai-broker/internal/core/domain"
	"github.com/jake-esse/ai-broker/internal/core/freight"
	"github.com/jake-esse/ai-broker/internal/core/intent"
	"github.com/jake-esse/ai-broker/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubLoadRepo struct {
	byNumber  map[string]*domain.Load
	byThread  map[string]*domain.Load
	byShipper map[string]*domain.Load
	created   []*domain.Load
	updated   []*domain.Load
	createErr error
	updateErr error
}

func newStubLoadRepo() *stubLoadRepo {
	return &stubLoadRepo{
		byNumber:  make(map[string]*domain.Load),
		byThread:  make(map[string]*domain.Load),
		byShipper: make(map[string]*domain.Load),
	}
}

func (r *stubLoadRepo) seed(l *domain.Load) {
	r.byNumber[l.LoadNumber] = l
	if l.ThreadID != "" && !l.IsComplete {
		r.byThread[l.ThreadID] = l
	}
	if l.ShipperEmail != "" && !l.IsComplete {
		r.byShipper[l.ShipperEmail] = l
	}
}

func (r *stubLoadRepo) Create(_ context.Context, l *domain.Load) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, l)
	r.seed(l)
	return nil
}

func (r *stubLoadRepo) FindByLoadNumber(_ context.Context, loadNumber string) (*domain.Load, error) {
	if l, ok := r.byNumber[loadNumber]; ok {
		return l, nil
	}
	return nil, domain.ErrLoadNotFound
}

func (r *stubLoadRepo) FindIncompleteByThread(_ context.Context, threadID string) (*domain.Load, error) {
	if l, ok := r.byThread[threadID]; ok {
		return l, nil
	}
	return nil, domain.ErrLoadNotFound
}

func (r *stubLoadRepo) FindIncompleteByShipper(_ context.Context, shipperEmail string) (*domain.Load, error) {
	if l, ok := r.byShipper[shipperEmail]; ok {
		return l, nil
	}
	return nil, domain.ErrLoadNotFound
}

func (r *stubLoadRepo) Update(_ context.Context, l *domain.Load) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = append(r.updated, l)
	r.byNumber[l.LoadNumber] = l
	return nil
}

func (r *stubLoadRepo) List(_ context.Context, _ ports.ListLoadsFilter) ([]*domain.Load, int64, error) {
	out := make([]*domain.Load, 0, len(r.byNumber))
	for _, l := range r.byNumber {
		out = append(out, l)
	}
	return out, int64(len(out)), nil
}

type stubDedup struct {
	seen      map[string]bool
	dupErr    error
	markErr   error
	marked    []string
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) IsDuplicate(_ context.Context, messageID string) (bool, error) {
	return d.seen[messageID], d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, messageID string) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.seen[messageID] = true
	d.marked = append(d.marked, messageID)
	return nil
}

type stubEventPub struct {
	keys   []string
	pubErr error
}

func (p *stubEventPub) Publish(_ context.Context, key string, _ any) error {
	if p.pubErr != nil {
		return p.pubErr
	}
	p.keys = append(p.keys, key)
	return nil
}

type stubEmailPub struct {
	sent   []ports.OutboundEmail
	pubErr error
}

func (p *stubEmailPub) PublishEmail(_ context.Context, email ports.OutboundEmail) error {
	if p.pubErr != nil {
		return p.pubErr
	}
	p.sent = append(p.sent, email)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type intakeFixture struct {
	loads  *stubLoadRepo
	dedup  *stubDedup
	events *stubEventPub
	emails *stubEmailPub
	svc    ports.IntakeService
}

func newIntakeFixture() *intakeFixture {
	f := &intakeFixture{
		loads:  newStubLoadRepo(),
		dedup:  newStubDedup(),
		events: &stubEventPub{},
		emails: &stubEmailPub{},
	}
	f.svc = NewIntakeService(f.loads, f.dedup, f.events, f.emails, freight.DefaultThresholds(), zerolog.Nop())
	return f
}

func completeTenderData() freight.LoadData {
	return freight.LoadData{
		PickupLocation:   "Chicago, IL",
		DeliveryLocation: "New York, NY",
		WeightLb:         floatPtr(35000),
		Commodity:        "packaged consumer goods",
		PickupDate:       "2026-09-03",
	}
}

const tenderBody = "We have a load for pickup in Chicago with delivery to New York."

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestIntake_CompleteTender_ReadyToQuote(t *testing.T) {
	f := newIntakeFixture()

	res, err := f.svc.ProcessEmail(context.Background(), ports.InboundEmailInput{
		MessageID: "msg-1",
		ThreadID:  "thr-1",
		From:      "shipper@acme.com",
		Subject:   "Load tender Chicago to New York",
		Body:      tenderBody,
		Extracted: completeTenderData(),
	})
	if err != nil {
		t.Fatalf("ProcessEmail returned error: %v", err)
	}
	if res.Action != ports.IntakeActionCreated {
		t.Fatalf("expected action %q, got %q", ports.IntakeActionCreated, res.Action)
	}
	if res.Intent != intent.LoadTender {
		t.Fatalf("expected LOAD_TENDER intent, got %s", res.Intent)
	}
	if res.FreightType != freight.FTLDryVan {
		t.Fatalf("expected dry van, got %s", res.FreightType)
	}
	if len(res.MissingFields) != 0 {
		t.Fatalf("expected no missing fields, got %v", res.MissingFields)
	}

	if len(f.loads.created) != 1 {
		t.Fatalf("expected 1 load created, got %d", len(f.loads.created))
	}
	load := f.loads.created[0]
	if load.Status != domain.StatusReadyToQuote {
		t.Fatalf("expected status ready_to_quote, got %s", load.Status)
	}
	if !load.IsComplete {
		t.Fatalf("expected load to be complete")
	}
	if load.LoadNumber == "" || load.ID == "" {
		t.Fatalf("expected load number and id assigned: %+v", load)
	}

	// Both lifecycle events fire for a complete tender, and no email goes out.
	if len(f.events.keys) != 2 || f.events.keys[0] != eventLoadCreated || f.events.keys[1] != eventLoadReadyToQuote {
		t.Fatalf("unexpected events: %v", f.events.keys)
	}
	if len(f.emails.sent) != 0 {
		t.Fatalf("expected no outbound email, got %d", len(f.emails.sent))
	}
	if len(f.dedup.marked) != 1 || f.dedup.marked[0] != "msg-1" {
		t.Fatalf("expected message marked in dedup store, got %v", f.dedup.marked)
	}
}

func TestIntake_IncompleteTender_RequestsClarification(t *testing.T) {
	f := newIntakeFixture()

	data := completeTenderData()
	data.WeightLb = nil
	data.Commodity = ""

	res, err := f.svc.ProcessEmail(context.Background(), ports.InboundEmailInput{
		MessageID: "msg-2",
		ThreadID:  "thr-2",
		From:      "shipper@acme.com",
		Subject:   "Freight pickup needed",
		Body:      tenderBody,
		Extracted: data,
	})
	if err != nil {
		t.Fatalf("ProcessEmail returned error: %v", err)
	}
	if res.Action != ports.IntakeActionClarification {
		t.Fatalf("expected clarification action, got %q", res.Action)
	}
	if !contains(res.MissingFields, freight.FieldWeight) || !contains(res.MissingFields, freight.FieldCommodity) {
		t.Fatalf("expected weight and commodity missing, got %v", res.MissingFields)
	}

	load := f.loads.created[0]
	if load.Status != domain.StatusAwaitingInfo {
		t.Fatalf("expected status awaiting_info, got %s", load.Status)
	}
	if load.FollowUpCount != 1 {
		t.Fatalf("expected follow_up_count 1, got %d", load.FollowUpCount)
	}

	if len(f.emails.sent) != 1 {
		t.Fatalf("expected 1 clarification email, got %d", len(f.emails.sent))
	}
	email := f.emails.sent[0]
	if email.To != "shipper@acme.com" || email.Kind != "clarification_request" {
		t.Fatalf("unexpected email: %+v", email)
	}

	// Only the created event; ready_to_quote must not fire.
	if len(f.events.keys) != 1 || f.events.keys[0] != eventLoadCreated {
		t.Fatalf("unexpected events: %v", f.events.keys)
	}
}

func TestIntake_DuplicateMessage_Skipped(t *testing.T) {
	f := newIntakeFixture()
	f.dedup.seen["msg-3"] = true

	res, err := f.svc.ProcessEmail(context.Background(), ports.InboundEmailInput{
		MessageID: "msg-3",
		From:      "shipper@acme.com",
		Subject:   "Load tender",
		Body:      tenderBody,
		Extracted: completeTenderData(),
	})
	if err != nil {
		t.Fatalf("ProcessEmail returned error: %v", err)
	}
	if res.Action != ports.IntakeActionDuplicate {
		t.Fatalf("expected duplicate action, got %q", res.Action)
	}
	if len(f.loads.created) != 0 {
		t.Fatalf("duplicate must not create a load")
	}
}

func TestIntake_ThreadReply_CompletesLoad(t *testing.T) {
	f := newIntakeFixture()

	data := completeTenderData()
	data.WeightLb = nil
	open := &domain.Load{
		ID:            "load-1",
		LoadNumber:    "LD-00000001",
		ShipperEmail:  "shipper@acme.com",
		ThreadID:      "thr-4",
		Status:        domain.StatusAwaitingInfo,
		FreightType:   freight.FTLDryVan,
		Data:          data,
		MissingFields: []string{freight.FieldWeight},
		FollowUpCount: 1,
	}
	f.loads.seed(open)

	res, err := f.svc.ProcessEmail(context.Background(), ports.InboundEmailInput{
		MessageID: "msg-4",
		ThreadID:  "thr-4",
		From:      "shipper@acme.com",
		Subject:   "Re: Additional information needed for load LD-00000001",
		Body:      "The weight is 35000 lbs.",
		Extracted: freight.LoadData{WeightLb: floatPtr(35000)},
	})
	if err != nil {
		t.Fatalf("ProcessEmail returned error: %v", err)
	}
	if res.Action != ports.IntakeActionCompleted {
		t.Fatalf("expected completed action, got %q", res.Action)
	}
	if res.Intent != intent.MissingInfoResponse {
		t.Fatalf("expected MISSING_INFO_RESPONSE, got %s", res.Intent)
	}

	if open.Status != domain.StatusReadyToQuote {
		t.Fatalf("expected ready_to_quote, got %s", open.Status)
	}
	if !open.IsComplete || len(open.MissingFields) != 0 {
		t.Fatalf("expected load complete, got missing %v", open.MissingFields)
	}
	if open.Data.WeightLb == nil || *open.Data.WeightLb != 35000 {
		t.Fatalf("weight not merged: %+v", open.Data.WeightLb)
	}
	if len(f.loads.updated) == 0 {
		t.Fatalf("expected load update to be persisted")
	}
	if len(f.events.keys) != 1 || f.events.keys[0] != eventLoadReadyToQuote {
		t.Fatalf("unexpected events: %v", f.events.keys)
	}
}

func TestIntake_ThreadReply_StillIncomplete(t *testing.T) {
	f := newIntakeFixture()

	open := &domain.Load{
		ID:            "load-2",
		LoadNumber:    "LD-00000002",
		ShipperEmail:  "shipper@acme.com",
		ThreadID:      "thr-5",
		Status:        domain.StatusAwaitingInfo,
		FreightType:   freight.FTLDryVan,
		Data:          freight.LoadData{PickupLocation: "Chicago, IL"},
		MissingFields: []string{freight.FieldDeliveryLocation, freight.FieldWeight, freight.FieldCommodity, freight.FieldPickupDate},
		FollowUpCount: 1,
	}
	f.loads.seed(open)

	res, err := f.svc.ProcessEmail(context.Background(), ports.InboundEmailInput{
		MessageID: "msg-5",
		ThreadID:  "thr-5",
		From:      "shipper@acme.com",
		Subject:   "Re: Additional information needed",
		Body:      "Going to New York.",
		Extracted: freight.LoadData{DeliveryLocation: "New York, NY"},
	})
	if err != nil {
		t.Fatalf("ProcessEmail returned error: %v", err)
	}
	if res.Action != ports.IntakeActionClarification {
		t.Fatalf("expected clarification action, got %q", res.Action)
	}
	if open.FollowUpCount != 2 {
		t.Fatalf("expected follow_up_count 2, got %d", open.FollowUpCount)
	}
	if open.Status != domain.StatusAwaitingInfo {
		t.Fatalf("expected status awaiting_info, got %s", open.Status)
	}
	if len(f.emails.sent) != 1 {
		t.Fatalf("expected a second clarification email, got %d", len(f.emails.sent))
	}
}

func TestIntake_ReplyReclassifiesFreightType(t *testing.T) {
	f := newIntakeFixture()

	open := &domain.Load{
		ID:            "load-3",
		LoadNumber:    "LD-00000003",
		ShipperEmail:  "shipper@acme.com",
		ThreadID:      "thr-6",
		Status:        domain.StatusAwaitingInfo,
		FreightType:   freight.FTLDryVan,
		Data:          completeTenderData(),
		MissingFields: []string{freight.FieldCommodity},
		FollowUpCount: 1,
	}
	open.Data.Commodity = ""
	f.loads.seed(open)

	// The reply reveals the commodity is refrigerated, which changes the
	// freight type and introduces a temperature requirement.
	res, err := f.svc.ProcessEmail(context.Background(), ports.InboundEmailInput{
		MessageID: "msg-6",
		ThreadID:  "thr-6",
		From:      "shipper@acme.com",
		Subject:   "Re: Additional information needed",
		Body:      "It's frozen seafood.",
		Extracted: freight.LoadData{Commodity: "frozen seafood"},
	})
	if err != nil {
		t.Fatalf("ProcessEmail returned error: %v", err)
	}
	if open.FreightType != freight.FTLReefer {
		t.Fatalf("expected reclassification to reefer, got %s", open.FreightType)
	}
	if res.Action != ports.IntakeActionClarification {
		t.Fatalf("expected clarification for new temperature requirement, got %q", res.Action)
	}
	if !contains(open.MissingFields, freight.FieldTemperature) {
		t.Fatalf("expected temperature missing, got %v", open.MissingFields)
	}
}

func TestIntake_ReplyWithNoOpenLoad_Unmatched(t *testing.T) {
	f := newIntakeFixture()

	// A reply whose thread we do not know, from a shipper with no open load,
	// has nowhere to merge.
	res, err := f.svc.ProcessEmail(context.Background(), ports.InboundEmailInput{
		MessageID: "msg-7",
		ThreadID:  "thr-unknown",
		From:      "stranger@elsewhere.com",
		Subject:   "Re: your question",
		Body:      "It is 35,000 lbs.",
		Extracted: freight.LoadData{WeightLb: floatPtr(35000)},
	})
	if err != nil {
		t.Fatalf("ProcessEmail returned error: %v", err)
	}
	if res.Action != ports.IntakeActionUnmatched {
		t.Fatalf("expected unmatched, got %q", res.Action)
	}
	if len(f.loads.created) != 0 {
		t.Fatalf("unmatched reply must not create a load")
	}
}

func TestIntake_ShipperFallbackWhenThreadUnknown(t *testing.T) {
	f := newIntakeFixture()

	open := &domain.Load{
		ID:            "load-4",
		LoadNumber:    "LD-00000004",
		ShipperEmail:  "shipper@acme.com",
		Status:        domain.StatusAwaitingInfo,
		FreightType:   freight.FTLDryVan,
		Data:          freight.LoadData{PickupLocation: "Chicago, IL", DeliveryLocation: "New York, NY", Commodity: "boxes", PickupDate: "2026-09-03"},
		MissingFields: []string{freight.FieldWeight},
		FollowUpCount: 1,
	}
	f.loads.seed(open)

	// Some mail clients drop threading headers; the reply still finds the
	// shipper's open load.
	res, err := f.svc.ProcessEmail(context.Background(), ports.InboundEmailInput{
		MessageID: "msg-8",
		From:      "shipper@acme.com",
		Subject:   "Re: your question",
		Body:      "It is 35,000 lbs.",
		Extracted: freight.LoadData{WeightLb: floatPtr(35000)},
	})
	if err != nil {
		t.Fatalf("ProcessEmail returned error: %v", err)
	}
	if res.Action != ports.IntakeActionCompleted {
		t.Fatalf("expected completed via shipper fallback, got %q", res.Action)
	}
	if open.Status != domain.StatusReadyToQuote {
		t.Fatalf("expected ready_to_quote, got %s", open.Status)
	}
}

func TestIntake_SpamSkipped(t *testing.T) {
	f := newIntakeFixture()

	res, err := f.svc.ProcessEmail(context.Background(), ports.InboundEmailInput{
		MessageID: "msg-9",
		From:      "promo@marketing.com",
		Subject:   "Limited time offer!",
		Body:      "Act now, unsubscribe below.",
		Extracted: freight.LoadData{},
	})
	if err != nil {
		t.Fatalf("ProcessEmail returned error: %v", err)
	}
	if res.Action != ports.IntakeActionSkipped {
		t.Fatalf("expected skipped, got %q", res.Action)
	}
	if res.Intent != intent.SpamIrrelevant {
		t.Fatalf("expected spam intent, got %s", res.Intent)
	}
	if len(f.loads.created) != 0 {
		t.Fatalf("spam must not create loads")
	}
}

func TestIntake_DedupErrorDoesNotBlock(t *testing.T) {
	f := newIntakeFixture()
	f.dedup.dupErr = context.DeadlineExceeded

	res, err := f.svc.ProcessEmail(context.Background(), ports.InboundEmailInput{
		MessageID: "msg-10",
		From:      "shipper@acme.com",
		Subject:   "Load tender",
		Body:      tenderBody,
		Extracted: completeTenderData(),
	})
	if err != nil {
		t.Fatalf("ProcessEmail returned error: %v", err)
	}
	if res.Action != ports.IntakeActionCreated {
		t.Fatalf("dedup failure should not block intake, got %q", res.Action)
	}
}

func TestGenerateLoadNumber_Format(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := generateLoadNumber()
		if len(n) != 11 || n[:3] != "LD-" {
			t.Fatalf("unexpected load number format: %q", n)
		}
		seen[n] = true
	}
	if len(seen) < 99 {
		t.Fatalf("load numbers should be effectively unique, got %d distinct of 100", len(seen))
	}
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

func floatPtr(v float64) *float64 { return &v }

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
