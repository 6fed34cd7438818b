// Package intent classifies inbound broker email by purpose so the intake
// pipeline can route load tenders, clarification replies, and carrier quotes
// to the right workflow.
package intent

import "strings"

// Intent is the purpose category of an inbound email.
type Intent string

const (
	LoadTender          Intent = "LOAD_TENDER"
	MissingInfoResponse Intent = "MISSING_INFO_RESPONSE"
	QuoteResponse       Intent = "QUOTE_RESPONSE"
	GeneralInquiry      Intent = "GENERAL_INQUIRY"
	BookingConfirmation Intent = "BOOKING_CONFIRMATION"
	PaymentInquiry      Intent = "PAYMENT_INQUIRY"
	SpamIrrelevant      Intent = "SPAM_IRRELEVANT"
	UnknownIntent       Intent = "UNKNOWN"
)

// AutoProcessThreshold is the minimum confidence for fully automated handling;
// anything below it is routed to human review.
const AutoProcessThreshold = 0.85

// Result is a scored classification of a single email.
type Result struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// ShouldProcessAutomatically reports whether the confidence clears the
// automation threshold.
func (r Result) ShouldProcessAutomatically() bool {
	return r.Confidence >= AutoProcessThreshold
}

var (
	tenderKeywords  = []string{"load", "freight", "shipment", "pickup", "delivery", "tender", "need a truck", "quote request"}
	quoteKeywords   = []string{"rate", "per mile", "all-in", "linehaul", "can do it for", "our price"}
	bookingKeywords = []string{"booked", "confirm", "rate confirmation", "dispatched"}
	paymentKeywords = []string{"invoice", "payment", "remittance", "factoring", "past due"}
	spamKeywords    = []string{"unsubscribe", "limited time offer", "act now", "winner"}
)

// Classify scores an email's intent from its subject and body.
//
// onKnownThread marks emails that reply to a clarification request we sent; a
// threaded reply is a missing-info response regardless of its wording, because
// the shipper is answering our question.
func Classify(subject, body string, onKnownThread bool) Result {
	if onKnownThread {
		return Result{
			Intent:     MissingInfoResponse,
			Confidence: 0.95,
			Reasoning:  "reply on an open clarification thread",
		}
	}

	text := strings.ToLower(subject + " " + body)
	isReply := strings.HasPrefix(strings.ToLower(strings.TrimSpace(subject)), "re:")

	switch {
	case matchCount(text, spamKeywords) > 0:
		return Result{Intent: SpamIrrelevant, Confidence: 0.7, Reasoning: "promotional keywords"}
	case matchCount(text, bookingKeywords) >= 2:
		return Result{Intent: BookingConfirmation, Confidence: 0.75, Reasoning: "booking confirmation keywords"}
	case matchCount(text, paymentKeywords) > 0:
		return Result{Intent: PaymentInquiry, Confidence: 0.7, Reasoning: "billing keywords"}
	case isReply && matchCount(text, quoteKeywords) > 0:
		return Result{Intent: QuoteResponse, Confidence: 0.8, Reasoning: "reply containing rate language"}
	case matchCount(text, tenderKeywords) >= 2:
		return Result{Intent: LoadTender, Confidence: 0.9, Reasoning: "multiple load tender keywords"}
	case matchCount(text, tenderKeywords) == 1:
		return Result{Intent: LoadTender, Confidence: 0.6, Reasoning: "single load tender keyword"}
	case matchCount(text, quoteKeywords) > 0:
		return Result{Intent: QuoteResponse, Confidence: 0.5, Reasoning: "rate language without thread context"}
	case isReply:
		return Result{Intent: MissingInfoResponse, Confidence: 0.6, Reasoning: "reply without other signals"}
	default:
		return Result{Intent: UnknownIntent, Confidence: 0.1, Reasoning: "no recognisable signals"}
	}
}

func matchCount(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}
