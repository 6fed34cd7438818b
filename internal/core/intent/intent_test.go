package intent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		body    string
		thread  bool
		want    Intent
	}{
		{
			name:    "thread reply is always missing info",
			subject: "RE: Additional info needed for your load",
			body:    "Weight is 42,000 lbs, pickup Friday.",
			thread:  true,
			want:    MissingInfoResponse,
		},
		{
			name:    "load tender",
			subject: "Load available Dallas to Houston",
			body:    "We have a shipment ready for pickup Monday, delivery Wednesday.",
			want:    LoadTender,
		},
		{
			name:    "carrier quote reply",
			subject: "RE: Load 1042 Dallas-Houston",
			body:    "We can do it for $2.10 per mile all-in.",
			want:    QuoteResponse,
		},
		{
			name:    "payment inquiry",
			subject: "Invoice 8841 past due",
			body:    "Please advise on payment status.",
			want:    PaymentInquiry,
		},
		{
			name:    "spam",
			subject: "Limited time offer!!!",
			body:    "Act now. Unsubscribe here.",
			want:    SpamIrrelevant,
		},
		{
			name:    "plain reply without thread context",
			subject: "Re: your question",
			body:    "It is 35,000 lbs.",
			want:    MissingInfoResponse,
		},
		{
			name:    "no signals",
			subject: "hello",
			body:    "just checking in",
			want:    UnknownIntent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.subject, tt.body, tt.thread)
			if got.Intent != tt.want {
				t.Errorf("Classify() = %s (%.2f, %s), want %s", got.Intent, got.Confidence, got.Reasoning, tt.want)
			}
		})
	}
}

func TestResult_ShouldProcessAutomatically(t *testing.T) {
	if (Result{Confidence: 0.84}).ShouldProcessAutomatically() {
		t.Error("0.84 must not clear the threshold")
	}
	if !(Result{Confidence: 0.9}).ShouldProcessAutomatically() {
		t.Error("0.9 must clear the threshold")
	}
}
