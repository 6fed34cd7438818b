package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jake-esse/ai-broker/internal/core/domain"
	"github.com/jake-esse/ai-broker/internal/core/freight"
	"github.com/jake-esse/ai-broker/internal/core/ports"
)

// ComposeClarificationEmail renders the missing-info request for a load. The
// field list goes through freight.FieldDisplayName so shippers see labels,
// not database keys; validation warnings ride along so permit or freight
// class issues surface in the same email.
func ComposeClarificationEmail(load *domain.Load) ports.OutboundEmail {
	var b strings.Builder

	fmt.Fprintf(&b, "Thank you for your freight inquiry (reference %s).\n\n", load.LoadNumber)
	b.WriteString("To provide you with an accurate quote, we need a few more details:\n\n")
	for _, field := range load.MissingFields {
		fmt.Fprintf(&b, "  - %s\n", freight.FieldDisplayName(field))
	}

	if len(load.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range load.Warnings {
			fmt.Fprintf(&b, "%s\n", w)
		}
	}

	b.WriteString("\nSimply reply to this email with the missing information and we will send your quote right away.\n")
	b.WriteString("\nBest regards,\nAI-Broker Team\n")

	return ports.OutboundEmail{
		To:       load.ShipperEmail,
		Subject:  fmt.Sprintf("Additional information needed for load %s", load.LoadNumber),
		Body:     b.String(),
		ThreadID: load.ThreadID,
		Kind:     "clarification_request",
	}
}

// ComposeQuoteEmail renders the shipper quote for a priced load.
func ComposeQuoteEmail(load *domain.Load, quote *domain.Quote) ports.OutboundEmail {
	var b strings.Builder

	b.WriteString("Thank you for your freight quote request. We're pleased to provide the following rate:\n\n")
	b.WriteString("LOAD DETAILS:\n")
	fmt.Fprintf(&b, "Origin: %s\n", load.Data.PickupLocation)
	fmt.Fprintf(&b, "Destination: %s\n", load.Data.DeliveryLocation)
	fmt.Fprintf(&b, "Equipment: %s\n", orTBD(load.Data.EquipmentType))
	if load.Data.WeightLb != nil {
		fmt.Fprintf(&b, "Weight: %.0f lbs\n", *load.Data.WeightLb)
	} else {
		b.WriteString("Weight: TBD\n")
	}
	fmt.Fprintf(&b, "Distance: %d miles\n\n", quote.TotalMiles)

	fmt.Fprintf(&b, "QUOTED RATE: $%.2f\n\n", quote.ShipperRate)
	b.WriteString("This all-inclusive rate includes:\n")
	fmt.Fprintf(&b, "- Linehaul: $%.2f\n", quote.LinehaulRate)
	fmt.Fprintf(&b, "- Fuel Surcharge: $%.2f\n", quote.FuelSurcharge)
	names := make([]string, 0, len(quote.Accessorials))
	for name := range quote.Accessorials {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: $%.2f\n", name, quote.Accessorials[name])
	}

	b.WriteString("\nRate is valid for 24 hours and subject to carrier availability.\n")
	b.WriteString("\nReady to book? Simply reply to this email.\n")
	b.WriteString("\nBest regards,\nAI-Broker Team\n")

	return ports.OutboundEmail{
		To:       load.ShipperEmail,
		Subject:  fmt.Sprintf("Freight quote for load %s", load.LoadNumber),
		Body:     b.String(),
		ThreadID: load.ThreadID,
		Kind:     "quote",
	}
}

func orTBD(s string) string {
	if strings.TrimSpace(s) == "" {
		return "TBD"
	}
	return s
}
