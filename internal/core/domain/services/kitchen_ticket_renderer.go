package services

import (
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/cart"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	ticketWidth      = 40
	ticketTimeLayout = "2006-01-02 15:04"
)

var (
	ticketRule  = strings.Repeat("=", ticketWidth)
	ticketSplit = strings.Repeat("-", ticketWidth)
)

// KitchenTicketRenderer renders kitchen order tickets.
//
// Layout:
//
//	========================================
//	          KITCHEN ORDER TICKET
//	========================================
//	Order #: 3F2A9C1E
//	Table: 5
//	Time: 2026-03-14 19:30
//	----------------------------------------
//
//	** MAINS **
//	  2x Pizza
//
//	----------------------------------------
//	SPECIAL INSTRUCTIONS:
//	extra cheese
//	========================================
//
// The instructions block is omitted when the order has no notes.
type KitchenTicketRenderer struct {
	location *time.Location
}

// NewKitchenTicketRenderer prints times in loc; nil means UTC.
func NewKitchenTicketRenderer(loc *time.Location) KitchenTicketRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return KitchenTicketRenderer{location: loc}
}

// Render returns the ticket text. Pending orders have no ticket yet because the kitchen
// only sees orders a waiter confirmed.
func (r KitchenTicketRenderer) Render(o *order.Order, printedAt time.Time) (string, error) {
	if err := o.Validate(); err != nil {
		return "", err
	}
	if o.Status() == order.Pending {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"kitchen ticket",
			fmt.Errorf("order %s is not confirmed yet", o.Number()),
		)
	}

	loc := r.location
	if loc == nil {
		loc = time.UTC
	}

	var b strings.Builder
	b.WriteString(ticketRule + "\n")
	b.WriteString(center("KITCHEN ORDER TICKET") + "\n")
	b.WriteString(ticketRule + "\n")
	fmt.Fprintf(&b, "Order #: %s\n", o.Number())
	fmt.Fprintf(&b, "Table: %d\n", o.TableNumber())
	fmt.Fprintf(&b, "Time: %s\n", printedAt.In(loc).Format(ticketTimeLayout))
	b.WriteString(ticketSplit + "\n\n")

	// a Caser keeps state between calls, so each rendering gets its own
	upper := cases.Upper(language.Und)
	sections := cart.GroupBy(o.Items(), func(i order.Item) string { return i.Category() })
	for _, section := range sections {
		fmt.Fprintf(&b, "** %s **\n", upper.String(section.Category))
		for _, item := range section.Items {
			fmt.Fprintf(&b, "  %dx %s\n", item.Quantity(), norm.NFC.String(item.Name()))
		}
		b.WriteString("\n")
	}

	if notes := strings.TrimSpace(o.Notes()); notes != "" {
		b.WriteString(ticketSplit + "\n")
		b.WriteString("SPECIAL INSTRUCTIONS:\n")
		b.WriteString(norm.NFC.String(notes) + "\n")
	}

	b.WriteString(ticketRule + "\n")
	return b.String(), nil
}

func center(s string) string {
	pad := (ticketWidth - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
