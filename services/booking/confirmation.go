package booking

import (
	"fmt"
	"net/url"
	"strings"

	"servicehub/models"
)

// Contact affordance kinds exposed on the confirmation view.
const (
	ActionMessage  = "message"
	ActionCall     = "call"
	ActionWhatsApp = "whatsapp"
)

// ContactAction is one follow-up affordance. When prerequisite data is
// missing the action is present but disabled with a reason; it never
// silently disappears.
type ContactAction struct {
	Kind           string `json:"kind"`
	Enabled        bool   `json:"enabled"`
	URL            string `json:"url,omitempty"`
	DisabledReason string `json:"disabledReason,omitempty"`
}

// Confirmation is the rendered outcome of a completed booking.
type Confirmation struct {
	BookingID        string          `json:"bookingId"`
	ScheduledDisplay string          `json:"scheduledDisplay"`
	TotalAmount      float64         `json:"totalAmount"`
	ProviderName     string          `json:"providerName,omitempty"`
	ServiceTitle     string          `json:"serviceTitle,omitempty"`
	Actions          []ContactAction `json:"actions"`
}

// PresentBooking renders a BookingRecord for the success screen. Pure.
func PresentBooking(rec models.BookingRecord) Confirmation {
	return Confirmation{
		BookingID:        rec.ID,
		ScheduledDisplay: rec.ScheduledAt.Format("Mon, 02 Jan 2006 at 3:04 PM"),
		TotalAmount:      rec.TotalAmount,
		ProviderName:     rec.ProviderName,
		ServiceTitle:     rec.ServiceTitle,
		Actions: []ContactAction{
			messageAction(rec),
			callAction(rec),
			whatsAppAction(rec),
		},
	}
}

func messageAction(rec models.BookingRecord) ContactAction {
	if rec.ProviderUserID == "" {
		return ContactAction{
			Kind:           ActionMessage,
			DisabledReason: "provider does not support in-app messaging",
		}
	}
	return ContactAction{
		Kind:    ActionMessage,
		Enabled: true,
		URL:     "/messages/new?userId=" + url.QueryEscape(rec.ProviderUserID),
	}
}

func callAction(rec models.BookingRecord) ContactAction {
	phone := dialDigits(rec.ProviderPhone)
	if phone == "" {
		return ContactAction{
			Kind:           ActionCall,
			DisabledReason: "provider phone number unavailable",
		}
	}
	return ContactAction{
		Kind:    ActionCall,
		Enabled: true,
		URL:     "tel:" + phone,
	}
}

func whatsAppAction(rec models.BookingRecord) ContactAction {
	phone := strings.TrimPrefix(dialDigits(rec.ProviderPhone), "+")
	if phone == "" {
		return ContactAction{
			Kind:           ActionWhatsApp,
			DisabledReason: "provider phone number unavailable",
		}
	}
	text := fmt.Sprintf("Hi %s, I just booked your %s service for %s via ServiceHub.",
		rec.ProviderName, rec.ServiceTitle, rec.ScheduledAt.Format("Mon, 02 Jan 2006 at 3:04 PM"))
	return ContactAction{
		Kind:    ActionWhatsApp,
		Enabled: true,
		URL:     "https://wa.me/" + phone + "?text=" + url.QueryEscape(text),
	}
}

// dialDigits strips formatting from a stored phone number, keeping a leading
// plus and digits only.
func dialDigits(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
