package booking

import (
	"strings"
	"testing"
	"time"

	"servicehub/models"
)

func confirmedRecord() models.BookingRecord {
	return models.BookingRecord{
		ID:             "bk-1",
		ScheduledAt:    time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC),
		TotalAmount:    120,
		ProviderName:   "Alice",
		ProviderPhone:  "+1 (217) 555-0142",
		ProviderUserID: "u-9",
		ServiceTitle:   "Drain repair",
	}
}

func actionByKind(t *testing.T, conf Confirmation, kind string) ContactAction {
	t.Helper()
	for _, a := range conf.Actions {
		if a.Kind == kind {
			return a
		}
	}
	t.Fatalf("action %q missing from confirmation", kind)
	return ContactAction{}
}

func TestPresentBookingFullContact(t *testing.T) {
	conf := PresentBooking(confirmedRecord())

	if conf.BookingID != "bk-1" || conf.TotalAmount != 120 {
		t.Errorf("unexpected confirmation header: %+v", conf)
	}
	if conf.ScheduledDisplay != "Tue, 01 Sep 2026 at 2:30 PM" {
		t.Errorf("unexpected schedule display %q", conf.ScheduledDisplay)
	}

	msg := actionByKind(t, conf, ActionMessage)
	if !msg.Enabled || msg.URL != "/messages/new?userId=u-9" {
		t.Errorf("unexpected message action: %+v", msg)
	}

	call := actionByKind(t, conf, ActionCall)
	if !call.Enabled || call.URL != "tel:+12175550142" {
		t.Errorf("unexpected call action: %+v", call)
	}

	wa := actionByKind(t, conf, ActionWhatsApp)
	if !wa.Enabled || !strings.HasPrefix(wa.URL, "https://wa.me/12175550142?text=") {
		t.Errorf("unexpected whatsapp action: %+v", wa)
	}
	if !strings.Contains(wa.URL, "Alice") {
		t.Errorf("whatsapp text should mention the provider, got %q", wa.URL)
	}
}

func TestPresentBookingWithoutPhoneDisablesCallAndWhatsApp(t *testing.T) {
	rec := confirmedRecord()
	rec.ProviderPhone = ""
	conf := PresentBooking(rec)

	call := actionByKind(t, conf, ActionCall)
	if call.Enabled || call.DisabledReason == "" {
		t.Errorf("call without a phone must be disabled with a reason, got %+v", call)
	}
	wa := actionByKind(t, conf, ActionWhatsApp)
	if wa.Enabled || wa.DisabledReason == "" {
		t.Errorf("whatsapp without a phone must be disabled with a reason, got %+v", wa)
	}
	// The message action survives on its own prerequisite.
	if msg := actionByKind(t, conf, ActionMessage); !msg.Enabled {
		t.Errorf("message action should remain enabled, got %+v", msg)
	}
}

func TestPresentBookingWithoutUserIDDisablesMessaging(t *testing.T) {
	rec := confirmedRecord()
	rec.ProviderUserID = ""
	conf := PresentBooking(rec)

	msg := actionByKind(t, conf, ActionMessage)
	if msg.Enabled || msg.DisabledReason == "" {
		t.Errorf("message without a provider user must be disabled with a reason, got %+v", msg)
	}
	if len(conf.Actions) != 3 {
		t.Errorf("disabled actions must not disappear, got %d actions", len(conf.Actions))
	}
}
