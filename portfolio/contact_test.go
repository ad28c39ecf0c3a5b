package portfolio

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/Zachkp/folio/motion"
)

var validMessage = ContactMessage{
	Name:    "Grace",
	Email:   "grace@example.com",
	Subject: "Hello",
	Message: "  Keep the padding.  ",
}

func TestSubmitInvalidEmailSendsNothing(t *testing.T) {
	api := newFakeAPI(t)
	form := NewContactForm(NewClient(api.URL), motion.NewManualClock(fixedNow()), 0)

	msg := validMessage
	msg.Email = "not-an-email"
	_, err := form.Submit(context.Background(), msg)

	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("Expected FieldErrors, got %v", err)
	}
	if fe["email"] != contactMessages["email/format"] {
		t.Errorf("Expected format message, got %q", fe["email"])
	}
	if n := len(api.contactPosts()); n != 0 {
		t.Errorf("Expected no network call, got %d", n)
	}
	if got := form.Banner().Status; got != SubmitIdle {
		t.Errorf("Expected idle banner, got %v", got)
	}
}

func TestSubmitValidSendsOnceUnmodified(t *testing.T) {
	api := newFakeAPI(t)
	clock := motion.NewManualClock(fixedNow())
	form := NewContactForm(NewClient(api.URL), clock, 0)

	b, err := form.Submit(context.Background(), validMessage)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if b.Status != SubmitSent || b.Text != "Message sent successfully!" {
		t.Errorf("Unexpected banner %+v", b)
	}

	posts := api.contactPosts()
	if len(posts) != 1 {
		t.Fatalf("Expected exactly one post, got %d", len(posts))
	}
	var got ContactMessage
	if err := json.Unmarshal([]byte(posts[0]), &got); err != nil {
		t.Fatalf("Decode posted body: %v", err)
	}
	if got != validMessage {
		t.Errorf("Expected fields unmodified, got %+v", got)
	}

	clock.Advance(DefaultBannerDismiss - time.Millisecond)
	if form.Banner().Status != SubmitSent {
		t.Error("Banner dismissed early")
	}
	clock.Advance(time.Millisecond)
	if form.Banner().Status != SubmitIdle {
		t.Errorf("Expected banner dismissed after %v", DefaultBannerDismiss)
	}
	if clock.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", clock.Pending())
	}
}

func TestSubmitFailureBanner(t *testing.T) {
	api := newFakeAPI(t)
	api.setContactStatus(http.StatusInternalServerError)
	clock := motion.NewManualClock(fixedNow())
	form := NewContactForm(NewClient(api.URL), clock, time.Second)

	b, err := form.Submit(context.Background(), validMessage)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if b.Status != SubmitFailed || b.Text != FailedText {
		t.Errorf("Unexpected banner %+v", b)
	}
	if form.DismissAfter() != time.Second {
		t.Errorf("Expected 1s dismiss, got %v", form.DismissAfter())
	}

	form.Close()
	if clock.Pending() != 0 {
		t.Errorf("Expected Close to cancel dismissal, got %d pending", clock.Pending())
	}
}

func TestNewerBannerOutlivesOlderTimer(t *testing.T) {
	api := newFakeAPI(t)
	clock := motion.NewManualClock(fixedNow())
	form := NewContactForm(NewClient(api.URL), clock, 0)

	first, _ := form.Submit(context.Background(), validMessage)
	clock.Advance(3 * time.Second)
	second, _ := form.Submit(context.Background(), validMessage)
	if first.ID == second.ID {
		t.Fatal("Expected distinct submission IDs")
	}

	clock.Advance(3 * time.Second)
	if got := form.Banner(); got.ID != second.ID {
		t.Errorf("Expected second banner still shown, got %+v", got)
	}
	clock.Advance(2 * time.Second)
	if got := form.Banner().Status; got != SubmitIdle {
		t.Errorf("Expected idle, got %v", got)
	}
}
