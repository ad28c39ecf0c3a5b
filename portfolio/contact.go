package portfolio

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/folio/motion"
)

// DefaultBannerDismiss is how long a submission banner stays up
const DefaultBannerDismiss = 5 * time.Second

// Banner texts
const (
	SentText   = "Thank you for your message! I'll get back to you soon."
	FailedText = "Sorry, there was an error sending your message. Please try again later."
)

// Sender delivers a contact message. *Client implements it.
type Sender interface {
	SendContact(ctx context.Context, msg ContactMessage) (ContactReceipt, error)
}

// SubmitStatus is the banner state of the form
type SubmitStatus int

const (
	SubmitIdle SubmitStatus = iota
	SubmitSending
	SubmitSent
	SubmitFailed
)

func (s SubmitStatus) String() string {
	switch s {
	case SubmitSending:
		return "sending"
	case SubmitSent:
		return "sent"
	case SubmitFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Banner is the transient notice shown after a submission
type Banner struct {
	Status SubmitStatus
	Text   string
	ID     string
}

// ContactForm validates and submits contact messages. A failed message
// is not kept; the banner clears itself after the dismiss delay.
type ContactForm struct {
	sender  Sender
	clock   motion.Clock
	dismiss time.Duration

	mu     sync.Mutex
	banner Banner
	timer  motion.Timer
}

func NewContactForm(sender Sender, clock motion.Clock, dismiss time.Duration) *ContactForm {
	if dismiss <= 0 {
		dismiss = DefaultBannerDismiss
	}
	return &ContactForm{sender: sender, clock: clock, dismiss: dismiss}
}

// Submit validates msg and, only if it is valid, sends it once. A
// validation failure comes back as FieldErrors and nothing is sent.
func (f *ContactForm) Submit(ctx context.Context, msg ContactMessage) (Banner, error) {
	if fe := ValidateContact(msg); fe != nil {
		return f.Banner(), fe
	}

	id := uuid.NewString()
	f.setBanner(Banner{Status: SubmitSending, ID: id}, false)

	receipt, err := f.sender.SendContact(ctx, msg)
	if err != nil {
		b := Banner{Status: SubmitFailed, Text: FailedText, ID: id}
		f.setBanner(b, true)
		return b, err
	}

	text := receipt.Message
	if text == "" {
		text = SentText
	}
	b := Banner{Status: SubmitSent, Text: text, ID: id}
	f.setBanner(b, true)
	return b, nil
}

func (f *ContactForm) setBanner(b Banner, autoDismiss bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.banner = b
	if !autoDismiss {
		return
	}
	id := b.ID
	f.timer = f.clock.AfterFunc(f.dismiss, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.banner.ID == id {
			f.banner = Banner{}
			f.timer = nil
		}
	})
}

// Banner returns the current notice
func (f *ContactForm) Banner() Banner {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.banner
}

// DismissAfter returns the banner lifetime
func (f *ContactForm) DismissAfter() time.Duration {
	return f.dismiss
}

// Close cancels a pending dismissal
func (f *ContactForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
