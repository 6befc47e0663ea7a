// Package payment wraps the hosted payment-checkout provider. The rewards
// core only ever creates sessions for an already-computed amount and later
// reads a session's outcome; capture itself happens on the provider's pages.
package payment

import "context"

// PaymentStatusPaid is the provider's status for a captured payment.
const PaymentStatusPaid = "paid"

// SessionParams describes a hosted checkout session to create.
type SessionParams struct {
	AmountMinorUnits int64
	Currency         string
	CustomerEmail    string
	ProductName      string
	Description      string
	SuccessURL       string
	CancelURL        string
	Metadata         map[string]string
}

// Session is a created checkout session the client gets redirected to.
type Session struct {
	ID  string
	URL string
}

// SessionStatus is the provider's view of a session after the customer
// interacted with it. Metadata round-trips the values set at creation.
type SessionStatus struct {
	ID            string
	PaymentStatus string
	AmountTotal   int64
	Metadata      map[string]string
}

// Provider is the interface the checkout orchestrator depends on.
type Provider interface {
	CreateSession(ctx context.Context, params *SessionParams) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*SessionStatus, error)
}
