package acceptance

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// fakeStripe stands in for the Stripe Checkout Sessions API. Sessions start
// unpaid; tests flip them with MarkPaid to simulate the customer completing
// the hosted payment page.
type fakeStripe struct {
	server *httptest.Server

	mu       sync.Mutex
	nextID   int
	sessions map[string]*fakeStripeSession
}

type fakeStripeSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Metadata      map[string]string `json:"metadata"`
}

func newFakeStripe() *fakeStripe {
	f := &fakeStripe{sessions: make(map[string]*fakeStripeSession)}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/checkout/sessions", f.handleCreate)
	mux.HandleFunc("/v1/checkout/sessions/", f.handleGet)
	f.server = httptest.NewServer(mux)

	return f
}

func (f *fakeStripe) URL() string {
	return f.server.URL
}

func (f *fakeStripe) Close() {
	f.server.Close()
}

func (f *fakeStripe) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = make(map[string]*fakeStripeSession)
}

// MarkPaid flips a session to paid so a subsequent confirm succeeds.
func (f *fakeStripe) MarkPaid(sessionID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[sessionID]
	if !ok {
		return false
	}
	session.PaymentStatus = "paid"
	return true
}

func (f *fakeStripe) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	amount, _ := strconv.ParseInt(r.PostForm.Get("line_items[0][price_data][unit_amount]"), 10, 64)

	metadata := make(map[string]string)
	for key, values := range r.PostForm {
		if strings.HasPrefix(key, "metadata[") && strings.HasSuffix(key, "]") && len(values) > 0 {
			metadata[key[len("metadata[") : len(key)-1]] = values[0]
		}
	}

	f.mu.Lock()
	f.nextID++
	session := &fakeStripeSession{
		ID:            fmt.Sprintf("cs_test_%d", f.nextID),
		PaymentStatus: "unpaid",
		AmountTotal:   amount,
		Metadata:      metadata,
	}
	session.URL = "https://checkout.stripe.com/c/pay/" + session.ID
	f.sessions[session.ID] = session
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(session)
}

func (f *fakeStripe) handleGet(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimPrefix(r.URL.Path, "/v1/checkout/sessions/")

	f.mu.Lock()
	session, ok := f.sessions[sessionID]
	f.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"message": "No such checkout session", "type": "invalid_request_error"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(session)
}
