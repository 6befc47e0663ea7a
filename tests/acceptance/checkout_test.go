package acceptance

import (
	"net/http"

	"github.com/nutriacai/wellness-api/internal/dto"
)

// seedPoints materializes the user's points profile and sets its balance
// directly, since earning a large balance through tasks would take weeks of
// period windows.
func (s *Suite) seedPoints(token, email string, points int64) {
	var profile dto.ProfileResponse
	status := s.doJSON(http.MethodGet, "/api/v1/rewards/profile", token, nil, &profile)
	s.Require().Equal(http.StatusOK, status)

	_, err := s.Postgres.DB.Exec(
		`UPDATE points_profiles SET points = $1 WHERE user_id = (SELECT id FROM users WHERE email = $2)`,
		points, email,
	)
	s.Require().NoError(err, "Failed to seed points")
}

func (s *Suite) TestCheckout_StripeFlowWithRedemption() {
	token := s.registerUser("buyer@example.com", "Password123")
	s.seedPoints(token, "buyer@example.com", 1200)

	var session dto.CheckoutSessionResponse
	status := s.doJSON(http.MethodPost, "/api/v1/checkout/session", token,
		dto.CreateCheckoutSessionRequest{
			SubtotalMinorUnits: 2500,
			RedeemPoints:       true,
			PaymentMethod:      "stripe",
		}, &session)

	s.Require().Equal(http.StatusOK, status)
	s.Require().NotEmpty(session.SessionID)
	s.Contains(session.URL, session.SessionID)
	s.Equal(int64(1200), session.Quote.PointsToRedeem)
	s.Equal(int64(100), session.Quote.DiscountMinorUnits)
	s.Equal(int64(2400), session.Quote.PayableMinorUnits)

	// Creating the session must not deduct anything.
	var profile dto.ProfileResponse
	status = s.doJSON(http.MethodGet, "/api/v1/rewards/profile", token, nil, &profile)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(int64(1200), profile.Points)

	// Confirming before the customer pays is rejected and deducts nothing.
	status = s.doJSON(http.MethodPost, "/api/v1/checkout/confirm", token,
		dto.ConfirmCheckoutRequest{SessionID: session.SessionID}, nil)
	s.Equal(http.StatusConflict, status)

	s.Require().True(s.Stripe.MarkPaid(session.SessionID))

	var confirm dto.ConfirmCheckoutResponse
	status = s.doJSON(http.MethodPost, "/api/v1/checkout/confirm", token,
		dto.ConfirmCheckoutRequest{SessionID: session.SessionID}, &confirm)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(int64(1200), confirm.PointsDeducted)
	s.Equal(int64(0), confirm.Points)

	// A retried callback for the same session deducts nothing more.
	status = s.doJSON(http.MethodPost, "/api/v1/checkout/confirm", token,
		dto.ConfirmCheckoutRequest{SessionID: session.SessionID}, &confirm)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(int64(0), confirm.PointsDeducted)
	s.Equal(int64(0), confirm.Points)
}

func (s *Suite) TestCheckout_WithoutRedemption() {
	token := s.registerUser("plain@example.com", "Password123")
	s.seedPoints(token, "plain@example.com", 500)

	var session dto.CheckoutSessionResponse
	status := s.doJSON(http.MethodPost, "/api/v1/checkout/session", token,
		dto.CreateCheckoutSessionRequest{
			SubtotalMinorUnits: 2500,
			RedeemPoints:       false,
			PaymentMethod:      "stripe",
		}, &session)

	s.Require().Equal(http.StatusOK, status)
	s.Equal(int64(0), session.Quote.PointsToRedeem)
	s.Equal(int64(2500), session.Quote.PayableMinorUnits)

	s.Require().True(s.Stripe.MarkPaid(session.SessionID))

	var confirm dto.ConfirmCheckoutResponse
	status = s.doJSON(http.MethodPost, "/api/v1/checkout/confirm", token,
		dto.ConfirmCheckoutRequest{SessionID: session.SessionID}, &confirm)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(int64(0), confirm.PointsDeducted)
	s.Equal(int64(500), confirm.Points)
}

func (s *Suite) TestCheckout_CashDeductsImmediately() {
	token := s.registerUser("cash@example.com", "Password123")
	s.seedPoints(token, "cash@example.com", 2000)

	var session dto.CheckoutSessionResponse
	status := s.doJSON(http.MethodPost, "/api/v1/checkout/session", token,
		dto.CreateCheckoutSessionRequest{
			SubtotalMinorUnits: 2500,
			RedeemPoints:       true,
			PaymentMethod:      "cash",
		}, &session)

	s.Require().Equal(http.StatusOK, status)
	s.Empty(session.SessionID)
	s.Equal(int64(2000), session.Quote.PointsToRedeem)
	s.Equal(int64(200), session.Quote.DiscountMinorUnits)

	var profile dto.ProfileResponse
	status = s.doJSON(http.MethodGet, "/api/v1/rewards/profile", token, nil, &profile)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(int64(0), profile.Points)
}

func (s *Suite) TestCheckout_UnknownSession() {
	token := s.registerUser("ghost@example.com", "Password123")

	status := s.doJSON(http.MethodPost, "/api/v1/checkout/confirm", token,
		dto.ConfirmCheckoutRequest{SessionID: "cs_test_missing"}, nil)
	s.Equal(http.StatusBadGateway, status)
}

func (s *Suite) TestCheckout_InvalidSubtotal() {
	token := s.registerUser("zero@example.com", "Password123")

	status := s.doJSON(http.MethodPost, "/api/v1/checkout/session", token,
		dto.CreateCheckoutSessionRequest{
			SubtotalMinorUnits: -100,
			PaymentMethod:      "stripe",
		}, nil)
	s.Equal(http.StatusBadRequest, status)
}

func (s *Suite) TestCheckout_RequiresAuth() {
	status := s.doJSON(http.MethodPost, "/api/v1/checkout/session", "",
		dto.CreateCheckoutSessionRequest{
			SubtotalMinorUnits: 2500,
			PaymentMethod:      "stripe",
		}, nil)
	s.Equal(http.StatusUnauthorized, status)
}
