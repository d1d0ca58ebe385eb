package httpserver

import (
	"net/http"

	"tourflow/internal/app"
)

type paymentRequest struct {
	BookingID      int64  `json:"booking_id"`
	CardNumber     string `json:"card_number"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholder_name"`
}

func (h *Handlers) processPayment(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	var req paymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.Payments.Process(r.Context(), u, app.PaymentInput{
		BookingID:      req.BookingID,
		CardNumber:     req.CardNumber,
		ExpiryDate:     req.ExpiryDate,
		CVV:            req.CVV,
		CardholderName: req.CardholderName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
