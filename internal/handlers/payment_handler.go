package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"interviewai/internal/middleware"
	"interviewai/internal/models"
	"interviewai/internal/payment"
	"interviewai/internal/utils"
)

type PaymentHandler struct {
	gateway payment.Gateway
	secret  string
	logger  *zap.Logger
}

func NewPaymentHandler(gateway payment.Gateway, secret string, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{gateway: gateway, secret: secret, logger: logger}
}

func (h *PaymentHandler) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateOrderRequest](r)

	order, err := h.gateway.CreateOrder(req.Amount, req.Currency, req.Receipt, req.Notes)
	if err != nil {
		h.gatewayError(w, err, "Error creating order")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   order,
		"key_id":  h.gateway.KeyID(),
	})
}

// VerifyPaymentHandler checks the checkout signature locally; no gateway call is made.
func (h *PaymentHandler) VerifyPaymentHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.VerifyPaymentRequest](r)

	if !payment.VerifySignature(h.secret, req.OrderID, req.PaymentID, req.Signature) {
		h.logger.Warn("Payment signature mismatch",
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID))
		utils.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "Invalid signature",
			"details": "Payment verification failed",
		})
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    "Payment verified successfully",
		"payment_id": req.PaymentID,
		"order_id":   req.OrderID,
	})
}

func (h *PaymentHandler) GetPaymentHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.gateway.FetchPayment(chi.URLParam(r, "payment_id"))
	if err != nil {
		h.gatewayError(w, err, "Error fetching payment details")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "payment": p})
}

func (h *PaymentHandler) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, err := h.gateway.FetchOrder(chi.URLParam(r, "order_id"))
	if err != nil {
		h.gatewayError(w, err, "Error fetching order details")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "order": order})
}

func (h *PaymentHandler) CaptureHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CaptureRequest](r)

	p, err := h.gateway.Capture(chi.URLParam(r, "payment_id"), req.Amount, req.Currency)
	if err != nil {
		h.gatewayError(w, err, "Error capturing payment")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Payment captured successfully",
		"payment": p,
	})
}

func (h *PaymentHandler) RefundHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.RefundRequest](r)

	refund, err := h.gateway.Refund(chi.URLParam(r, "payment_id"), req.Amount, req.Notes)
	if err != nil {
		h.gatewayError(w, err, "Error creating refund")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Refund initiated successfully",
		"refund":  refund,
	})
}

func (h *PaymentHandler) gatewayError(w http.ResponseWriter, err error, message string) {
	h.logger.Error(message, zap.Error(err))
	utils.JSONErrorDetails(w, http.StatusInternalServerError, message, err.Error())
}
