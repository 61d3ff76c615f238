package routers

import (
	"net/http"

	"interviewai/internal/handlers"
	"interviewai/internal/middleware"
	"interviewai/internal/models"

	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Interview  *handlers.InterviewHandler
	Transcribe *handlers.TranscribeHandler
	Question   *handlers.QuestionHandler
	Payment    *handlers.PaymentHandler
}

// APIRoutes mounts everything under /api. authn must reject requests
// without a valid bearer token.
func APIRoutes(router *chi.Mux, h Handlers, authn func(http.Handler) http.Handler) {
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.ValidateRequest[*models.RegisterRequest]()).Post("/register", h.Auth.RegisterHandler)
			r.With(middleware.ValidateRequest[*models.LoginRequest]()).Post("/login", h.Auth.LoginHandler)

			r.Group(func(r chi.Router) {
				r.Use(authn)
				r.Get("/me", h.Auth.MeHandler)
				r.With(middleware.ValidateRequest[*models.UpdateDetailsRequest]()).Put("/updatedetails", h.Auth.UpdateDetailsHandler)
				r.With(middleware.ValidateRequest[*models.UpdatePasswordRequest]()).Put("/updatepassword", h.Auth.UpdatePasswordHandler)
				r.With(adminOnly).Get("/users", h.Auth.ListUsersHandler)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authn)

			r.With(middleware.ValidateRequest[*models.TranscribeRequest]()).Post("/transcribe", h.Transcribe.TranscribeHandler)

			r.Route("/interviews", func(r chi.Router) {
				r.With(middleware.ValidateRequest[*models.CreateInterviewRequest]()).Post("/", h.Interview.CreateHandler)
				r.Get("/", h.Interview.ListHandler)
				r.Get("/{id}", h.Interview.GetHandler)
				r.With(middleware.ValidateRequest[*models.UpdateInterviewRequest]()).Put("/{id}", h.Interview.UpdateHandler)
				r.Delete("/{id}", h.Interview.DeleteHandler)
				r.Post("/{id}/complete", h.Interview.CompleteHandler)
			})

			r.Route("/questions", func(r chi.Router) {
				r.With(middleware.ValidateRequest[*models.GenerateQuestionsRequest]()).Post("/generate", h.Question.GenerateHandler)
				r.Get("/", h.Question.ListHandler)
				r.Get("/category/{category}", h.Question.ListByCategoryHandler)
				r.Get("/{id}", h.Question.GetHandler)
				r.With(adminOnly, middleware.ValidateRequest[*models.QuestionRequest]()).Post("/", h.Question.CreateHandler)
				r.With(adminOnly, middleware.ValidateRequest[*models.QuestionRequest]()).Put("/{id}", h.Question.UpdateHandler)
				r.With(adminOnly).Delete("/{id}", h.Question.DeleteHandler)
			})

			r.Route("/payment", func(r chi.Router) {
				r.With(middleware.ValidateRequest[*models.CreateOrderRequest]()).Post("/create-order", h.Payment.CreateOrderHandler)
				r.With(middleware.ValidateRequest[*models.VerifyPaymentRequest]()).Post("/verify-payment", h.Payment.VerifyPaymentHandler)
				r.Get("/payment/{payment_id}", h.Payment.GetPaymentHandler)
				r.Get("/order/{order_id}", h.Payment.GetOrderHandler)
				r.With(middleware.ValidateRequest[*models.CaptureRequest]()).Post("/capture/{payment_id}", h.Payment.CaptureHandler)
				r.With(middleware.ValidateRequest[*models.RefundRequest]()).Post("/refund/{payment_id}", h.Payment.RefundHandler)
			})
		})
	})

	// older clients post answers to the root path
	router.With(authn, middleware.ValidateRequest[*models.TranscribeRequest]()).Post("/transcribe", h.Transcribe.TranscribeHandler)
}
