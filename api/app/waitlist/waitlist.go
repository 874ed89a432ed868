package waitlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/leadchoose/waitlistd/config"
	svc "github.com/leadchoose/waitlistd/waitlist"
	"go.uber.org/zap"
)

const (
	serverErrorMessage    = "Server error. Please try again later."
	invalidEmailMessage   = "Invalid email address"
	duplicateEmailMessage = "This email is already registered. Please check your inbox for the confirmation email."
	joinedMessage         = "Please check your email to confirm your waitlist spot!"
)

// WaitlistRessource hosts the public waitlist funnel endpoints
type WaitlistRessource struct {
	log      *zap.Logger
	cfg      *config.BehaviourConfiguration
	service  Service
	mailer   TestMailer
	validate *validator.Validate
}

func (wl *WaitlistRessource) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Post("/join", wl.join)
	r.Post("/request-demo", wl.requestDemo)
	r.Get("/confirm", wl.confirm)
	r.Post("/cleanup", wl.cleanup)
	r.Post("/test-email", wl.testEmail)
	return r
}

func (wl *WaitlistRessource) join(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		wl.log.Info("invalid payload data", zap.Error(err))
		wl.respond(w, r, respondWith(false, invalidEmailMessage, http.StatusBadRequest))
		return
	}
	if err := wl.validate.Struct(&req); err != nil {
		wl.respond(w, r, respondWith(false, invalidEmailMessage, http.StatusOK))
		return
	}
	err = wl.service.Join(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, svc.ErrEntityAlreadyExists) {
			wl.respond(w, r, respondWith(false, duplicateEmailMessage, http.StatusOK))
			return
		}
		wl.log.Error("quick form submission failed", zap.Error(err))
		wl.respond(w, r, respondWith(false, serverErrorMessage, http.StatusInternalServerError))
		return
	}
	wl.respond(w, r, respondWith(true, joinedMessage, http.StatusOK))
}

func (wl *WaitlistRessource) requestDemo(w http.ResponseWriter, r *http.Request) {
	var req requestDemoRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		wl.log.Info("invalid payload data", zap.Error(err))
		wl.respond(w, r, respondWith(false, invalidEmailMessage, http.StatusBadRequest))
		return
	}
	if err := wl.validate.Struct(&req); err != nil {
		wl.respond(w, r, respondWith(false, invalidEmailMessage, http.StatusOK))
		return
	}
	err = wl.service.RequestDemo(r.Context(), req.Email, req.Name, req.Company, req.Message)
	if err != nil {
		if errors.Is(err, svc.ErrEntityAlreadyExists) {
			wl.respond(w, r, respondWith(false, duplicateEmailMessage, http.StatusOK))
			return
		}
		wl.log.Error("detailed form submission failed", zap.Error(err))
		wl.respond(w, r, respondWith(false, serverErrorMessage, http.StatusInternalServerError))
		return
	}
	wl.respond(w, r, respondWith(true, joinedMessage, http.StatusOK))
}

func (wl *WaitlistRessource) confirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		wl.respond(
			w,
			r,
			respondWith(false, "Invalid confirmation token", http.StatusBadRequest),
		)
		return
	}
	_, err := wl.service.Confirm(r.Context(), token)
	if err != nil {
		if errors.Is(err, svc.ErrEntityDoesNotExist) {
			wl.respond(w, r, respondWith(
				false,
				"Invalid or expired confirmation token. Please sign up again.",
				http.StatusBadRequest,
			))
			return
		}
		wl.log.Error("email confirmation failed", zap.Error(err))
		wl.respond(w, r, respondWith(false, serverErrorMessage, http.StatusInternalServerError))
		return
	}
	wl.respond(w, r, respondWith(
		true,
		fmt.Sprintf("Email confirmed successfully! Welcome to %s.", wl.cfg.Name),
		http.StatusOK,
	))
}

func (wl *WaitlistRessource) cleanup(w http.ResponseWriter, r *http.Request) {
	removed, err := wl.service.CleanupExpired(r.Context())
	if err != nil {
		wl.log.Error("cleanup failed", zap.Error(err))
		wl.respond(w, r, respondWith(
			false,
			"Failed to clean up expired entries",
			http.StatusInternalServerError,
		))
		return
	}
	wl.log.Info("cleaned up expired entries", zap.Int64("removed", removed))
	wl.respond(w, r, respondWith(
		true,
		"Successfully cleaned up expired entries",
		http.StatusOK,
	))
}

func (wl *WaitlistRessource) testEmail(w http.ResponseWriter, r *http.Request) {
	var req testEmailRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || wl.validate.Struct(&req) != nil {
		// no address supplied, fall back to the operator address
		req.Email = wl.cfg.OperatorAddress
	}
	if req.Email == "" {
		wl.respond(
			w,
			r,
			respondWith(false, "No test address available", http.StatusBadRequest),
		)
		return
	}
	if err := wl.mailer.SendTestEmail(req.Email); err != nil {
		wl.log.Error("test email failed", zap.Error(err))
		wl.respond(w, r, respondWith(
			false,
			fmt.Sprintf("Failed to send test email: %s", err.Error()),
			http.StatusInternalServerError,
		))
		return
	}
	wl.respond(w, r, respondWith(
		true,
		fmt.Sprintf("Test email sent to %s. Please check your inbox.", req.Email),
		http.StatusOK,
	))
}

func (wl *WaitlistRessource) respond(w http.ResponseWriter, r *http.Request, res *apiResponse) {
	if err := render.Render(w, r, res); err != nil {
		wl.log.Error("unable to render response", zap.Error(err))
	}
}

func NewWaitlistRessource(
	log *zap.Logger,
	cfg *config.BehaviourConfiguration,
	service Service,
	mailer TestMailer,
	validate *validator.Validate,
) *WaitlistRessource {
	return &WaitlistRessource{
		log:      log,
		cfg:      cfg,
		service:  service,
		mailer:   mailer,
		validate: validate,
	}
}
