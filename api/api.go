package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/leadchoose/waitlistd/config"
	"go.uber.org/zap"

	wr "github.com/leadchoose/waitlistd/api/app/waitlist"

	svc "github.com/leadchoose/waitlistd/waitlist"
)

var validate *validator.Validate

func compose(
	logger *zap.Logger,
	cfg *config.Configuration,
	service *svc.Service,
	mailer wr.TestMailer,
) (*chi.Mux, error) {
	validate = validator.New()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Use(loggerMiddleware(logger))

	r.Use(middleware.Recoverer)

	r.Use(middleware.Timeout(50 * time.Second))

	if cfg.DebugMode() {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("running in debug mode - no auto redirects to site"))
		})
	} else {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, cfg.Behaviour.Site, http.StatusFound)
		})
	}

	waitlistRessource := wr.NewWaitlistRessource(
		logger.Named("waitlist_ressource"),
		cfg.Behaviour,
		service,
		mailer,
		validate,
	)

	r.Mount("/api/waitlist", waitlistRessource.Router())

	return r, nil
}
