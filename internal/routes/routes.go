package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mernshopper/shopper-backend/internal/handlers"
	"github.com/mernshopper/shopper-backend/internal/middleware"
	"github.com/mernshopper/shopper-backend/internal/services"
)

func SetupRoutes(r *chi.Mux, auth *handlers.AuthHandler, mails *handlers.MailHandler, tokens *services.TokenService) {
	// Session routes
	r.Post("/auth", auth.Login)
	r.Post("/register", auth.Register)
	r.Get("/auth/refresh", auth.Refresh)
	r.Post("/auth/logout", auth.Logout)

	// Password recovery routes
	r.Post("/mails/restore", mails.RequestReset)
	r.Get("/mails/activate/{link}", mails.Activate)
	r.Post("/mails/create", mails.CompleteReset)

	// Order mail requires a valid access token
	r.Group(func(r chi.Router) {
		r.Use(middleware.VerifyJWT(tokens))
		r.Post("/mails", mails.SendOrderMail)
	})
}
