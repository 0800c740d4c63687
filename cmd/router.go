package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/sbilibin2017/gw-user-posts/internal/handlers"
	"github.com/sbilibin2017/gw-user-posts/internal/middlewares"
)

type authService interface {
	handlers.Registerer
	handlers.Loginer
}

type userService interface {
	handlers.UserUpdater
	handlers.UserDeleter
	handlers.UserGetter
}

type postService interface {
	handlers.PostCreator
	handlers.PostDeleter
	handlers.PostLister
	handlers.PostGetter
}

type routerDeps struct {
	auth    authService
	users   userService
	posts   postService
	tokener middlewares.Tokener
	pinger  handlers.Pinger
	// tx wraps mutating routes in a transaction. Nil leaves them unwrapped.
	tx             func(http.Handler) http.Handler
	log            *zap.SugaredLogger
	requestTimeout time.Duration
	corsOrigins    []string
	swaggerURL     string
}

// newRouter wires every route with its middleware chain.
func newRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middlewares.LoggingMiddleware(d.log))
	if d.requestTimeout > 0 {
		r.Use(chimiddleware.Timeout(d.requestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middlewares.RequestIDHeader},
		ExposedHeaders: []string{middlewares.RequestIDHeader},
		MaxAge:         300,
	}))

	auth := middlewares.AuthMiddleware(d.tokener)
	write := []func(http.Handler) http.Handler{}
	if d.tx != nil {
		write = append(write, d.tx)
	}
	authWrite := append([]func(http.Handler) http.Handler{auth}, write...)

	// Public routes
	handlers.RegisterRegisterHandler(r, handlers.NewRegisterHandler(d.auth), write...)
	handlers.RegisterLoginHandler(r, handlers.NewLoginHandler(d.auth))
	handlers.RegisterHealthHandler(r, handlers.NewHealthHandler(d.pinger))

	// Protected routes
	handlers.RegisterUpdateUserHandler(r, handlers.NewUpdateUserHandler(d.users), authWrite...)
	handlers.RegisterDeleteUserHandler(r, handlers.NewDeleteUserHandler(d.users), authWrite...)
	handlers.RegisterGetUserHandler(r, handlers.NewGetUserHandler(d.users), auth)
	handlers.RegisterCreatePostHandler(r, handlers.NewCreatePostHandler(d.posts), authWrite...)
	handlers.RegisterDeletePostHandler(r, handlers.NewDeletePostHandler(d.posts), authWrite...)
	handlers.RegisterGetUserPostsHandler(r, handlers.NewGetUserPostsHandler(d.posts), auth)
	handlers.RegisterGetUserPostHandler(r, handlers.NewGetUserPostHandler(d.posts), auth)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(d.swaggerURL)))

	return r
}
