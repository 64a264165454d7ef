package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/easytravel/easytravel-server/internal/api/http/handler"
	"github.com/easytravel/easytravel-server/internal/api/http/middleware"
	"github.com/easytravel/easytravel-server/internal/service"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Auth    *handler.Auth
	User    *handler.User
	Post    *handler.Post
	Comment *handler.Comment
	Trip    *handler.Trip
	Image   *handler.Image
}

// New builds the route tree. Reads are public; mutations and the trip
// planner require a valid access token.
func New(h Handlers, authenticate *middleware.Authenticate, logging *middleware.Logging) http.Handler {
	r := chi.NewRouter()
	r.Use(logging.Handle)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
			r.Post("/google-login", h.Auth.FederatedLogin)

			r.Get("/{id}", h.User.GetUser)
			r.Get("/{id}/username", h.User.GetUsername)

			r.Group(func(r chi.Router) {
				r.Use(authenticate.Handle)
				r.Post("/logout-all", h.Auth.LogoutAll)
				r.Put("/{id}/username", h.User.UpdateUsername)
				r.Put("/{id}/bio", h.User.UpdateBio)
				r.Put("/{id}/profile-picture", h.User.UpdateProfilePicture)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.Post.GetPosts)
			r.Get("/{id}", h.Post.GetPost)
			r.Get("/user/{userId}", h.Post.GetPostsByUser)
			r.Get("/{id}/comments", h.Comment.GetComments)

			r.Group(func(r chi.Router) {
				r.Use(authenticate.Handle)
				r.Post("/", h.Post.CreatePost)
				r.Put("/{id}", h.Post.UpdatePost)
				r.Delete("/{id}", h.Post.DeletePost)
				r.Post("/{id}/like", h.Post.ToggleLike)
				r.Post("/{id}/comments", h.Comment.CreateComment)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Use(authenticate.Handle)
			r.Put("/{id}", h.Comment.UpdateComment)
			r.Delete("/{id}", h.Comment.DeleteComment)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate.Handle)
			r.Post("/plan-trip", h.Trip.PlanTrip)
		})
	})

	r.Get("/"+service.ImagePrefix+"/{key}", h.Image.Serve(service.ImagePrefix))
	r.Get("/"+service.ProfilePicturePrefix+"/{key}", h.Image.Serve(service.ProfilePicturePrefix))

	return r
}
