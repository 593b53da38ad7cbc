// Package routes binds the HTTP API onto an httprouter.Router.
package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"recipebox/apperr"
	"recipebox/auth"
	"recipebox/middleware"
	"recipebox/profile"
	"recipebox/ratelim"
	"recipebox/recipes"
	"recipebox/store"
	"recipebox/utils"
)

// Deps are the handlers and collaborators the route table needs.
type Deps struct {
	Users       store.UserStore
	Auth        *auth.Handler
	Profile     *profile.Handler
	Recipes     *recipes.Handler
	RateLimiter *ratelim.RateLimiter
}

// Endpoint is one path of the API and the methods it accepts.
type Endpoint struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods"`
}

// table records every registered route so /endpoints can list them.
type table struct {
	router    *httprouter.Router
	endpoints []Endpoint
}

func (t *table) handle(method, path string, h httprouter.Handle) {
	t.router.Handle(method, path, h)
	for i := range t.endpoints {
		if t.endpoints[i].Path == path {
			t.endpoints[i].Methods = append(t.endpoints[i].Methods, method)
			return
		}
	}
	t.endpoints = append(t.endpoints, Endpoint{Path: path, Methods: []string{method}})
}

// SetupRouter builds the router with every API route.
func SetupRouter(d Deps) *httprouter.Router {
	t := &table{router: httprouter.New()}
	t.router.NotFound = http.HandlerFunc(notFound)

	authn := middleware.Authenticate(d.Users)
	limit := d.RateLimiter.Limit

	addMiscRoutes(t)
	addAuthRoutes(t, d.Auth, limit)
	addProfileRoutes(t, d.Profile, authn, limit)
	addRecipeRoutes(t, d.Recipes, authn, limit)
	return t.router
}

type wrap = func(httprouter.Handle) httprouter.Handle

func addMiscRoutes(t *table) {
	t.handle(http.MethodGet, "/", Index)
	t.handle(http.MethodGet, "/endpoints", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		utils.Respond(w, http.StatusOK, t.endpoints)
	})
}

func addAuthRoutes(t *table, h *auth.Handler, limit wrap) {
	t.handle(http.MethodPost, "/register", limit(h.Register))
	t.handle(http.MethodPost, "/login", limit(h.Login))
}

func addProfileRoutes(t *table, h *profile.Handler, authn, limit wrap) {
	t.handle(http.MethodGet, "/users", authn(h.GetUsers))
	t.handle(http.MethodGet, "/users/user/:userId", authn(h.GetProfile))
	t.handle(http.MethodPatch, "/users/user/:userId/edit/password", limit(authn(h.EditPassword)))
	t.handle(http.MethodPatch, "/users/user/:userId/edit/other", limit(authn(h.EditProfile)))
	t.handle(http.MethodPatch, "/users/user/:userId/edit/rating", limit(authn(h.AddRating)))
	t.handle(http.MethodDelete, "/users/user/:userId", limit(authn(h.DeleteProfile)))
}

func addRecipeRoutes(t *table, h *recipes.Handler, authn, limit wrap) {
	t.handle(http.MethodPost, "/recipes", limit(authn(h.CreateRecipe)))
	t.handle(http.MethodGet, "/recipes/all", h.GetRecipes)
	t.handle(http.MethodGet, "/recipes/public", h.GetPublicRecipes)
	t.handle(http.MethodGet, "/recipes/user/:userId", authn(h.GetUserRecipes))
	t.handle(http.MethodGet, "/recipes/user/:userId/public", authn(h.GetUserAndPublicRecipes))
	t.handle(http.MethodGet, "/recipes/recipe/:recipeId", h.GetRecipe)
	t.handle(http.MethodPatch, "/recipes/recipe/:recipeId", limit(authn(h.UpdateRecipe)))
	t.handle(http.MethodPatch, "/recipes/recipe/:recipeId/rating", limit(authn(h.RateRecipe)))
	t.handle(http.MethodDelete, "/recipes/recipe/:recipeId", limit(authn(h.DeleteRecipe)))
}

// Index is the welcome document.
func Index(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	utils.Respond(w, http.StatusOK, map[string]string{
		"Welcome!":                      "Recipe sharing API",
		"All endpoints are listed here": "/endpoints",
	})
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.RespondWithError(w, apperr.NotFound("Route not found."), "")
}
