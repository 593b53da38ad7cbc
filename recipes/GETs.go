package recipes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"recipebox/store"
	"recipebox/utils"
)

func (h *Handler) list(w http.ResponseWriter, r *http.Request, filter store.RecipeFilter) {
	recipes, err := h.svc.List(r.Context(), filter)
	if err != nil {
		utils.RespondWithError(w, err, "Bad request.")
		return
	}
	utils.Respond(w, http.StatusOK, recipes)
}

// GetRecipes handles GET /recipes/all
func (h *Handler) GetRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, store.RecipeFilter{})
}

// GetPublicRecipes handles GET /recipes/public
func (h *Handler) GetPublicRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, store.RecipeFilter{PublicOnly: true})
}

// GetUserRecipes handles GET /recipes/user/:userId
func (h *Handler) GetUserRecipes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.list(w, r, store.RecipeFilter{AddedBy: ps.ByName("userId")})
}

// GetUserAndPublicRecipes handles GET /recipes/user/:userId/public
func (h *Handler) GetUserAndPublicRecipes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.list(w, r, store.RecipeFilter{PublicOnly: true, AddedBy: ps.ByName("userId")})
}

// GetRecipe handles GET /recipes/recipe/:recipeId
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	recipe, err := h.svc.Get(r.Context(), ps.ByName("recipeId"))
	if err != nil {
		utils.RespondWithError(w, err, "Bad request.")
		return
	}
	utils.Respond(w, http.StatusOK, recipe)
}
