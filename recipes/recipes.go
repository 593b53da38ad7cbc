package recipes

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"recipebox/models"
	"recipebox/utils"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// CreateRecipe handles POST /recipes
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.NewRecipeRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondWithError(w, err, "Bad request.")
		return
	}

	recipe, err := h.svc.Add(r.Context(), utils.GetUserIDFromRequest(r), req)
	if err != nil {
		utils.RespondWithError(w, err, "Bad request.")
		return
	}
	utils.Respond(w, http.StatusCreated, recipe)
}

// UpdateRecipe handles PATCH /recipes/recipe/:recipeId
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body map[string]json.RawMessage
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		utils.RespondWithError(w, err, "Bad request.")
		return
	}

	if err := h.svc.Edit(r.Context(), utils.GetUserIDFromRequest(r), ps.ByName("recipeId"), body); err != nil {
		utils.RespondWithError(w, err, "Bad request, could not find and update this recipe.")
		return
	}
	utils.RespondMessage(w, http.StatusOK, "Recipe has been updated.")
}

// RateRecipe handles PATCH /recipes/recipe/:recipeId/rating
func (h *Handler) RateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req models.RatingRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondWithError(w, err, "Bad request.")
		return
	}

	if err := h.svc.Rate(r.Context(), utils.GetUserIDFromRequest(r), ps.ByName("recipeId"), req); err != nil {
		utils.RespondWithError(w, err, "Bad request, could not find and rate this recipe.")
		return
	}
	utils.RespondMessage(w, http.StatusOK, "Recipe has been rated.")
}

// DeleteRecipe handles DELETE /recipes/recipe/:recipeId
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.svc.Delete(r.Context(), utils.GetUserIDFromRequest(r), ps.ByName("recipeId")); err != nil {
		utils.RespondWithError(w, err, "Bad request, could not find and delete this recipe.")
		return
	}
	utils.RespondMessage(w, http.StatusOK, "Recipe has been deleted.")
}
