package profile

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

// GetUsers handles GET /users
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := h.svc.List(r.Context(), utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, err, "Bad request.")
		return
	}
	utils.Respond(w, http.StatusOK, users)
}

// GetProfile handles GET /users/user/:userId
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, err := h.svc.Get(r.Context(), utils.GetUserIDFromRequest(r), ps.ByName("userId"))
	if err != nil {
		utils.RespondWithError(w, err, "Bad request.")
		return
	}
	utils.Respond(w, http.StatusOK, user)
}

// EditPassword handles PATCH /users/user/:userId/edit/password
func (h *Handler) EditPassword(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req models.PasswordRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondWithError(w, err, "Bad request.")
		return
	}

	if err := h.svc.ChangePassword(r.Context(), utils.GetUserIDFromRequest(r), ps.ByName("userId"), req); err != nil {
		utils.RespondWithError(w, err, "Bad request, could not update the password.")
		return
	}
	utils.RespondMessage(w, http.StatusOK, "Password has been updated.")
}

// EditProfile handles PATCH /users/user/:userId/edit/other
func (h *Handler) EditProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body map[string]json.RawMessage
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		utils.RespondWithError(w, err, "Bad request.")
		return
	}

	if err := h.svc.Edit(r.Context(), utils.GetUserIDFromRequest(r), ps.ByName("userId"), body); err != nil {
		utils.RespondWithError(w, err, "Bad request, could not find and update this user.")
		return
	}
	utils.RespondMessage(w, http.StatusOK, "User has been updated.")
}

// AddRating handles PATCH /users/user/:userId/edit/rating
func (h *Handler) AddRating(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req models.UserRatingRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondWithError(w, err, "Bad request.")
		return
	}

	if err := h.svc.AddRating(r.Context(), utils.GetUserIDFromRequest(r), ps.ByName("userId"), req); err != nil {
		utils.RespondWithError(w, err, "Bad request, could not add the rating.")
		return
	}
	utils.RespondMessage(w, http.StatusOK, "Rating has been added.")
}

// DeleteProfile handles DELETE /users/user/:userId
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.svc.Delete(r.Context(), utils.GetUserIDFromRequest(r), ps.ByName("userId")); err != nil {
		utils.RespondWithError(w, err, "Bad request, could not delete this user.")
		return
	}
	utils.RespondMessage(w, http.StatusOK, "User has been deleted.")
}
