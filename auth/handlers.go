package auth

import (
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

// Register handles POST /register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.RegisterRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondWithError(w, err, "Bad request.")
		return
	}

	user, err := h.svc.Register(r.Context(), req)
	if err != nil {
		utils.RespondWithError(w, err, "Bad request.")
		return
	}
	utils.Respond(w, http.StatusCreated, user)
}

// Login handles POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.LoginRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondWithError(w, err, "Bad request.")
		return
	}

	resp, err := h.svc.Login(r.Context(), req)
	if err != nil {
		utils.RespondWithError(w, err, "Bad request.")
		return
	}
	utils.Respond(w, http.StatusOK, resp)
}
