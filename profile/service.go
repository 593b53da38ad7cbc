package profile

import (
	"context"
	"encoding/json"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"recipebox/apperr"
	"recipebox/auth"
	"recipebox/models"
	"recipebox/mq"
	"recipebox/store"
	"recipebox/validation"
)

const (
	msgBadRequest   = "Bad request."
	msgUserNotFound = "User not found."
	msgNotYours     = "You can only change your own profile."
)

type Service struct {
	users  store.UserStore
	events mq.Emitter
}

func NewService(users store.UserStore, events mq.Emitter) *Service {
	return &Service{users: users, events: events}
}

// redact hides another user's access token from the caller.
func redact(u *models.User, actorID string) *models.User {
	if u.ID.Hex() != actorID {
		u.AccessToken = ""
	}
	return u
}

func authorizeSelf(actorID, userID string) error {
	if actorID == "" || actorID != userID {
		return apperr.Forbidden(msgNotYours)
	}
	return nil
}

// List returns every user. Tokens of users other than the caller are
// omitted.
func (s *Service) List(ctx context.Context, actorID string) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperr.StoreFailure(msgBadRequest, err)
	}
	for i := range users {
		redact(&users[i], actorID)
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, actorID, userID string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, store.AppError(err, msgUserNotFound, msgBadRequest)
	}
	return redact(u, actorID), nil
}

// ChangePassword re-hashes and stores a new password for the caller.
func (s *Service) ChangePassword(ctx context.Context, actorID, userID string, req models.PasswordRequest) error {
	if err := authorizeSelf(actorID, userID); err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return &apperr.Error{Kind: apperr.KindInternal, Message: "Could not update password.", Err: err}
	}
	if err := s.users.Set(ctx, userID, bson.M{"password": hash}); err != nil {
		return store.AppError(err, msgUserNotFound, msgBadRequest)
	}

	s.events.Emit(ctx, "password-changed", mq.Index{EntityType: "user", Method: "PATCH", EntityId: userID, UserId: actorID})
	return nil
}

// Edit merges the allow-listed profile fields in body into the stored user.
func (s *Service) Edit(ctx context.Context, actorID, userID string, body map[string]json.RawMessage) error {
	if err := authorizeSelf(actorID, userID); err != nil {
		return err
	}
	fields, err := models.UserEditable.Apply(body)
	if err != nil {
		return err
	}

	if err := s.users.Set(ctx, userID, fields); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return apperr.Validation(msgBadRequest, map[string]string{"email": "is already registered"})
		}
		return store.AppError(err, msgUserNotFound, msgBadRequest)
	}

	s.events.Emit(ctx, "profile-edited", mq.Index{EntityType: "user", Method: "PATCH", EntityId: userID, UserId: actorID})
	return nil
}

// AddRating appends a recipe rating to the caller's history. A recipe can
// appear there at most once.
func (s *Service) AddRating(ctx context.Context, actorID, userID string, req models.UserRatingRequest) error {
	if err := authorizeSelf(actorID, userID); err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	rating := models.Rating{RecipeID: req.RecipeID, Rating: *req.Rating}
	if err := s.users.AddRating(ctx, userID, rating); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return apperr.Conflict("Recipe already rated.")
		}
		return store.AppError(err, msgUserNotFound, msgBadRequest)
	}
	return nil
}

// Delete removes the caller's account. Recipes they added are kept.
func (s *Service) Delete(ctx context.Context, actorID, userID string) error {
	if err := authorizeSelf(actorID, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return store.AppError(err, msgUserNotFound, msgBadRequest)
	}

	s.events.Emit(ctx, "user-deleted", mq.Index{EntityType: "user", Method: "DELETE", EntityId: userID, UserId: actorID})
	return nil
}
