package auth

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"recipebox/apperr"
	"recipebox/models"
	"recipebox/mq"
	"recipebox/store"
	"recipebox/validation"
)

const msgBadCredentials = "Sorry, credentials do not match."

type Service struct {
	users  store.UserStore
	tokens *TokenIssuer
	events mq.Emitter
}

func NewService(users store.UserStore, tokens *TokenIssuer, events mq.Emitter) *Service {
	return &Service{users: users, tokens: tokens, events: events}
}

// Register creates a user with a hashed password, an empty rating history
// and a fresh access token.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindInternal, Message: "Could not register user.", Err: err}
	}

	u := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Location: req.Location,
		Ratings:  []models.Rating{},
	}
	if u.AccessToken, err = s.tokens.Issue(u.ID.Hex()); err != nil {
		return nil, &apperr.Error{Kind: apperr.KindInternal, Message: "Could not register user.", Err: err}
	}

	if err := s.users.Insert(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Validation("Bad request.", map[string]string{"email": "is already registered"})
		}
		return nil, apperr.StoreFailure("Bad request.", err)
	}

	s.events.Emit(ctx, "user-registered", mq.Index{EntityType: "user", Method: "POST", EntityId: u.ID.Hex()})
	return u, nil
}

// Login verifies the credentials and rotates the access token, which
// invalidates any token issued earlier. Unknown email and wrong password
// are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	u, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Unauthenticated(msgBadCredentials)
	}
	if err != nil {
		return nil, apperr.StoreFailure("Bad request.", err)
	}
	if !CheckPassword(u.Password, req.Password) {
		return nil, apperr.Unauthenticated(msgBadCredentials)
	}

	userID := u.ID.Hex()
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindInternal, Message: "Could not log in.", Err: err}
	}
	if err := s.users.Set(ctx, userID, bson.M{"accessToken": token}); err != nil {
		return nil, apperr.StoreFailure("Bad request.", err)
	}

	return &models.LoginResponse{UserID: userID, AccessToken: token}, nil
}
