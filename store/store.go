// Package store is the document-store adapter for users and recipes.
// Ids cross this boundary as hex strings; every method issues a single
// store round trip unless noted otherwise.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"recipebox/models"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")
	ErrInvalidID = errors.New("invalid id")
)

// RecipeFilter selects recipes for listing. The zero value matches every
// recipe; PublicOnly and AddedBy combined match either condition.
type RecipeFilter struct {
	PublicOnly bool
	AddedBy    string
}

// Matches applies the filter to a single recipe.
func (f RecipeFilter) Matches(r *models.Recipe) bool {
	switch {
	case f.PublicOnly && f.AddedBy != "":
		return r.IsPublic || r.AddedBy == f.AddedBy
	case f.PublicOnly:
		return r.IsPublic
	case f.AddedBy != "":
		return r.AddedBy == f.AddedBy
	default:
		return true
	}
}

// Query renders the filter as a Mongo query document.
func (f RecipeFilter) Query() bson.M {
	switch {
	case f.PublicOnly && f.AddedBy != "":
		return bson.M{"$or": []bson.M{{"addedBy": f.AddedBy}, {"isPublic": true}}}
	case f.PublicOnly:
		return bson.M{"isPublic": true}
	case f.AddedBy != "":
		return bson.M{"addedBy": f.AddedBy}
	default:
		return bson.M{}
	}
}

type UserStore interface {
	// Insert persists u and assigns its ID. ErrDuplicate on a taken email.
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByToken(ctx context.Context, token string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// Set merges fields into the stored document. ErrNotFound if absent.
	Set(ctx context.Context, id string, fields bson.M) error
	// AddRating appends to the rating history unless the recipe is already
	// present, in which case it returns ErrDuplicate.
	AddRating(ctx context.Context, id string, rating models.Rating) error
	// Delete removes the user; a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

type RecipeStore interface {
	Insert(ctx context.Context, r *models.Recipe) error
	FindByID(ctx context.Context, id string) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error)
	Set(ctx context.Context, id string, fields bson.M) error
	// AddRating atomically increments ratingCount by one and totalRating
	// by rating.
	AddRating(ctx context.Context, id string, rating float64) error
	Delete(ctx context.Context, id string) error
}
