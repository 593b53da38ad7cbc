package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"recipebox/apperr"
	"recipebox/models"
)

func TestRecipeFilterQuery(t *testing.T) {
	assert.Equal(t, bson.M{}, RecipeFilter{}.Query())
	assert.Equal(t, bson.M{"isPublic": true}, RecipeFilter{PublicOnly: true}.Query())
	assert.Equal(t, bson.M{"addedBy": "u1"}, RecipeFilter{AddedBy: "u1"}.Query())
	assert.Equal(t,
		bson.M{"$or": []bson.M{{"addedBy": "u1"}, {"isPublic": true}}},
		RecipeFilter{PublicOnly: true, AddedBy: "u1"}.Query())
}

func TestRecipeFilterMatches(t *testing.T) {
	mine := &models.Recipe{AddedBy: "u1"}
	theirsPublic := &models.Recipe{AddedBy: "u2", IsPublic: true}
	theirsPrivate := &models.Recipe{AddedBy: "u2"}

	tests := []struct {
		name   string
		filter RecipeFilter
		want   []bool
	}{
		{"all", RecipeFilter{}, []bool{true, true, true}},
		{"public", RecipeFilter{PublicOnly: true}, []bool{false, true, false}},
		{"owner", RecipeFilter{AddedBy: "u1"}, []bool{true, false, false}},
		{"owner or public", RecipeFilter{PublicOnly: true, AddedBy: "u1"}, []bool{true, true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []bool{tt.filter.Matches(mine), tt.filter.Matches(theirsPublic), tt.filter.Matches(theirsPrivate)}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestObjectID(t *testing.T) {
	_, err := objectID("not-hex")
	assert.ErrorIs(t, err, ErrInvalidID)

	oid, err := objectID("64b7f0c2a1b2c3d4e5f60718")
	assert.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", oid.Hex())
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(mongo.ErrNoDocuments), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, translate(dup), ErrDuplicate)

	other := errors.New("boom")
	assert.Same(t, other, translate(other))
}

func TestAppError(t *testing.T) {
	assert.NoError(t, AppError(nil, "nf", "fail"))

	var appErr *apperr.Error
	assert.True(t, errors.As(AppError(ErrNotFound, "Recipe not found.", "fail"), &appErr))
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
	assert.Equal(t, "Recipe not found.", appErr.Message)

	assert.True(t, errors.As(AppError(fmt.Errorf("%w: %q", ErrInvalidID, "x"), "nf", "Bad request."), &appErr))
	assert.Equal(t, apperr.KindValidation, appErr.Kind)

	assert.True(t, errors.As(AppError(errors.New("boom"), "nf", "Bad request."), &appErr))
	assert.Equal(t, apperr.KindStoreFailure, appErr.Kind)
}
