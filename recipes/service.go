package recipes

import (
	"context"
	"encoding/json"

	"recipebox/apperr"
	"recipebox/models"
	"recipebox/mq"
	"recipebox/store"
	"recipebox/utils"
	"recipebox/validation"
)

const (
	msgBadRequest     = "Bad request."
	msgRecipeNotFound = "Recipe not found."
	msgNotOwner       = "Only the author can change this recipe."
)

type Service struct {
	recipes store.RecipeStore
	events  mq.Emitter
}

func NewService(recipes store.RecipeStore, events mq.Emitter) *Service {
	return &Service{recipes: recipes, events: events}
}

// Add stores a new recipe authored by actorID. An empty addedBy defaults
// to the caller; naming someone else is forbidden.
func (s *Service) Add(ctx context.Context, actorID string, req models.NewRecipeRequest) (*models.Recipe, error) {
	if req.AddedBy == "" {
		req.AddedBy = actorID
	}
	if req.AddedBy != actorID {
		return nil, apperr.Forbidden("Recipes can only be added in your own name.")
	}

	recipe := req.Recipe()
	if err := validation.Struct(recipe); err != nil {
		return nil, err
	}
	if err := s.recipes.Insert(ctx, recipe); err != nil {
		return nil, apperr.StoreFailure(msgBadRequest, err)
	}

	s.events.Emit(ctx, "recipe-added", mq.Index{EntityType: "recipe", Method: "POST", EntityId: recipe.ID.Hex(), UserId: actorID})
	return recipe.WithAverage(), nil
}

func (s *Service) List(ctx context.Context, filter store.RecipeFilter) ([]models.Recipe, error) {
	list, err := s.recipes.List(ctx, filter)
	if err != nil {
		return nil, apperr.StoreFailure(msgBadRequest, err)
	}
	for i := range list {
		list[i].WithAverage()
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, recipeID string) (*models.Recipe, error) {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, store.AppError(err, msgRecipeNotFound, msgBadRequest)
	}
	return recipe.WithAverage(), nil
}

// owned loads a recipe and checks that actorID added it.
func (s *Service) owned(ctx context.Context, actorID, recipeID, failure string) (*models.Recipe, error) {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, store.AppError(err, msgRecipeNotFound, failure)
	}
	if recipe.AddedBy != actorID {
		return nil, apperr.Forbidden(msgNotOwner)
	}
	return recipe, nil
}

// Edit merges the allow-listed fields in body into the recipe.
func (s *Service) Edit(ctx context.Context, actorID, recipeID string, body map[string]json.RawMessage) error {
	const failure = "Bad request, could not find and update this recipe."

	if _, err := s.owned(ctx, actorID, recipeID, failure); err != nil {
		return err
	}
	fields, err := models.RecipeEditable.Apply(body)
	if err != nil {
		return err
	}
	if err := s.recipes.Set(ctx, recipeID, fields); err != nil {
		return store.AppError(err, msgRecipeNotFound, failure)
	}

	s.events.Emit(ctx, "recipe-edited", mq.Index{EntityType: "recipe", Method: "PATCH", EntityId: recipeID, UserId: actorID})
	return nil
}

// Rate adds one rating to the recipe counters. Any integer is accepted and
// repeated calls keep adding; the per-user guard lives on the profile side.
func (s *Service) Rate(ctx context.Context, actorID, recipeID string, req models.RatingRequest) error {
	const failure = "Bad request, could not find and rate this recipe."

	if err := validation.Struct(req); err != nil {
		return err
	}
	if err := s.recipes.AddRating(ctx, recipeID, *req.Rating); err != nil {
		return store.AppError(err, msgRecipeNotFound, failure)
	}

	s.events.Emit(ctx, "recipe-rated", mq.Index{EntityType: "recipe", Method: "PATCH", EntityId: recipeID, UserId: actorID, Value: *req.Rating})
	return nil
}

// Delete removes the recipe. A recipe that is already gone counts as
// deleted.
func (s *Service) Delete(ctx context.Context, actorID, recipeID string) error {
	const failure = "Bad request, could not find and delete this recipe."

	if _, err := s.owned(ctx, actorID, recipeID, failure); err != nil {
		if utils.IsAppKind(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}
	if err := s.recipes.Delete(ctx, recipeID); err != nil {
		return store.AppError(err, msgRecipeNotFound, failure)
	}

	s.events.Emit(ctx, "recipe-deleted", mq.Index{EntityType: "recipe", Method: "DELETE", EntityId: recipeID, UserId: actorID})
	return nil
}
