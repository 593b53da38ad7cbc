package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"recipebox/models"
)

type mongoRecipes struct {
	col *mongo.Collection
}

func NewRecipes(col *mongo.Collection) RecipeStore {
	return &mongoRecipes{col: col}
}

func (s *mongoRecipes) Insert(ctx context.Context, r *models.Recipe) error {
	oid, err := insert(ctx, s.col, r)
	if err != nil {
		return err
	}
	r.ID = oid
	return nil
}

func (s *mongoRecipes) FindByID(ctx context.Context, id string) (*models.Recipe, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[models.Recipe](ctx, s.col, bson.M{"_id": oid})
}

func (s *mongoRecipes) List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	return findAll[models.Recipe](ctx, s.col, filter.Query())
}

func (s *mongoRecipes) Set(ctx context.Context, id string, fields bson.M) error {
	return updateByID(ctx, s.col, id, bson.M{"$set": fields})
}

func (s *mongoRecipes) AddRating(ctx context.Context, id string, rating float64) error {
	return updateByID(ctx, s.col, id, bson.M{
		"$inc": bson.M{"ratingCount": 1, "totalRating": rating},
	})
}

func (s *mongoRecipes) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col, id)
}
