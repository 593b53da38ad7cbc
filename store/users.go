package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"recipebox/models"
)

type mongoUsers struct {
	col *mongo.Collection
}

func NewUsers(col *mongo.Collection) UserStore {
	return &mongoUsers{col: col}
}

func (s *mongoUsers) Insert(ctx context.Context, u *models.User) error {
	if u.Ratings == nil {
		u.Ratings = []models.Rating{}
	}
	oid, err := insert(ctx, s.col, u)
	if err != nil {
		return err
	}
	u.ID = oid
	return nil
}

func (s *mongoUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[models.User](ctx, s.col, bson.M{"_id": oid})
}

func (s *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, s.col, bson.M{"email": email})
}

func (s *mongoUsers) FindByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return findOne[models.User](ctx, s.col, bson.M{"accessToken": token})
}

func (s *mongoUsers) List(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, s.col, bson.M{})
}

func (s *mongoUsers) Set(ctx context.Context, id string, fields bson.M) error {
	return updateByID(ctx, s.col, id, bson.M{"$set": fields})
}

// AddRating pushes only when no entry for the recipe exists yet. A miss is
// resolved with a second lookup to tell a missing user from a repeat.
func (s *mongoUsers) AddRating(ctx context.Context, id string, rating models.Rating) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.col.UpdateOne(opCtx,
		bson.M{"_id": oid, "ratings.recipeId": bson.M{"$ne": rating.RecipeID}},
		bson.M{"$push": bson.M{"ratings": rating}},
	)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := s.col.CountDocuments(opCtx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrDuplicate
}

func (s *mongoUsers) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.col, id)
}
