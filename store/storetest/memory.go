// Package storetest provides in-memory implementations of the store
// interfaces for tests.
package storetest

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"recipebox/models"
	"recipebox/store"
)

// Err, when set, is returned by every call; it simulates an unavailable
// store.
type Users struct {
	mu    sync.Mutex
	docs  map[primitive.ObjectID]*models.User
	order []primitive.ObjectID
	Err   error
}

func NewUsers() *Users {
	return &Users{docs: map[primitive.ObjectID]*models.User{}}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrInvalidID
	}
	return oid, nil
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.Ratings = append([]models.Rating{}, u.Ratings...)
	return &c
}

func (s *Users) Insert(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.docs {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	if u.Ratings == nil {
		u.Ratings = []models.Rating{}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.docs[u.ID] = copyUser(u)
	s.order = append(s.order, u.ID)
	return nil
}

func (s *Users) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	u, ok := s.docs[oid]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyUser(u), nil
}

func (s *Users) findBy(match func(*models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, oid := range s.order {
		if u, ok := s.docs[oid]; ok && match(u) {
			return copyUser(u), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findBy(func(u *models.User) bool { return u.Email == email })
}

func (s *Users) FindByToken(_ context.Context, token string) (*models.User, error) {
	if token == "" && s.Err == nil {
		return nil, store.ErrNotFound
	}
	return s.findBy(func(u *models.User) bool { return u.AccessToken == token })
}

func (s *Users) List(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.User{}
	for _, oid := range s.order {
		if u, ok := s.docs[oid]; ok {
			out = append(out, *copyUser(u))
		}
	}
	return out, nil
}

func (s *Users) Set(_ context.Context, id string, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	u, ok := s.docs[oid]
	if !ok {
		return store.ErrNotFound
	}
	if email, ok := fields["email"].(string); ok {
		for other, existing := range s.docs {
			if other != oid && existing.Email == email {
				return store.ErrDuplicate
			}
		}
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "email":
			u.Email = v.(string)
		case "location":
			u.Location = v.(string)
		case "password":
			u.Password = v.(string)
		case "accessToken":
			u.AccessToken = v.(string)
		}
	}
	return nil
}

func (s *Users) AddRating(_ context.Context, id string, rating models.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	u, ok := s.docs[oid]
	if !ok {
		return store.ErrNotFound
	}
	if u.HasRated(rating.RecipeID) {
		return store.ErrDuplicate
	}
	u.Ratings = append(u.Ratings, rating)
	return nil
}

func (s *Users) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	delete(s.docs, oid)
	return nil
}

type Recipes struct {
	mu    sync.Mutex
	docs  map[primitive.ObjectID]*models.Recipe
	order []primitive.ObjectID
	Err   error
}

func NewRecipes() *Recipes {
	return &Recipes{docs: map[primitive.ObjectID]*models.Recipe{}}
}

func copyRecipe(r *models.Recipe) *models.Recipe {
	c := *r
	c.Ingredients = append([]string(nil), r.Ingredients...)
	c.Steps = append([]string(nil), r.Steps...)
	c.AverageRating = 0
	return &c
}

func (s *Recipes) Insert(_ context.Context, r *models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	r.ID = primitive.NewObjectID()
	s.docs[r.ID] = copyRecipe(r)
	s.order = append(s.order, r.ID)
	return nil
}

func (s *Recipes) FindByID(_ context.Context, id string) (*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r, ok := s.docs[oid]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyRecipe(r), nil
}

func (s *Recipes) List(_ context.Context, filter store.RecipeFilter) ([]models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.Recipe{}
	for _, oid := range s.order {
		if r, ok := s.docs[oid]; ok && filter.Matches(r) {
			out = append(out, *copyRecipe(r))
		}
	}
	return out, nil
}

func (s *Recipes) Set(_ context.Context, id string, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	r, ok := s.docs[oid]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			r.Title = v.(string)
		case "description":
			r.Description = v.(string)
		case "image":
			r.Image = v.(string)
		case "category":
			r.Category = v.(string)
		case "servings":
			r.Servings = v.(int)
		case "bakingTime":
			r.BakingTime = v.(int)
		case "ingredients":
			r.Ingredients = v.([]string)
		case "steps":
			r.Steps = v.([]string)
		case "isPublic":
			r.IsPublic = v.(bool)
		}
	}
	return nil
}

func (s *Recipes) AddRating(_ context.Context, id string, rating float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	r, ok := s.docs[oid]
	if !ok {
		return store.ErrNotFound
	}
	r.RatingCount++
	r.TotalRating += rating
	return nil
}

func (s *Recipes) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	delete(s.docs, oid)
	return nil
}

var (
	_ store.UserStore   = (*Users)(nil)
	_ store.RecipeStore = (*Recipes)(nil)
)
