package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Recipe struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Description string             `json:"description" bson:"description" validate:"required"`
	Image       string             `json:"image" bson:"image" validate:"omitempty,url"`
	Category    string             `json:"category" bson:"category" validate:"required"`
	Servings    int                `json:"servings" bson:"servings" validate:"required,gte=1"`
	BakingTime  int                `json:"bakingTime" bson:"bakingTime" validate:"gte=0"`
	Ingredients []string           `json:"ingredients" bson:"ingredients" validate:"required,min=1"`
	Steps       []string           `json:"steps" bson:"steps" validate:"required,min=1"`
	IsPublic    bool               `json:"isPublic" bson:"isPublic"`
	AddedBy     string             `json:"addedBy" bson:"addedBy" validate:"required"`
	RatingCount int                `json:"ratingCount" bson:"ratingCount"`
	TotalRating float64            `json:"totalRating" bson:"totalRating"`

	AverageRating float64 `json:"averageRating" bson:"-"`
}

// Average is totalRating / ratingCount, or 0 for an unrated recipe.
func (r *Recipe) Average() float64 {
	if r.RatingCount <= 0 {
		return 0
	}
	return r.TotalRating / float64(r.RatingCount)
}

// WithAverage fills AverageRating for serialisation.
func (r *Recipe) WithAverage() *Recipe {
	r.AverageRating = r.Average()
	return r
}

// NewRecipeRequest is the create payload. Rating counters are not accepted
// from clients and always start at zero.
type NewRecipeRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Servings    int      `json:"servings"`
	BakingTime  int      `json:"bakingTime"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	IsPublic    bool     `json:"isPublic"`
	AddedBy     string   `json:"addedBy"`
}

func (req NewRecipeRequest) Recipe() *Recipe {
	return &Recipe{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		Servings:    req.Servings,
		BakingTime:  req.BakingTime,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		IsPublic:    req.IsPublic,
		AddedBy:     req.AddedBy,
	}
}

// RatingRequest carries a rating for a recipe. Pointer so a missing value
// can be told apart from zero.
type RatingRequest struct {
	Rating *float64 `json:"rating" validate:"required"`
}

// RecipeEditable lists the fields the generic recipe edit may change.
var RecipeEditable = Schema{
	"title":       {Kind: KindString, Rule: "required"},
	"description": {Kind: KindString, Rule: "required"},
	"image":       {Kind: KindString, Rule: "omitempty,url"},
	"category":    {Kind: KindString, Rule: "required"},
	"servings":    {Kind: KindInt, Rule: "gte=1"},
	"bakingTime":  {Kind: KindInt, Rule: "gte=0"},
	"ingredients": {Kind: KindStringList, Rule: "min=1"},
	"steps":       {Kind: KindStringList, Rule: "min=1"},
	"isPublic":    {Kind: KindBool},
}
