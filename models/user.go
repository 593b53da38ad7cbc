package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Rating is one entry of a user's rating history.
type Rating struct {
	RecipeID string  `json:"recipeId" bson:"recipeId" validate:"required"`
	Rating   float64 `json:"rating" bson:"rating"`
}

type User struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Password    string             `json:"-" bson:"password"`
	Location    string             `json:"location" bson:"location"`
	AccessToken string             `json:"accessToken,omitempty" bson:"accessToken"`
	Ratings     []Rating           `json:"ratings" bson:"ratings"`
}

// HasRated reports whether the user already rated recipeID.
func (u *User) HasRated(recipeID string) bool {
	for _, r := range u.Ratings {
		if r.RecipeID == recipeID {
			return true
		}
	}
	return false
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Location string `json:"location" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken"`
}

// UserRatingRequest records a rating in the user's history.
type UserRatingRequest struct {
	RecipeID string   `json:"recipeId" validate:"required"`
	Rating   *float64 `json:"rating" validate:"required"`
}

type PasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// UserEditable lists the profile fields the generic edit may change.
var UserEditable = Schema{
	"name":     {Kind: KindString, Rule: "required"},
	"email":    {Kind: KindString, Rule: "required,email"},
	"location": {Kind: KindString, Rule: "required"},
}
