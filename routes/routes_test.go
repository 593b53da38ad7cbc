package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/auth"
	"recipebox/mq"
	"recipebox/profile"
	"recipebox/ratelim"
	"recipebox/recipes"
	"recipebox/store/storetest"
)

type envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"status_code"`
	Response   json.RawMessage `json:"response"`
}

type client struct {
	t      *testing.T
	server *httptest.Server
}

func newClient(t *testing.T) *client {
	t.Helper()
	users := storetest.NewUsers()
	recipeStore := storetest.NewRecipes()

	router := SetupRouter(Deps{
		Users:       users,
		Auth:        auth.NewHandler(auth.NewService(users, auth.NewTokenIssuer([]byte("secret")), mq.Nop{})),
		Profile:     profile.NewHandler(profile.NewService(users, mq.Nop{})),
		Recipes:     recipes.NewHandler(recipes.NewService(recipeStore, mq.Nop{})),
		RateLimiter: ratelim.NewRateLimiter(1000, 1000),
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &client{t: t, server: server}
}

func (c *client) do(method, path, token, body string, out any) (int, envelope) {
	c.t.Helper()
	req, err := http.NewRequest(method, c.server.URL+path, strings.NewReader(body))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(c.t, resp.StatusCode, env.StatusCode, "%s %s", method, path)
	if out != nil {
		require.NoError(c.t, json.Unmarshal(env.Response, out))
	}
	return resp.StatusCode, env
}

func TestEndToEnd(t *testing.T) {
	c := newClient(t)

	var user struct {
		ID          string `json:"_id"`
		AccessToken string `json:"accessToken"`
	}
	status, _ := c.do(http.MethodPost, "/register", "", `{"name":"A","email":"a@x.com","password":"pw","location":"X"}`, &user)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, user.ID)
	require.NotEmpty(t, user.AccessToken)

	var login struct {
		UserID      string `json:"userId"`
		AccessToken string `json:"accessToken"`
	}
	status, _ = c.do(http.MethodPost, "/login", "", `{"email":"a@x.com","password":"pw"}`, &login)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, user.ID, login.UserID)
	assert.NotEqual(t, user.AccessToken, login.AccessToken)
	t1 := login.AccessToken

	status, _ = c.do(http.MethodGet, "/users/user/"+user.ID, user.AccessToken, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status, "registration token is replaced at login")

	var recipe struct {
		ID          string  `json:"_id"`
		AddedBy     string  `json:"addedBy"`
		RatingCount int     `json:"ratingCount"`
		TotalRating float64 `json:"totalRating"`
	}
	body := `{"title":"Pie","description":"Apple pie","category":"dessert","servings":6,"bakingTime":50,` +
		`"ingredients":["apples","flour"],"steps":["peel","bake"],"isPublic":false,"addedBy":"` + user.ID + `"}`
	status, _ = c.do(http.MethodPost, "/recipes", t1, body, &recipe)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, user.ID, recipe.AddedBy)

	var public []json.RawMessage
	status, _ = c.do(http.MethodGet, "/recipes/public", "", "", &public)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, public)

	var mine []json.RawMessage
	status, _ = c.do(http.MethodGet, "/recipes/user/"+user.ID+"/public", t1, "", &mine)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, mine, 1)

	status, env := c.do(http.MethodPatch, "/recipes/recipe/"+recipe.ID+"/rating", t1, `{"rating":5}`, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Recipe has been rated."}`, string(env.Response))

	status, _ = c.do(http.MethodGet, "/recipes/recipe/"+recipe.ID, "", "", &recipe)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, recipe.RatingCount)
	assert.Equal(t, 5.0, recipe.TotalRating)

	status, _ = c.do(http.MethodPatch, "/users/user/"+user.ID+"/edit/rating", t1, `{"recipeId":"`+recipe.ID+`","rating":5}`, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = c.do(http.MethodPatch, "/users/user/"+user.ID+"/edit/rating", t1, `{"recipeId":"`+recipe.ID+`","rating":5}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = c.do(http.MethodDelete, "/recipes/recipe/"+recipe.ID, t1, "", nil)
	assert.Equal(t, http.StatusOK, status)
	status, env = c.do(http.MethodGet, "/recipes/recipe/"+recipe.ID, "", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"message":"Recipe not found."}`, string(env.Response))
}

func TestRecipeRatingAcceptsFractions(t *testing.T) {
	c := newClient(t)

	var user struct {
		AccessToken string `json:"accessToken"`
	}
	c.do(http.MethodPost, "/register", "", `{"name":"A","email":"a@x.com","password":"pw","location":"X"}`, &user)

	var recipe struct {
		ID            string  `json:"_id"`
		RatingCount   int     `json:"ratingCount"`
		TotalRating   float64 `json:"totalRating"`
		AverageRating float64 `json:"averageRating"`
	}
	body := `{"title":"Soup","description":"Leek soup","category":"starter","servings":2,` +
		`"ingredients":["leeks"],"steps":["simmer"],"isPublic":true}`
	status, _ := c.do(http.MethodPost, "/recipes", user.AccessToken, body, &recipe)
	require.Equal(t, http.StatusCreated, status)

	for _, rating := range []string{`{"rating":4.5}`, `{"rating":3}`} {
		status, _ = c.do(http.MethodPatch, "/recipes/recipe/"+recipe.ID+"/rating", user.AccessToken, rating, nil)
		require.Equal(t, http.StatusOK, status, rating)
	}

	status, _ = c.do(http.MethodGet, "/recipes/recipe/"+recipe.ID, "", "", &recipe)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, recipe.RatingCount)
	assert.Equal(t, 7.5, recipe.TotalRating)
	assert.Equal(t, 3.75, recipe.AverageRating)

	status, env := c.do(http.MethodPatch, "/recipes/recipe/"+recipe.ID+"/rating", user.AccessToken, `{"rating":"five"}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(env.Response), "must be a number")
}

func TestInvalidLoginLeavesTokenUnchanged(t *testing.T) {
	c := newClient(t)

	var user struct {
		ID          string `json:"_id"`
		AccessToken string `json:"accessToken"`
	}
	c.do(http.MethodPost, "/register", "", `{"name":"A","email":"a@x.com","password":"pw","location":"X"}`, &user)

	for _, body := range []string{`{"email":"a@x.com","password":"wrong"}`, `{"email":"b@x.com","password":"pw"}`} {
		status, env := c.do(http.MethodPost, "/login", "", body, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.False(t, env.Success)
	}

	status, _ := c.do(http.MethodGet, "/users/user/"+user.ID, user.AccessToken, "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	c := newClient(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/user/64b7f0c2a1b2c3d4e5f60711"},
		{http.MethodPost, "/recipes"},
		{http.MethodGet, "/recipes/user/64b7f0c2a1b2c3d4e5f60711"},
		{http.MethodPatch, "/recipes/recipe/64b7f0c2a1b2c3d4e5f60711/rating"},
		{http.MethodDelete, "/recipes/recipe/64b7f0c2a1b2c3d4e5f60711"},
	}
	for _, rt := range routes {
		status, env := c.do(rt.method, rt.path, "", "{}", nil)
		assert.Equal(t, http.StatusUnauthorized, status, "%s %s", rt.method, rt.path)
		assert.JSONEq(t, `{"message":"Please log in / You are logged out"}`, string(env.Response))
	}
}

func TestWelcomeAndEndpoints(t *testing.T) {
	c := newClient(t)

	status, _ := c.do(http.MethodGet, "/", "", "", nil)
	assert.Equal(t, http.StatusOK, status)

	var endpoints []Endpoint
	status, _ = c.do(http.MethodGet, "/endpoints", "", "", &endpoints)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, endpoints, Endpoint{Path: "/recipes/recipe/:recipeId", Methods: []string{"GET", "PATCH", "DELETE"}})
	assert.Contains(t, endpoints, Endpoint{Path: "/users/user/:userId", Methods: []string{"GET", "DELETE"}})

	status, env := c.do(http.MethodGet, "/nope", "", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
}
