package profile

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/apperr"
	"recipebox/auth"
	"recipebox/models"
	"recipebox/mq"
	"recipebox/store/storetest"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) Emit(_ context.Context, eventName string, _ mq.Index) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventName)
}

func kindOf(t *testing.T, err error) apperr.Kind {
	t.Helper()
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr), "expected *apperr.Error, got %v", err)
	return appErr.Kind
}

func seed(t *testing.T, users *storetest.Users, name, email string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email, Location: "X", Password: "hash", AccessToken: "tok-" + name}
	require.NoError(t, users.Insert(context.Background(), u))
	return u
}

func raw(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m
}

func ratingPtr(v float64) *float64 { return &v }

func TestGetRedactsOtherTokens(t *testing.T) {
	users := storetest.NewUsers()
	svc := NewService(users, mq.Nop{})
	ctx := context.Background()
	a := seed(t, users, "a", "a@x.com")
	b := seed(t, users, "b", "b@x.com")

	own, err := svc.Get(ctx, a.ID.Hex(), a.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "tok-a", own.AccessToken)

	other, err := svc.Get(ctx, a.ID.Hex(), b.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", other.Email)
	assert.Empty(t, other.AccessToken)

	list, err := svc.List(ctx, a.ID.Hex())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "tok-a", list[0].AccessToken)
	assert.Empty(t, list[1].AccessToken)
}

func TestGetMissingUser(t *testing.T) {
	svc := NewService(storetest.NewUsers(), mq.Nop{})

	_, err := svc.Get(context.Background(), "", "64b7f0c2a1b2c3d4e5f60718")
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))

	_, err = svc.Get(context.Background(), "", "not-an-id")
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
}

func TestChangePassword(t *testing.T) {
	users := storetest.NewUsers()
	events := &recorder{}
	svc := NewService(users, events)
	ctx := context.Background()
	a := seed(t, users, "a", "a@x.com")
	b := seed(t, users, "b", "b@x.com")

	err := svc.ChangePassword(ctx, b.ID.Hex(), a.ID.Hex(), models.PasswordRequest{Password: "new"})
	assert.Equal(t, apperr.KindForbidden, kindOf(t, err))

	err = svc.ChangePassword(ctx, a.ID.Hex(), a.ID.Hex(), models.PasswordRequest{})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	require.NoError(t, svc.ChangePassword(ctx, a.ID.Hex(), a.ID.Hex(), models.PasswordRequest{Password: "new"}))
	stored, err := users.FindByID(ctx, a.ID.Hex())
	require.NoError(t, err)
	assert.NotEqual(t, "new", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "new"))
	assert.Equal(t, []string{"password-changed"}, events.events)
}

func TestEdit(t *testing.T) {
	users := storetest.NewUsers()
	svc := NewService(users, mq.Nop{})
	ctx := context.Background()
	a := seed(t, users, "a", "a@x.com")
	seed(t, users, "b", "b@x.com")
	id := a.ID.Hex()

	tests := []struct {
		name string
		body string
		kind apperr.Kind
	}{
		{"protected token", `{"accessToken":"forged"}`, apperr.KindValidation},
		{"protected password", `{"password":"x"}`, apperr.KindValidation},
		{"unknown key", `{"role":"admin"}`, apperr.KindValidation},
		{"wrong type", `{"name":42}`, apperr.KindValidation},
		{"bad email", `{"email":"nope"}`, apperr.KindValidation},
		{"taken email", `{"email":"b@x.com"}`, apperr.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Edit(ctx, id, id, raw(t, tt.body))
			assert.Equal(t, tt.kind, kindOf(t, err))
		})
	}

	require.NoError(t, svc.Edit(ctx, id, id, raw(t, `{"name":"Alice","location":"Oslo"}`)))
	stored, err := users.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.Name)
	assert.Equal(t, "Oslo", stored.Location)
	assert.Equal(t, "tok-a", stored.AccessToken)
}

func TestAddRatingOncePerRecipe(t *testing.T) {
	users := storetest.NewUsers()
	svc := NewService(users, mq.Nop{})
	ctx := context.Background()
	a := seed(t, users, "a", "a@x.com")
	id := a.ID.Hex()

	req := models.UserRatingRequest{RecipeID: "r1", Rating: ratingPtr(4)}
	require.NoError(t, svc.AddRating(ctx, id, id, req))

	err := svc.AddRating(ctx, id, id, req)
	assert.Equal(t, apperr.KindConflict, kindOf(t, err))

	err = svc.AddRating(ctx, id, id, models.UserRatingRequest{RecipeID: "r2"})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	stored, err := users.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []models.Rating{{RecipeID: "r1", Rating: 4}}, stored.Ratings)
}

func TestDelete(t *testing.T) {
	users := storetest.NewUsers()
	svc := NewService(users, mq.Nop{})
	ctx := context.Background()
	a := seed(t, users, "a", "a@x.com")
	b := seed(t, users, "b", "b@x.com")

	err := svc.Delete(ctx, b.ID.Hex(), a.ID.Hex())
	assert.Equal(t, apperr.KindForbidden, kindOf(t, err))

	require.NoError(t, svc.Delete(ctx, a.ID.Hex(), a.ID.Hex()))
	require.NoError(t, svc.Delete(ctx, a.ID.Hex(), a.ID.Hex()))

	_, err = svc.Get(ctx, b.ID.Hex(), a.ID.Hex())
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
}

func TestStoreFailure(t *testing.T) {
	users := storetest.NewUsers()
	svc := NewService(users, mq.Nop{})
	a := seed(t, users, "a", "a@x.com")
	users.Err = errors.New("connection reset")

	_, err := svc.List(context.Background(), a.ID.Hex())
	assert.Equal(t, apperr.KindStoreFailure, kindOf(t, err))

	err = svc.Delete(context.Background(), a.ID.Hex(), a.ID.Hex())
	assert.Equal(t, apperr.KindStoreFailure, kindOf(t, err))
}
