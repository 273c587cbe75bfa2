package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory_api/internal/handlers"
	"github.com/Skotchmaster/inventory_api/internal/hash"
	"github.com/Skotchmaster/inventory_api/internal/httperr"
	"github.com/Skotchmaster/inventory_api/internal/httpserver"
	"github.com/Skotchmaster/inventory_api/internal/models"
	"github.com/Skotchmaster/inventory_api/internal/service"
	"github.com/Skotchmaster/inventory_api/internal/validation"
)

var dbSeq atomic.Int64

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

// newTestEnv wires the full router against an in-memory store so requests
// travel the same middleware and error-shaping path as in production.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.AuthToken{}))

	e := echo.New()
	e.Validator = validation.New()
	e.HTTPErrorHandler = httperr.ErrorHandler()

	tokens := &service.TokenService{DB: db}
	httpserver.Register(e, &httpserver.Deps{
		DB:             db,
		AuthHandler:    &handlers.AuthHandler{DB: db, Tokens: tokens},
		ProfileHandler: &handlers.ProfileHandler{DB: db},
		ProductHandler: &handlers.ProductHandler{DB: db},
		SearchHandler:  &handlers.SearchHandler{DB: db},
	})

	return &testEnv{T: t, E: e, DB: db}
}

func (env *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) decode(rec *httptest.ResponseRecorder, dst any) {
	env.T.Helper()
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), dst))
}

// createUser seeds a user and returns it with a valid bearer token key.
func (env *testEnv) createUser(username string, staff bool) (models.User, string) {
	env.T.Helper()

	pwHash, err := hash.HashPassword("password123")
	require.NoError(env.T, err)

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: pwHash,
		IsStaff:      staff,
	}
	require.NoError(env.T, env.DB.Create(&user).Error)

	tokens := &service.TokenService{DB: env.DB}
	token, err := tokens.GetOrCreate(env.T.Context(), user.ID)
	require.NoError(env.T, err)

	return user, token.Key
}

func (env *testEnv) createProduct(creator models.User, name, category string, price float64, stock int) models.Product {
	env.T.Helper()

	product := models.Product{
		Name:          name,
		Description:   "seeded",
		Price:         price,
		Category:      category,
		StockQuantity: stock,
		CreatedByID:   creator.ID,
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return product
}

func (env *testEnv) productCount() int64 {
	env.T.Helper()
	var n int64
	require.NoError(env.T, env.DB.Model(&models.Product{}).Count(&n).Error)
	return n
}

func requireEnvelope(t *testing.T, rec *httptest.ResponseRecorder, status int) httperr.Envelope {
	t.Helper()
	require.Equal(t, status, rec.Code)

	var env httperr.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, status, env.StatusCode)
	require.NotEmpty(t, env.Message)
	return env
}
