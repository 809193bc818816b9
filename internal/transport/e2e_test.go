package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"account-service/internal/config"
	"account-service/internal/db"
	"account-service/internal/role"
	"account-service/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSQLiteServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{DBDriver: config.DriverSQLite, DBPath: filepath.Join(t.TempDir(), "e2e.db")}
	database, err := db.NewDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.Migrate(context.Background(), database, config.DriverSQLite))

	roles := role.NewRepository(database)
	svc := user.NewService(user.NewRepository(database), roles, user.NewBcryptHasher(bcrypt.MinCost))
	return newTestServer(svc, roles, database)
}

func TestEndToEnd_SignupLoginList(t *testing.T) {
	srv := newSQLiteServer(t)

	body := strings.Replace(signupBody, `"country": "Kenya"`, `"country": "Kenya", "role": "Learner"`, 1)
	w := do(srv, http.MethodPost, "/signup", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(srv, http.MethodPost, "/login", `{"email":"jane@example.com","password":"Abcdef1!"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(srv, http.MethodPost, "/login", `{"email":"jane@example.com","password":"Abcdef1?"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(srv, http.MethodPost, "/signup", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(srv, http.MethodGet, "/get_users", "")
	require.Equal(t, http.StatusOK, w.Code)

	var users []user.UserView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "jane@example.com", users[0].Email)
	assert.Equal(t, role.Learner, users[0].RoleName)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestEndToEnd_RejectedSignups(t *testing.T) {
	srv := newSQLiteServer(t)

	weak := strings.ReplaceAll(signupBody, "Abcdef1!", "abc")
	w := do(srv, http.MethodPost, "/signup", weak)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	ghost := strings.Replace(signupBody, `"country": "Kenya"`, `"country": "Kenya", "role": "Ghost"`, 1)
	w = do(srv, http.MethodPost, "/signup", ghost)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Ghost")

	w = do(srv, http.MethodGet, "/get_users", "")
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(srv, http.MethodGet, "/roles", "")
	assert.JSONEq(t, `[{"id":1,"name":"Learner"},{"id":2,"name":"HR"},{"id":3,"name":"Manager"},{"id":4,"name":"Instructor"}]`, w.Body.String())
}
