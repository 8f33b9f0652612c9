package endpoints

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/argus/internal/http/api"
	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

type memStore struct {
	nextID int
	users  map[string]*model.User
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, users: make(map[string]*model.User)}
}

func (m *memStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	id := m.nextID
	m.nextID++
	m.users[email] = &model.User{ID: id, Email: email, HashedPassword: hashedPassword, Name: name}
	return id, nil
}

func (m *memStore) GetUserByEmail(email string) (*model.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *memStore) GetUserByID(id int) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) UpdateUserProfile(id int, email string, name *string) error {
	for old, u := range m.users {
		if u.ID == id {
			delete(m.users, old)
			u.Email = email
			u.Name = name
			m.users[email] = u
			return nil
		}
	}
	return sql.ErrNoRows
}

func newAuthRouter(store *memStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/admin"}, AuthPublicModule("test-secret", store))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupIssuesToken(t *testing.T) {
	r := newAuthRouter(newMemStore())

	w := postJSON(t, r, "/api/admin/auth/signup", gin.H{
		"email":    "ops@example.com",
		"password": "longenough",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	store := newMemStore()
	r := newAuthRouter(store)

	w := postJSON(t, r, "/api/admin/auth/signup", gin.H{"email": "dup@example.com", "password": "longenough"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/api/admin/auth/signup", gin.H{"email": "dup@example.com", "password": "longenough"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	r := newAuthRouter(newMemStore())
	w := postJSON(t, r, "/api/admin/auth/signup", gin.H{"email": "ops@example.com", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	store := newMemStore()
	r := newAuthRouter(store)

	w := postJSON(t, r, "/api/admin/auth/signup", gin.H{"email": "ops@example.com", "password": "longenough"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/api/admin/auth/login", gin.H{"email": "ops@example.com", "password": "longenough"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/api/admin/auth/login", gin.H{"email": "ops@example.com", "password": "wrongpassword"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, r, "/api/admin/auth/login", gin.H{"email": "nobody@example.com", "password": "longenough"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
