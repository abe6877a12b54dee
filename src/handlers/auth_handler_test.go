package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"bankweb/src/middleware"
	"bankweb/src/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginBlankFieldsNeverReachStore(t *testing.T) {
	env := newTestEnv(t)
	h := Login(env.store, env.sessions, env.logger)

	for _, form := range []url.Values{
		{"username": {""}, "password": {"test"}},
		{"username": {"   "}, "password": {"test"}},
		{"username": {"test"}, "password": {""}},
		{"username": {"test"}, "password": {"   "}},
	} {
		rec := serve(h, postForm("/login", form))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, util.MsgLoginFields, strings.TrimSpace(rec.Body.String()))
	}
	assert.Zero(t, env.store.Calls())
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	h := Login(env.store, env.sessions, env.logger)

	rec := serve(h, postForm("/login", url.Values{"username": {" TEST "}, "password": {"test"}}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	claims, err := env.sessions.Parse(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, env.user.ID, claims.UserID)
	assert.Equal(t, "test", claims.Username)

	user, err := env.store.GetUserByUsername(context.Background(), "test")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)
}

func TestLoginByEmail(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(Login(env.store, env.sessions, env.logger),
		postForm("/login", url.Values{"username": {"Test@Example.com"}, "password": {"test"}}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	h := Login(env.store, env.sessions, env.logger)

	for _, form := range []url.Values{
		{"username": {"test"}, "password": {"wrong"}},
		{"username": {"nobody"}, "password": {"test"}},
	} {
		rec := serve(h, postForm("/login", form))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, msgInvalidCredentials, strings.TrimSpace(rec.Body.String()))
		assert.Empty(t, rec.Result().Cookies())
	}
}

func TestRegisterRejectionsNeverReachStore(t *testing.T) {
	env := newTestEnv(t)
	h := Register(env.store, env.logger)

	tests := []struct {
		name string
		form url.Values
		msg  string
	}{
		{"blank username", url.Values{"username": {"  "}, "email": {"a@b.co"}, "password": {"secret1"}}, util.MsgRegisterFields},
		{"blank email", url.Values{"username": {"alice"}, "email": {""}, "password": {"secret1"}}, util.MsgRegisterFields},
		{"blank password", url.Values{"username": {"alice"}, "email": {"a@b.co"}, "password": {""}}, util.MsgRegisterFields},
		{"mismatch", url.Values{"username": {"alice"}, "email": {"a@b.co"}, "password": {"secret1"}, "confirmPassword": {"secret2"}}, util.MsgPasswordMismatch},
		{"bad email", url.Values{"username": {"alice"}, "email": {"alice"}, "password": {"secret1"}}, util.MsgInvalidEmail},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(h, postForm("/register", tc.form))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.msg, strings.TrimSpace(rec.Body.String()))
		})
	}
	assert.Zero(t, env.store.Calls())
}

func TestRegisterSuccess(t *testing.T) {
	env := newTestEnv(t)
	h := Register(env.store, env.logger)

	rec := serve(h, postForm("/register", url.Values{
		"username":        {" Alice "},
		"email":           {"alice@example.com"},
		"password":        {"secret1"},
		"confirmPassword": {"secret1"},
	}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	user, err := env.store.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	accounts, err := env.store.ListAccounts(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)

	// the new user can log in straight away
	rec = serve(Login(env.store, env.sessions, env.logger),
		postForm("/login", url.Values{"username": {"alice"}, "password": {"secret1"}}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRegisterKeepsPasswordWhitespace(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(Register(env.store, env.logger), postForm("/register", url.Values{
		"username":        {"bob"},
		"email":           {"bob@example.com"},
		"password":        {"secret1 "},
		"confirmPassword": {"secret1 "},
	}))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	login := Login(env.store, env.sessions, env.logger)
	rec = serve(login, postForm("/login", url.Values{"username": {"bob"}, "password": {"secret1 "}}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = serve(login, postForm("/login", url.Values{"username": {"bob"}, "password": {"secret1"}}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterRejectsBlankPassword(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(Register(env.store, env.logger), postForm("/register", url.Values{
		"username":        {"carol"},
		"email":           {"carol@example.com"},
		"password":        {"   "},
		"confirmPassword": {"   "},
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, util.MsgRegisterFields, strings.TrimSpace(rec.Body.String()))
	assert.Zero(t, env.store.Calls())
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(Register(env.store, env.logger), postForm("/register", url.Values{
		"username": {"test"},
		"email":    {"other@example.com"},
		"password": {"secret1"},
	}))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, msgUsernameTaken, strings.TrimSpace(rec.Body.String()))
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(Logout(env.logger), httptest.NewRequest(http.MethodGet, "/logout", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestAuthPages(t *testing.T) {
	env := newTestEnv(t)

	rec := serve(LoginPage(env.renderer, env.logger), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="loginForm"`)
	assert.Contains(t, rec.Body.String(), `/static/js/login.js`)

	rec = serve(RegisterPage(env.renderer, env.logger), httptest.NewRequest(http.MethodGet, "/register", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `id="registrationForm"`)
	assert.Contains(t, body, `data-min-length="6"`)
	assert.Contains(t, body, `data-weak="Password too weak"`)
	assert.Contains(t, body, `/static/js/validation.js`)
}
