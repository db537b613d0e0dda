package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSendsFormCredentials(t *testing.T) {
	var gotContentType, gotUsername, gotPassword string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/auth/login/", r.URL.Path)
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotUsername = r.PostFormValue("username")
		gotPassword = r.PostFormValue("password")
		fmt.Fprint(w, `{"access_token":"abc123"}`)
	})

	client := newTestClient(t, handler, staticToken(""))
	token, err := client.Auth().Login(context.Background(), "alice", "hunter22")
	require.NoError(t, err)

	assert.Equal(t, "abc123", token)
	assert.True(t, strings.HasPrefix(gotContentType, "application/x-www-form-urlencoded"))
	assert.Equal(t, "alice", gotUsername)
	assert.Equal(t, "hunter22", gotPassword)
}

func TestLoginRejected(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail":"Incorrect username or password"}`)
	})

	client := newTestClient(t, handler, staticToken(""))
	_, err := client.Auth().Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.True(t, IsStatus(err, 401))
}

func TestLoginMissingToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	client := newTestClient(t, handler, staticToken(""))
	_, err := client.Auth().Login(context.Background(), "alice", "hunter22")
	assert.Error(t, err)
}

func TestSignupSendsJSONBody(t *testing.T) {
	var gotBody string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/auth/signup/", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusCreated)
	})

	client := newTestClient(t, handler, staticToken(""))
	err := client.Auth().Signup(context.Background(), SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "Secret1!",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"alice","email":"alice@example.com","password":"Secret1!"}`, gotBody)
}

func TestTranslateSignupError(t *testing.T) {
	err := &APIError{Status: 422, Detail: []DetailItem{
		{Msg: "Value error, Username already exists"},
		{Msg: "some message nobody mapped"},
	}}

	msgs := TranslateSignupError(fmt.Errorf("signup: %w", err))
	require.Len(t, msgs, 2)
	assert.Equal(t, "That username is already taken.", msgs[0])
	assert.Equal(t, "some message nobody mapped", msgs[1])
}

func TestTranslateSignupErrorIgnoresOtherFailures(t *testing.T) {
	assert.Nil(t, TranslateSignupError(&APIError{Status: 500}))
	assert.Nil(t, TranslateSignupError(fmt.Errorf("connection refused")))
	assert.Nil(t, TranslateSignupError(nil))
}
