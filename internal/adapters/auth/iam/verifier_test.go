package iam

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"maintenance-inspections/internal/platform/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerifier(t *testing.T, h http.HandlerFunc) *Verifier {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := httpclient.New(httpclient.Config{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)
	return NewVerifier(c)
}

func TestVerify_OK(t *testing.T) {
	v := newVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, verifyPath, r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "k", r.Header.Get("X-Api-Key"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tok", body["token"])

		_, _ = w.Write([]byte(`{"user_id":" u1 ","email":"u1@plant.io","tenant_id":"t1","roles":["admin"," ",""]}`))
	})

	c, err := v.Verify(context.Background(), " tok ")
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, "t1", c.TenantID)
	assert.Equal(t, []string{"admin"}, c.Roles)
}

func TestVerify_Errors(t *testing.T) {
	v := newVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = v.Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, httpclient.ErrUnauthorized)

	noUser := newVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"email":"x@y"}`))
	})
	_, err = noUser.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrMissingUserID)

	unconfigured := NewVerifier(nil)
	_, err = unconfigured.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, httpclient.ErrNotConfigured)
}
