package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const clientSecret = `{"installed":{
	"client_id":"id.apps.googleusercontent.com",
	"client_secret":"secret",
	"auth_uri":"https://accounts.google.com/o/oauth2/auth",
	"token_uri":"https://oauth2.googleapis.com/token",
	"redirect_uris":["http://localhost"]}}`

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	want := &oauth2.Token{AccessToken: "at", RefreshToken: "rt", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour).Round(time.Second)}

	require.NoError(t, saveToken(path, want))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := tokenFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, want.AccessToken, got.AccessToken)
	assert.Equal(t, want.RefreshToken, got.RefreshToken)
	assert.True(t, want.Expiry.Equal(got.Expiry))
}

func TestGmailClientUsesCachedToken(t *testing.T) {
	dir := t.TempDir()
	creds := filepath.Join(dir, "credential.json")
	token := filepath.Join(dir, "token.json")
	require.NoError(t, os.WriteFile(creds, []byte(clientSecret), 0600))
	require.NoError(t, saveToken(token, &oauth2.Token{AccessToken: "at", RefreshToken: "rt"}))

	client, err := GmailClient(context.Background(), creds, token)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestGmailClientErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := GmailClient(context.Background(), filepath.Join(dir, "missing.json"), filepath.Join(dir, "token.json"))
	assert.ErrorContains(t, err, "read client secret file")

	creds := filepath.Join(dir, "credential.json")
	require.NoError(t, os.WriteFile(creds, []byte("{}"), 0600))
	_, err = GmailClient(context.Background(), creds, filepath.Join(dir, "token.json"))
	assert.ErrorContains(t, err, "parse client secret file")

	require.NoError(t, os.WriteFile(creds, []byte(clientSecret), 0600))
	broken := filepath.Join(dir, "token.json")
	require.NoError(t, os.WriteFile(broken, []byte("not json"), 0600))
	_, err = GmailClient(context.Background(), creds, broken)
	assert.ErrorContains(t, err, "read token file")
}
