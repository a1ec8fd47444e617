package stub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthTokenRoundTrip(t *testing.T) {
	u := &User{ID: 7, Email: "user1@gmail.com", Uname: "User 1", Roles: []string{"user"}}
	token, err := newAuthToken("secret", u, 60)
	require.NoError(t, err)

	uid, err := parseAuthToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, 7, uid)
}

func TestAuthTokenWrongSecret(t *testing.T) {
	u := &User{ID: 7}
	token, err := newAuthToken("secret", u, 60)
	require.NoError(t, err)

	_, err = parseAuthToken("other-secret", token)
	assert.Error(t, err)
}

func TestAuthTokenExpired(t *testing.T) {
	u := &User{ID: 7}
	token, err := newAuthToken("secret", u, -1)
	require.NoError(t, err)

	_, err = parseAuthToken("secret", token)
	assert.Error(t, err)
}

func TestAuthTokenGarbage(t *testing.T) {
	_, err := parseAuthToken("secret", "not-a-token")
	assert.Error(t, err)
}
