package sessiontoken_test

import (
	"strings"
	"testing"
	"time"

	errs "github.com/jrsteele09/go-login-broker/internal/errors"
	"github.com/jrsteele09/go-login-broker/server/sessiontoken"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-cookie-secret"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := sessiontoken.New(testSecret)

	value, err := codec.Encode("session-abc", time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, value)

	sessionID, err := codec.Decode(value)
	require.NoError(t, err)
	require.Equal(t, "session-abc", sessionID)
}

func TestDecodeTamperedToken(t *testing.T) {
	codec := sessiontoken.New(testSecret)

	value, err := codec.Encode("session-abc", time.Now().Add(time.Hour))
	require.NoError(t, err)

	// Extend the signature segment so it no longer matches
	tampered := value + "AAAA"
	_, err = codec.Decode(tampered)
	require.ErrorIs(t, err, errs.ErrInvalidSessionToken)
}

func TestDecodeWrongSecret(t *testing.T) {
	value, err := sessiontoken.New(testSecret).Encode("session-abc", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = sessiontoken.New("another-secret").Decode(value)
	require.ErrorIs(t, err, errs.ErrInvalidSessionToken)
}

func TestDecodeExpiredToken(t *testing.T) {
	codec := sessiontoken.New(testSecret)

	value, err := codec.Encode("session-abc", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = codec.Decode(value)
	require.ErrorIs(t, err, errs.ErrInvalidSessionToken)
}

func TestDecodeGarbage(t *testing.T) {
	codec := sessiontoken.New(testSecret)

	for _, value := range []string{"", "not-a-token", strings.Repeat("a.", 3)} {
		_, err := codec.Decode(value)
		require.ErrorIs(t, err, errs.ErrInvalidSessionToken, "value %q", value)
	}
}
