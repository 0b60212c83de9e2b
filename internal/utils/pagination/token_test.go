package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeCursorToken(t *testing.T) {
	createdAt := time.Date(2026, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeCursorToken(createdAt, "txn-42")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeCursorToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(decodedAt))
	assert.Equal(t, "txn-42", decodedID)
}

func TestEncodeCursorToken_NormalizesToUTC(t *testing.T) {
	kathmandu := time.FixedZone("NPT", 5*3600+45*60)
	local := time.Date(2026, 1, 1, 6, 0, 0, 0, kathmandu)

	decodedAt, _, err := DecodeCursorToken(EncodeCursorToken(local, "a"))
	require.NoError(t, err)
	assert.True(t, local.Equal(decodedAt))
	assert.Equal(t, time.UTC, decodedAt.Location())
}

func TestDecodeCursorTokenError(t *testing.T) {
	_, _, err := DecodeCursorToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	missingID := base64.RawURLEncoding.EncodeToString([]byte("2026-05-15T00:00:00Z"))
	_, _, err = DecodeCursorToken(missingID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.RawURLEncoding.EncodeToString([]byte("notadate|txn-1"))
	_, _, err = DecodeCursorToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}
