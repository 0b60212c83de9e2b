package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	actor := domain.Actor{UserID: "user-1", Role: domain.RoleCashier, HotelID: "hotel-1"}

	token, expiresAt, err := GenerateJWT(actor, "secret", time.Hour, "hotel-ops")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, actor, claims.Actor())
	assert.Equal(t, "hotel-ops", claims.Issuer)
}

func TestParseAndValidateJWT_WrongSecret(t *testing.T) {
	token, _, err := GenerateJWT(domain.Actor{UserID: "u", Role: domain.RoleOwner, HotelID: "h"}, "secret", time.Hour, "hotel-ops")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseAndValidateJWT_UnknownRole(t *testing.T) {
	token, _, err := GenerateJWT(domain.Actor{UserID: "u", Role: "chef", HotelID: "h"}, "secret", time.Hour, "hotel-ops")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret")
	assert.Error(t, err)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", MaxPasswordBytes+1))
	assert.Error(t, err)
}

func TestGenerateVoucherCode(t *testing.T) {
	code, err := GenerateVoucherCode(8)
	require.NoError(t, err)
	assert.Len(t, code, 8)
	for _, r := range code {
		assert.Contains(t, voucherAlphabet, string(r))
	}

	_, err = GenerateVoucherCode(0)
	assert.Error(t, err)
}
