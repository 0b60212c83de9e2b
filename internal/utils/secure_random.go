package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// voucherAlphabet leaves out 0/O and 1/I so printed codes can be read back.
const voucherAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// GenerateVoucherCode returns a random upper-case code of length characters
// drawn from crypto/rand.
func GenerateVoucherCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("voucher code length must be positive")
	}
	max := big.NewInt(int64(len(voucherAlphabet)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		code[i] = voucherAlphabet[n.Int64()]
	}
	return string(code), nil
}
