package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"
)

const contractCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// RandomCode returns n chars from A-Z0-9, e.g. "AB4D93".
// Uses crypto/rand + rand.Int (math/big) to avoid modulo bias.
func RandomCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(contractCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(contractCharset[num.Int64()])
	}
	return sb.String(), nil
}

// GenerateContractNumber builds a human-readable contract number like
// "HD-202509-AB4D93". Uniqueness is enforced by the DB unique index;
// callers retry on collision.
func GenerateContractNumber(now time.Time) (string, error) {
	code, err := RandomCode(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("HD-%s-%s", now.Format("200601"), code), nil
}

// IsUniqueViolation detects duplicate-key errors across drivers
// (MySQL "Duplicate entry", SQLite "UNIQUE constraint failed").
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint")
}
