// Package otp holds one-time passcodes keyed by phone number.
//
// The store is an injectable capability (set/get/delete with expiry) so
// the service can run against process memory in a single instance or
// against Redis when deployed with more than one replica.
package otp

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"time"
)

// ErrNotFound is returned when no live entry exists for the key, either
// because none was ever set or because it has expired.
var ErrNotFound = errors.New("otp not found or expired")

// Store maps a phone number to a short-lived value. Setting a key that
// already exists overwrites it (last write wins).
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// GenerateCode returns a 6-digit numeric code drawn uniformly from
// [100000, 999999].
func GenerateCode() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}
