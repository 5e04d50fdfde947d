package domain

import "time"

// IdempotencyRecord stores the first successful response of a mutating call.
type IdempotencyRecord struct {
	Key       string
	Operation string
	OrderID   string
	// Fingerprint is a hash of the request body the key was first used with.
	Fingerprint string
	Response    []byte
	CreatedAt   time.Time
}
