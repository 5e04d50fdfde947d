package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

// Request identifies a mutating call for replay. An empty Key disables
// replay.
type Request struct {
	Key       string
	Operation string
	OrderID   string
	// Fingerprint identifies the request body; a retry with the same key
	// must carry the same one.
	Fingerprint string
}

// Fingerprint hashes the JSON form of the given request parts.
func Fingerprint(parts ...any) string {
	body, err := json.Marshal(parts)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// RunIdempotent runs fn in one transaction. When req carries a key, the first
// successful result is stored with fn's writes and returned as-is to every
// later call with the same key; replayed reports such a call, for which fn's
// writes did not commit. Failed calls store nothing.
func RunIdempotent[T any](ctx context.Context, store domain.Store, req Request, now time.Time, fn func(r domain.Repositories) (T, error)) (result T, replayed bool, err error) {
	if req.Key == "" {
		err = store.InTx(ctx, func(r domain.Repositories) error {
			var err error
			result, err = fn(r)
			return err
		})
		return result, false, err
	}

	err = store.InTx(ctx, func(r domain.Repositories) error {
		rec, err := r.Idempotency().GetRecord(ctx, req.Key)
		if err == nil {
			replayed = true
			return decodeRecord(rec, req, &result)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		out, err := fn(r)
		if err != nil {
			return err
		}
		body, err := json.Marshal(out)
		if err != nil {
			return fmt.Errorf("encode %s response: %w", req.Operation, err)
		}
		if err := r.Idempotency().SaveRecord(ctx, &domain.IdempotencyRecord{
			Key:         req.Key,
			Operation:   req.Operation,
			OrderID:     req.OrderID,
			Fingerprint: req.Fingerprint,
			Response:    body,
			CreatedAt:   now,
		}); err != nil {
			return err
		}
		result = out
		return nil
	})
	if err == nil {
		return result, replayed, nil
	}

	// A concurrent call with the same key may have committed while this one
	// waited on a row lock; its result wins.
	rec, getErr := store.Idempotency().GetRecord(ctx, req.Key)
	if getErr != nil {
		return result, false, err
	}
	var replay T
	if decodeErr := decodeRecord(rec, req, &replay); decodeErr != nil {
		return replay, false, decodeErr
	}
	slog.Info("replayed idempotent response", "operation", req.Operation, "key", req.Key)
	return replay, true, nil
}

func decodeRecord[T any](rec *domain.IdempotencyRecord, req Request, out *T) error {
	if rec.Operation != req.Operation || rec.OrderID != req.OrderID || rec.Fingerprint != req.Fingerprint {
		return fmt.Errorf("%w: idempotency key %q was used for another request", domain.ErrInvalidInput, req.Key)
	}
	if err := json.Unmarshal(rec.Response, out); err != nil {
		return fmt.Errorf("decode stored %s response: %w", req.Operation, err)
	}
	return nil
}
