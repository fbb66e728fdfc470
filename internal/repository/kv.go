package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fan_showcase/internal/storage"
)

func VisitorKey(visitorID, name string) string {
	return "visitor:" + visitorID + ":" + name
}

// LoadJSON decodes the value under key into v. found is false when the key
// is absent, v is left untouched in that case.
func LoadJSON(ctx context.Context, kv KeyValueStore, key string, v any) (found bool, err error) {
	const op = "repository.LoadJSON"

	data, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrorNoSuchKey) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}

func SaveJSON(ctx context.Context, kv KeyValueStore, key string, v any, ttl time.Duration) error {
	const op = "repository.SaveJSON"

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := kv.Set(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
