package documents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/affiliatepro/internal/common"
)

// GetJSON decodes the document under key into v.
//
// found is false when the key is absent. A stored value that does not decode
// into v yields found=true and an error wrapping common.ErrSerialization;
// collections treat that as "absent" and re-seed rather than failing.
func GetJSON(ctx context.Context, repo Repository, key string, v any) (found bool, err error) {
	raw, err := repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("%w: decode %s: %w", common.ErrSerialization, key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key. Nothing is written when
// encoding fails.
func SetJSON(ctx context.Context, repo Repository, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", common.ErrSerialization, key, err)
	}
	return repo.Set(ctx, key, raw)
}

// GetString returns the plain string stored under key and whether it exists.
func GetString(ctx context.Context, repo Repository, key string) (string, bool, error) {
	raw, err := repo.Get(ctx, key)
	if err != nil || raw == nil {
		return "", false, err
	}
	return string(raw), true, nil
}

// SetString stores s under key as raw bytes.
func SetString(ctx context.Context, repo Repository, key, s string) error {
	return repo.Set(ctx, key, []byte(s))
}
