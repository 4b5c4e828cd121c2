// Package cache stores computed estimates keyed by the content of the tax
// return and the rule table that produced them.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	json "github.com/goccy/go-json"

	"tax-engine/internal/model"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
}

// Key derives a cache key from the rule-table fingerprint and the return.
// A changed rule table yields new keys, so stale estimates are never served.
func Key(fingerprint string, ret *model.TaxReturn) (string, error) {
	b, err := json.Marshal(ret)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return "tax:" + strconv.Itoa(ret.Year) + ":" + fingerprint + ":" + hex.EncodeToString(sum[:]), nil
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (Nop) Set(context.Context, string, []byte) error { return nil }
