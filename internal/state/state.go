// Package state persists the last conversion input so a session can be
// resumed. Every backend stores a single entry under StorageKey.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BartekS5/uilm/pkg/database"
	"github.com/BartekS5/uilm/pkg/models"
)

// StorageKey is the fixed key the saved configuration is stored under.
const StorageKey = "uilm_converter_state"

// ErrNotFound is returned by Load when nothing has been saved.
var ErrNotFound = errors.New("no saved state")

// Store saves and restores a single configuration.
type Store interface {
	Save(ctx context.Context, cfg models.Configuration) error
	Load(ctx context.Context) (models.Configuration, error)
	Clear(ctx context.Context) error
	Close() error
}

// Options selects the backend. Redis wins when RedisURL is set.
type Options struct {
	RedisURL string
	Dir      string
}

// Open returns the store described by opts.
func Open(opts Options) (Store, error) {
	if opts.RedisURL != "" {
		client, err := database.ConnectRedis(opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, 0), nil
	}
	return NewFileStore(opts.Dir), nil
}

func encode(cfg models.Configuration) ([]byte, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}

func decode(data []byte) (models.Configuration, error) {
	var cfg models.Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return models.Configuration{}, fmt.Errorf("decoding state: %w", err)
	}
	return cfg, nil
}
