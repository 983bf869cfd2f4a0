package config

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/consul/api"
)

// LoadFromConsulKV reads a JSON document from Consul KV and unmarshals it
// over cfg, letting shared settings override the process environment.
//
// The value stored under key must be JSON matching the Config shape. The
// caller decides whether to watch for changes; this only reads once.
func LoadFromConsulKV(cfg *Config, consulHost string, consulPort int, key string) error {
	if key == "" {
		return fmt.Errorf("consul kv key is empty")
	}

	c, err := api.NewClient(&api.Config{
		Address: fmt.Sprintf("%s:%d", consulHost, consulPort),
	})
	if err != nil {
		return fmt.Errorf("failed to create consul client: %w", err)
	}

	pair, _, err := c.KV().Get(key, nil)
	if err != nil {
		return fmt.Errorf("failed to get consul kv key=%s: %w", key, err)
	}
	if pair == nil || len(pair.Value) == 0 {
		return fmt.Errorf("consul kv key=%s is empty or not found", key)
	}

	if err := json.Unmarshal(pair.Value, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal consul kv json key=%s: %w", key, err)
	}
	return nil
}
