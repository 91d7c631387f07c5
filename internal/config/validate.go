package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Surreal.URL == "" {
		return fmt.Errorf("surreal.url must not be empty")
	}
	if c.Mirror.Path == "" {
		return fmt.Errorf("mirror.path must not be empty")
	}

	if err := c.Counter.validate(); err != nil {
		return fmt.Errorf("counter: %w", err)
	}

	return nil
}

func (c *CounterConfig) validate() error {
	if c.ReadBudget <= 0 {
		return fmt.Errorf("read_budget must be > 0 (got %v)", c.ReadBudget)
	}
	if c.WriteBudget <= 0 {
		return fmt.Errorf("write_budget must be > 0 (got %v)", c.WriteBudget)
	}
	if c.ResetToken == "" {
		return fmt.Errorf("reset_token must not be empty")
	}

	sevaks, err := ParseSevaks(c.SevaksRaw)
	if err != nil {
		return fmt.Errorf("sevaks: %w", err)
	}
	if len(sevaks) == 0 {
		return fmt.Errorf("sevaks: at least one identity required")
	}
	c.Sevaks = sevaks

	return nil
}

// ParseSevaks parses a comma-separated "id:Display Name" roster string.
// An empty string returns a nil slice.
func ParseSevaks(raw string) ([]Sevak, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	sevaks := make([]Sevak, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, name, ok := strings.Cut(p, ":")
		id = strings.TrimSpace(id)
		name = strings.TrimSpace(name)
		if !ok || id == "" || name == "" {
			return nil, fmt.Errorf("invalid entry %q: want id:Display Name", p)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
		sevaks = append(sevaks, Sevak{ID: id, DisplayName: name})
	}

	return sevaks, nil
}
