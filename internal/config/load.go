package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/packsync/packsync/internal/pack"
)

// Load reads and validates a packsync.yaml configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return &cfg, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d — only version 1 is supported", cfg.Version))
	}

	if cfg.Jobs < 0 {
		errs = append(errs, fmt.Sprintf("invalid jobs %d — must be zero or positive", cfg.Jobs))
	}

	// An empty pack list is valid: status and clean still work.
	names := make(map[string]bool)
	for i, p := range cfg.Packs {
		prefix := fmt.Sprintf("pack[%d]", i)
		if p.Repo != "" {
			prefix = fmt.Sprintf("pack '%s'", p.Repo)
		}

		if p.Repo == "" {
			errs = append(errs, fmt.Sprintf("%s: 'repo' is required", prefix))
			continue
		}

		name := p.As
		if name == "" {
			name = pack.DeriveName(pack.ExpandURL(p.Repo))
		}
		if name == "" {
			// Unnameable entries surface as registration warnings.
			continue
		}
		if names[name] {
			errs = append(errs, fmt.Sprintf("%s: duplicate package name '%s' — use 'as' to disambiguate", prefix, name))
			continue
		}
		names[name] = true
	}

	return errs
}
