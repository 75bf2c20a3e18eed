package config

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Validate checks configuration invariants and returns actionable errors.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	var errs []error

	switch cfg.Host.Network {
	case "", "tcp", "unix":
	default:
		errs = append(errs, fmt.Errorf("host.network: %q is not \"tcp\" or \"unix\"", cfg.Host.Network))
	}
	if cfg.Host.Network == "unix" && cfg.Host.Address == "" {
		errs = append(errs, errors.New("host.address: required for unix sockets"))
	}
	if cfg.Host.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Host.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("host.timeout: %w", err))
		} else if d <= 0 {
			errs = append(errs, fmt.Errorf("host.timeout: %s is not positive", cfg.Host.Timeout))
		}
	}
	if cfg.Reports.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Reports.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("reports.timeout: %w", err))
		} else if d <= 0 {
			errs = append(errs, fmt.Errorf("reports.timeout: %s is not positive", cfg.Reports.Timeout))
		}
	}

	names := make([]string, 0, len(cfg.Lenses))
	for name := range cfg.Lenses {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if cfg.Lenses[name].Path == "" {
			errs = append(errs, fmt.Errorf("lenses.%s: path is required", name))
		}
	}

	return errors.Join(errs...)
}
