// FILE: lixenwraith/duallog/override.go
package duallog

import (
	"fmt"
	"reflect"
	"strings"
)

// Override applies "key=value" strings, keyed by toml tag, to a copy of the configuration
// and returns the validated result. The receiver is left unchanged.
//
// Example:
//
//	cfg, err := duallog.DefaultConfig().Override(
//	    "directory=/var/log/app",
//	    "level=debug",
//	    "rotation=daily",
//	)
func (c *Config) Override(overrides ...string) (*Config, error) {
	cfg := c.Clone()

	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return nil, combineConfigErrors(errors)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("duallog: multiple configuration errors:")
	for i, err := range errors {
		// Drop the per-error prefix to avoid duplication
		errMsg := strings.TrimPrefix(err.Error(), "duallog: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config, matching the key against toml tags
func applyConfigField(cfg *Config, key, value string) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") != key {
			continue
		}
		if err := setFieldValue(v.Field(i), value); err != nil {
			return fmtErrorf("invalid value for %s '%s': %w", key, value, err)
		}
		return nil
	}

	return fmtErrorf("unknown configuration key '%s'", key)
}
