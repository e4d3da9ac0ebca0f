// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// secretVars can also be supplied as a path in <NAME>_FILE, the way
// container secrets are mounted. A non-empty <NAME> takes precedence.
var secretVars = []string{"NGW_PASSWORD", "NOTIFIER_TELEGRAM_TOKEN"}

// parseEnv populates cfg from environ using the caarlos0/env library. A nil
// environ reads the process environment. Struct fields are mapped via their
// `env` and `envPrefix` tags defined on [StructuredConfig] and its nested
// types.
//
// Parameters:
//
//	cfg     - pointer to the struct to fill
//	environ - variables to read, keyed by name; nil for os.Environ
//
// Returns an error wrapping [ErrConfigInvalid] when a value cannot be
// converted to its field type or a secret file cannot be read.
func parseEnv(cfg any, environ map[string]string) error {
	if environ == nil {
		environ = processEnviron()
	} else {
		environ = maps.Clone(environ)
	}

	if err := resolveSecretFiles(environ); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("%w: error getting env configs: %w", ErrConfigInvalid, err)
	}

	return nil
}

// resolveSecretFiles replaces every unset secret of environ by the trimmed
// content of the file named in its _FILE companion.
func resolveSecretFiles(environ map[string]string) error {
	for _, name := range secretVars {
		path := environ[name+"_FILE"]
		if environ[name] != "" || path == "" {
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s_FILE: %w", name, err)
		}
		environ[name] = strings.TrimSpace(string(content))
	}
	return nil
}

func processEnviron() map[string]string {
	environ := make(map[string]string)
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok {
			environ[name] = value
		}
	}
	return environ
}
