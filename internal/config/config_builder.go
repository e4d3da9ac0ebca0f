// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"dario.cat/mergo"
)

// Defaults applied before any other source.
const (
	defaultRequestTimeout = 30 * time.Second
	defaultSyncInterval   = time.Minute
	defaultReplicaDSN     = "geofencer.db"
	defaultWatermarkPath  = "watermarks.json"
	defaultTelegramAPIURL = "https://api.telegram.org"
)

type configBuilder struct {
	// configs are merged in order; later entries override earlier non-zero
	// fields.
	configs []*StructuredConfig

	// defaults is the number of leading entries holding built-in defaults.
	// The JSON file is inserted right after them.
	defaults int

	err error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("%w: error occured during building config: %w", ErrConfigInvalid, b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("%w: error merging configs: %w", ErrConfigInvalid, err)
		}
	}

	return config, nil
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = slices.Insert(b.configs, b.defaults, &StructuredConfig{
		NGW:      NGW{RequestTimeout: defaultRequestTimeout},
		Storage:  Storage{ReplicaDSN: defaultReplicaDSN, WatermarkKind: WatermarkFile, WatermarkPath: defaultWatermarkPath},
		Notifier: Notifier{Kind: NotifierConsole, TelegramAPIURL: defaultTelegramAPIURL},
		Workers:  Workers{SyncInterval: defaultSyncInterval},
		Log:      Log{Level: "debug"},
	})
	b.defaults++
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg, nil); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flagsCfg, err := parseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flagsCfg)
	return b
}

// withJSON loads the JSON file named by the highest-priority source that
// specifies one and inserts it below environment and flags.
func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = slices.Insert(b.configs, b.defaults, jsonCfg)

	return b
}
