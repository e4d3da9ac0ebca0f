// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors the on-disk JSON layout:
//
//	{
//	  "ngw": {"host": "...", "login": "...", "password": "...", "request_timeout": "30s"},
//	  "top_layer": {"id": 1, "buffer": 5, "fields": ["name"], "srs": 3857},
//	  "bottom_layer": {"id": 2, "buffer": 0, "fields": ["zone"]},
//	  "storage": {"replica_dsn": "geofencer.db", "watermark_kind": "file", "watermark_path": "watermarks.json"},
//	  "notifier": {"kind": "telegram", "telegram_token": "...", "telegram_chat_id": 42},
//	  "workers": {"sync_interval": "1m"},
//	  "server": {"status_address": ":8080"},
//	  "log": {"level": "info"}
//	}
type StructuredJSONConfig struct {
	NGW struct {
		Host           string   `json:"host"`
		Login          string   `json:"login"`
		Password       string   `json:"password"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"ngw"`

	TopLayer    jsonLayer `json:"top_layer"`
	BottomLayer jsonLayer `json:"bottom_layer"`

	Storage struct {
		ReplicaDSN    string `json:"replica_dsn"`
		WatermarkKind string `json:"watermark_kind"`
		WatermarkPath string `json:"watermark_path"`
		SnapshotDir   string `json:"snapshot_dir"`
	} `json:"storage,omitempty"`

	Notifier struct {
		Kind           string `json:"kind"`
		TelegramToken  string `json:"telegram_token"`
		TelegramChatID int64  `json:"telegram_chat_id"`
		TelegramAPIURL string `json:"telegram_api_url"`
	} `json:"notifier,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`

	Server struct {
		StatusAddress string `json:"status_address"`
	} `json:"server,omitempty"`

	Log struct {
		Level string `json:"level"`
		File  string `json:"file"`
	} `json:"log,omitempty"`
}

type jsonLayer struct {
	ID     int64    `json:"id"`
	Buffer float64  `json:"buffer"`
	Fields []string `json:"fields"`
	SRS    int      `json:"srs"`
}

func (l jsonLayer) layer() Layer {
	return Layer{ID: l.ID, Buffer: l.Buffer, Fields: l.Fields, SRS: l.SRS}
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		NGW: NGW{
			Host:           jsonCfg.NGW.Host,
			Login:          jsonCfg.NGW.Login,
			Password:       jsonCfg.NGW.Password,
			RequestTimeout: time.Duration(jsonCfg.NGW.RequestTimeout),
		},
		TopLayer:    jsonCfg.TopLayer.layer(),
		BottomLayer: jsonCfg.BottomLayer.layer(),
		Storage: Storage{
			ReplicaDSN:    jsonCfg.Storage.ReplicaDSN,
			WatermarkKind: jsonCfg.Storage.WatermarkKind,
			WatermarkPath: jsonCfg.Storage.WatermarkPath,
			SnapshotDir:   jsonCfg.Storage.SnapshotDir,
		},
		Notifier: Notifier{
			Kind:           jsonCfg.Notifier.Kind,
			TelegramToken:  jsonCfg.Notifier.TelegramToken,
			TelegramChatID: jsonCfg.Notifier.TelegramChatID,
			TelegramAPIURL: jsonCfg.Notifier.TelegramAPIURL,
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
		},
		Server: Server{
			StatusAddress: jsonCfg.Server.StatusAddress,
		},
		Log: Log{
			Level: jsonCfg.Log.Level,
			File:  jsonCfg.Log.File,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
