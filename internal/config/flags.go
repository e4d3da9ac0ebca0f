// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// fieldList is a comma separated flag value.
type fieldList []string

func (f *fieldList) String() string {
	return strings.Join(*f, ",")
}

func (f *fieldList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*f = append(*f, part)
		}
	}
	return nil
}

// parseFlags parses the command-line arguments.
//
// Flags:
//
//	-host remote server base URL
//	-login / -password remote credentials
//	-request-timeout per-call timeout (e.g. "30s")
//	-top-layer / -bottom-layer layer resource ids
//	-top-buffer / -bottom-buffer buffer distances
//	-top-fields / -bottom-fields comma separated attribute allow-lists
//	-d replica DSN (sqlite path, postgres URL or "memory")
//	-w watermark file path
//	-watermark-kind file|bolt|memory
//	-notifier console|telegram
//	-i sync interval (e.g. "1m")
//	-a status endpoint address in format [host]:[port]
//	-log-level zerolog level
//	-c/-config json file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("geofencer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &StructuredConfig{}
	var statusAddress NetAddress
	var topFields, bottomFields fieldList

	fs.StringVar(&cfg.NGW.Host, "host", "", "Remote server base URL")
	fs.StringVar(&cfg.NGW.Login, "login", "", "Remote login")
	fs.StringVar(&cfg.NGW.Password, "password", "", "Remote password")
	fs.DurationVar(&cfg.NGW.RequestTimeout, "request-timeout", 0, "Per-call timeout (e.g., 30s)")

	fs.Int64Var(&cfg.TopLayer.ID, "top-layer", 0, "Top layer resource id")
	fs.Float64Var(&cfg.TopLayer.Buffer, "top-buffer", 0, "Top layer buffer distance")
	fs.Var(&topFields, "top-fields", "Top layer attribute allow-list")
	fs.Int64Var(&cfg.BottomLayer.ID, "bottom-layer", 0, "Bottom layer resource id")
	fs.Float64Var(&cfg.BottomLayer.Buffer, "bottom-buffer", 0, "Bottom layer buffer distance")
	fs.Var(&bottomFields, "bottom-fields", "Bottom layer attribute allow-list")

	fs.StringVar(&cfg.Storage.ReplicaDSN, "d", "", "Replica DSN")
	fs.StringVar(&cfg.Storage.WatermarkPath, "w", "", "Watermark file path")
	fs.StringVar(&cfg.Storage.WatermarkKind, "watermark-kind", "", "Watermark backend (file, bolt, memory)")
	fs.StringVar(&cfg.Notifier.Kind, "notifier", "", "Notifier (console, telegram)")
	fs.DurationVar(&cfg.Workers.SyncInterval, "i", 0, "Sync interval (e.g., 1m)")
	fs.Var(&statusAddress, "a", "Status endpoint address host:port")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.TopLayer.Fields = topFields
	cfg.BottomLayer.Fields = bottomFields
	cfg.Server.StatusAddress = statusAddress.String()

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
