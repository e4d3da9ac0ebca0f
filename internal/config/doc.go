// Package config provides configuration loading, merging, and validation
// facilities for the geofencer.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. JSON config file (path taken from CONFIG or -c / -config)
//  3. Environment variables
//  4. Command-line flags
//
// The main entry point is [GetConfig], which returns the immutable,
// validated [Config] view that is passed by reference into every component.
package config
