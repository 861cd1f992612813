// Package config provides configuration loading, merging, and validation
// for the shipy server.
//
// Configuration is assembled from multiple sources. For each field the first
// source that sets a non-zero value wins:
//  1. Environment variables, including those loaded from a .env file
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The merged result is validated with go-playground/validator struct tags.
// The entry point is [GetStructuredConfig].
package config
