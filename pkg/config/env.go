// Package config reads typed values from environment variables. Invalid
// values are logged and replaced by the supplied default, so a typo in one
// variable never prevents startup on its own; semantic checks belong to the
// caller's Validate step.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the variable, or def when unset or empty.
func GetEnvString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// GetEnvInt parses a base-10 integer.
func GetEnvInt(key string, def int) int {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		warnInvalid(key, raw, strconv.Itoa(def), err)
		return def
	}
	return v
}

// GetEnvInt64 parses a base-10 64-bit integer.
func GetEnvInt64(key string, def int64) int64 {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		warnInvalid(key, raw, strconv.FormatInt(def, 10), err)
		return def
	}
	return v
}

// GetEnvFloat parses a float, e.g. "2.5".
func GetEnvFloat(key string, def float64) float64 {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		warnInvalid(key, raw, strconv.FormatFloat(def, 'g', -1, 64), err)
		return def
	}
	return v
}

// GetEnvBool accepts the forms understood by strconv.ParseBool.
func GetEnvBool(key string, def bool) bool {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		warnInvalid(key, raw, strconv.FormatBool(def), err)
		return def
	}
	return v
}

// GetEnvDuration parses a time.ParseDuration value such as "30s" or "1h30m".
func GetEnvDuration(key string, def time.Duration) time.Duration {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		warnInvalid(key, raw, def.String(), err)
		return def
	}
	return v
}

// GetEnvStringList splits a comma-separated list, trimming entries and
// dropping empty ones. An all-empty list yields def.
//
//	ALLOWED_ORIGINS="http://localhost:5188, https://admin.example.com"
func GetEnvStringList(key string, def []string) []string {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func warnInvalid(key, value, def string, err error) {
	slog.Warn("invalid value for environment variable, using default",
		slog.String("key", key),
		slog.String("value", value),
		slog.String("default", def),
		slog.String("error", err.Error()))
}
