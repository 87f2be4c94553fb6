// File: entry.go
// Title: Log Field Helpers
// Description: Fields type and constructors for structured log context.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02

package log

import "time"

// Fields represents structured key/value context for a log entry
type Fields map[string]interface{}

// Field creates a single-entry Fields
func Field(key string, value interface{}) Fields {
	return Fields{key: value}
}

// Err creates a Fields carrying an error under "error"
func Err(err error) Fields {
	if err == nil {
		return Fields{}
	}
	return Fields{"error": err.Error()}
}

// Duration creates a Fields carrying a duration
func Duration(key string, d time.Duration) Fields {
	return Fields{key: d.String()}
}

// String creates a Fields carrying a string
func String(key, value string) Fields {
	return Fields{key: value}
}

// Int creates a Fields carrying an int
func Int(key string, value int) Fields {
	return Fields{key: value}
}

// Merge returns a new Fields with other's entries overriding f's
func (f Fields) Merge(other Fields) Fields {
	out := make(Fields, len(f)+len(other))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// With returns a copy of f with key set
func (f Fields) With(key string, value interface{}) Fields {
	return f.Merge(Fields{key: value})
}
