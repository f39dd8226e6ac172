// Package source defines where the sweep input is loaded from.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when the input does not exist.
var ErrNotFound = errors.New("source: input not found")

// Source loads the sweep input.
type Source interface {
	// ReadInput returns the full input contents.
	ReadInput(ctx context.Context) ([]byte, error)

	// Close releases any resources held by the source.
	Close() error
}

// Scheme identifies the backend of a Location.
type Scheme string

const (
	SchemeFile Scheme = "file"
	SchemeGCS  Scheme = "gs"
	SchemeS3   Scheme = "s3"
	SchemeHTTP Scheme = "http"
)

// Location is a parsed input reference.
type Location struct {
	Scheme Scheme
	// Bucket is empty for SchemeFile.
	Bucket string
	// Key is the object key, or the filesystem path for SchemeFile.
	Key string
}

// ParseLocation parses "gs://bucket/key", "s3://bucket/key", an http or
// https URL, or a plain filesystem path. For SchemeHTTP the whole URL is
// kept in Key.
func ParseLocation(loc string) (Location, error) {
	if loc == "" {
		return Location{}, errors.New("source: empty location")
	}

	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		return Location{Scheme: SchemeHTTP, Key: loc}, nil
	}

	for _, scheme := range []Scheme{SchemeGCS, SchemeS3} {
		prefix := string(scheme) + "://"
		if !strings.HasPrefix(loc, prefix) {
			continue
		}
		bucket, key, ok := strings.Cut(strings.TrimPrefix(loc, prefix), "/")
		if !ok || bucket == "" || key == "" {
			return Location{}, fmt.Errorf("source: %q must be %sbucket/key", loc, prefix)
		}
		return Location{Scheme: scheme, Bucket: bucket, Key: key}, nil
	}

	return Location{Scheme: SchemeFile, Key: loc}, nil
}

// String returns the location in the form accepted by ParseLocation.
func (l Location) String() string {
	if l.Scheme == SchemeFile || l.Scheme == SchemeHTTP {
		return l.Key
	}
	return string(l.Scheme) + "://" + l.Bucket + "/" + l.Key
}
