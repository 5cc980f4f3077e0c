// internal/domain/catalog/feed.go
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultFeed []byte

// Feed is the on-disk shape of a catalog document
type Feed struct {
	Vehicles []Vehicle `yaml:"vehicles"`
	Products []Product `yaml:"products"`
}

// Default returns the built-in demo catalog
func Default() (*Snapshot, error) {
	return LoadYAML(bytes.NewReader(defaultFeed))
}

// MustDefault is Default for program initialisation; it panics on a broken embedded feed
func MustDefault() *Snapshot {
	s, err := Default()
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded feed: %v", err))
	}
	return s
}

// DefaultFeed returns the decoded built-in feed, used to seed external stores
func DefaultFeed() (*Feed, error) {
	return decodeFeed(bytes.NewReader(defaultFeed))
}

// LoadYAML reads a catalog document
func LoadYAML(r io.Reader) (*Snapshot, error) {
	feed, err := decodeFeed(r)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(feed.Vehicles, feed.Products)
}

// LoadFile reads a catalog document from disk
func LoadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return LoadYAML(f)
}

// ReadFeedFile decodes a catalog document without building a snapshot
func ReadFeedFile(path string) (*Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return decodeFeed(f)
}

func decodeFeed(r io.Reader) (*Feed, error) {
	var feed Feed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode catalog feed: %w", err)
	}
	return &feed, nil
}
