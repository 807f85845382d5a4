// Package webconfig renders and reads the basic_auth_users section of a
// Prometheus-style web configuration file.
package webconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultKey is the key under which basic auth users are configured
const DefaultKey = "basic_auth_users"

// ErrKeyNotFound is returned by Parse when the users key is absent
var ErrKeyNotFound = errors.New("users key not found")

// Entry is a single username and password hash pair
type Entry struct {
	Username string
	Hash     string
}

// Render writes key followed by one indented "username: hash" line per entry.
// Scalars YAML would misread are quoted; nothing is written on error.
func Render(w io.Writer, key string, entries ...Entry) error {
	var buf bytes.Buffer

	k, err := scalar(key)
	if err != nil {
		return err
	}
	fmt.Fprintf(&buf, "%s:\n", k)

	for _, e := range entries {
		username, err := scalar(e.Username)
		if err != nil {
			return err
		}
		hash, err := scalar(e.Hash)
		if err != nil {
			return err
		}
		fmt.Fprintf(&buf, "  %s: %s\n", username, hash)
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// Parse decodes data and returns the username to hash map stored under key.
// data may be a bare snippet or a complete web configuration file.
func Parse(data []byte, key string) (map[string]string, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse web config YAML: %w", err)
	}

	node, ok := doc[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrKeyNotFound)
	}

	users := make(map[string]string)
	if err := node.Decode(&users); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}

	return users, nil
}

// scalar returns value as single-line YAML scalar text
func scalar(value string) (string, error) {
	out, err := yaml.Marshal(str(value))
	if err != nil {
		return "", fmt.Errorf("failed to encode %q: %w", value, err)
	}

	text := strings.TrimSuffix(string(out), "\n")
	if strings.Contains(text, "\n") {
		// folded or block style; a double-quoted scalar always fits one line
		text = strconv.Quote(value)
	}
	return text, nil
}

// str builds a scalar that always round-trips as a string
func str(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
