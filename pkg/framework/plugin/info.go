package plugin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptyID is returned by ValidateUID for a plugin without an ID.
var ErrEmptyID = errors.New("plugin: empty plugin id")

// namespace scopes plugin UIDs derived from reverse-DNS plugin IDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("realknobs.plugins"))

// Info contains plugin metadata
type Info struct {
	ID          string // Unique plugin identifier (e.g., "real_knobs_x8")
	Label       string // Short name the host shows
	Description string
	Maker       string
	HomePage    string
	License     string
	Version     string // Semantic version (e.g., "0.1.0")
	Category    string
}

// UID derives a stable 16-byte identifier from the plugin ID.
func (i Info) UID() [16]byte {
	return uuid.NewSHA1(namespace, []byte(i.ID))
}

// ValidateUID checks that a UID can be derived.
func (i Info) ValidateUID() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrEmptyID
	}
	return nil
}

// VersionCode packs Version as major<<16 | minor<<8 | micro.
func (i Info) VersionCode() (uint32, error) {
	parts := strings.Split(i.Version, ".")
	if len(parts) != 3 {
		return 0, fmt.Errorf("plugin: version %q is not major.minor.micro", i.Version)
	}

	var code uint32
	for _, part := range parts {
		n, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("plugin: version %q: %w", i.Version, err)
		}
		code = code<<8 | uint32(n)
	}
	return code, nil
}
