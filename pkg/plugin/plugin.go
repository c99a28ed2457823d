// Package plugin exposes knob banks to hosts: a catalog of the built-in
// plugins and the per-instance shim hosts drive.
package plugin

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/justyntemme/realknobs/pkg/framework/plugin"
)

// Plugin is implemented by every catalog entry.
type Plugin interface {
	// GetInfo returns plugin metadata
	GetInfo() plugin.Info

	// CreateProcessor creates a new, independent instance
	CreateProcessor() (*Instance, error)
}

// ErrUnknownPlugin is returned by Lookup for an unregistered ID.
var ErrUnknownPlugin = errors.New("plugin: unknown plugin")

var (
	catalogMu sync.RWMutex
	catalog   = map[string]Plugin{}
)

// Register adds p to the catalog under its info ID.
func Register(p Plugin) error {
	info := p.GetInfo()
	if err := info.ValidateUID(); err != nil {
		return err
	}

	catalogMu.Lock()
	defer catalogMu.Unlock()

	if _, exists := catalog[info.ID]; exists {
		return fmt.Errorf("plugin: %q already registered", info.ID)
	}
	catalog[info.ID] = p
	return nil
}

// Lookup returns the plugin registered under id.
func Lookup(id string) (Plugin, error) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()

	p, ok := catalog[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, id)
	}
	return p, nil
}

// All returns every registered plugin ordered by ID.
func All() []Plugin {
	catalogMu.RLock()
	defer catalogMu.RUnlock()

	out := make([]Plugin, 0, len(catalog))
	for _, p := range catalog {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GetInfo().ID < out[j].GetInfo().ID
	})
	return out
}

// IDs returns the registered plugin IDs in order.
func IDs() []string {
	plugins := All()
	ids := make([]string, len(plugins))
	for i, p := range plugins {
		ids[i] = p.GetInfo().ID
	}
	return ids
}
