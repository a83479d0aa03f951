package config

import (
	"sync"

	"github.com/spf13/pflag"
)

// FlagTracker records which command line flags the user set explicitly,
// so config file values are only overridden by flags that were passed.
type FlagTracker struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewFlagTracker creates an empty tracker
func NewFlagTracker() *FlagTracker {
	return &FlagTracker{flags: make(map[string]bool)}
}

// NewFlagTrackerFromFlagSet records every flag changed on fs
func NewFlagTrackerFromFlagSet(fs *pflag.FlagSet) *FlagTracker {
	ft := NewFlagTracker()
	if fs == nil {
		return ft
	}
	fs.Visit(func(f *pflag.Flag) {
		ft.flags[f.Name] = true
	})
	return ft
}

// Set marks a flag as explicitly set
func (ft *FlagTracker) Set(flagName string) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.flags[flagName] = true
}

// WasSet checks if a flag was explicitly set
func (ft *FlagTracker) WasSet(flagName string) bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.flags[flagName]
}

// Count returns the number of explicitly set flags
func (ft *FlagTracker) Count() int {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return len(ft.flags)
}

// Merge returns override when flagName was set, else base
func Merge[T any](ft *FlagTracker, base, override T, flagName string) T {
	if ft != nil && ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeSlice is Merge for slices; an empty override keeps base
func MergeSlice[T any](ft *FlagTracker, base, override []T, flagName string) []T {
	if ft != nil && ft.WasSet(flagName) && len(override) > 0 {
		return override
	}
	return base
}
