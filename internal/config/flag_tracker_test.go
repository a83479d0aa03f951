package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagTrackerFromFlagSet(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Float64("threshold", 0.5, "")
	fs.Int("num-bands", 20, "")
	fs.StringSlice("include", nil, "")
	require.NoError(t, fs.Parse([]string{"--threshold", "0.7"}))

	ft := NewFlagTrackerFromFlagSet(fs)
	assert.True(t, ft.WasSet("threshold"))
	assert.False(t, ft.WasSet("num-bands"))
	assert.Equal(t, 1, ft.Count())

	assert.Equal(t, 0.7, Merge(ft, 0.3, 0.7, "threshold"))
	assert.Equal(t, 12, Merge(ft, 12, 20, "num-bands"))
	assert.Equal(t, []string{"a"}, MergeSlice(ft, []string{"a"}, nil, "include"))
}

func TestFlagTrackerSet(t *testing.T) {
	ft := NewFlagTracker()
	ft.Set("include")
	assert.Equal(t, []string{"b"}, MergeSlice(ft, []string{"a"}, []string{"b"}, "include"))
	assert.Equal(t, []string{"a"}, MergeSlice(ft, []string{"a"}, []string{}, "include"))
}

func TestMergeNilTracker(t *testing.T) {
	assert.Equal(t, "base", Merge(nil, "base", "override", "method"))
	assert.Equal(t, 0, NewFlagTrackerFromFlagSet(nil).Count())
}
