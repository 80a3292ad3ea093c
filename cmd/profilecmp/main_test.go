package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, verbose, err := parse("resolution", []string{"-data", "runs", "-v"})
	require.NoError(t, err)
	assert.True(t, verbose)
	assert.Equal(t, "runs", cfg.DataDir)
	assert.Equal(t, "resolution", cfg.Name)

	cfg, _, err = parse("sampling", []string{"-workers", "3", "-strict", "cyl", "200", "10", "100", "1000", "cylinder flow"})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "cylinder flow", cfg.Figure.Title)
	assert.Equal(t, "niPCE (200 samples)", cfg.Datasets[3].Label)
	assert.Equal(t, "data", cfg.DataDir)

	cfg, _, err = parse("legacy", []string{"cyl", "10", "100", "1000", "200", "old"})
	require.NoError(t, err)
	assert.Equal(t, "Monte Carlo (10 samples)", cfg.Datasets[0].Label)
	assert.Equal(t, "niPCE (200 samples)", cfg.Datasets[3].Label)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		cmd  string
		args []string
	}{
		{"plot", nil},
		{"resolution", []string{"extra"}},
		{"sampling", []string{"cyl", "1", "2", "3"}},
		{"sampling", []string{"cyl", "many", "10", "100", "1000", "t"}},
		{"legacy", []string{"cyl"}},
		{"run", nil},
		{"run", []string{"-config", "does-not-exist.yaml"}},
		{"resolution", []string{"-config", "x.yaml"}},
	}
	for _, tc := range tests {
		if _, _, err := parse(tc.cmd, tc.args); err == nil {
			t.Errorf("%s %v: expected an error", tc.cmd, tc.args)
		}
	}
}
