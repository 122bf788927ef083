package ringalloc

import (
	"strings"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	t.Run("Valid config", func(t *testing.T) {
		c := Config{BufferSize: 100, MinBlockSize: 5, MaxBlockSize: 10}
		if err := c.Validate(); err != nil {
			t.Errorf("expected a valid config, but got error: %v", err)
		}
	})

	t.Run("Minimum viable config", func(t *testing.T) {
		c := Config{BufferSize: 1, MinBlockSize: 1, MaxBlockSize: 1}
		if err := c.Validate(); err != nil {
			t.Errorf("expected a valid config, but got error: %v", err)
		}
	})

	testCases := []struct {
		name      string
		config    Config
		expectErr string
	}{
		{
			"Zero MinBlockSize",
			Config{BufferSize: 100, MinBlockSize: 0, MaxBlockSize: 10},
			"MinBlockSize must be at least 1",
		},
		{
			"MinBlockSize above MaxBlockSize",
			Config{BufferSize: 100, MinBlockSize: 11, MaxBlockSize: 10},
			"MinBlockSize must not exceed MaxBlockSize",
		},
		{
			"MaxBlockSize above ledger record range",
			Config{BufferSize: 1000, MinBlockSize: 5, MaxBlockSize: MaxLedgerBlockSize + 1},
			"must not exceed 255",
		},
		{
			"BufferSize below MaxBlockSize",
			Config{BufferSize: 5, MinBlockSize: 5, MaxBlockSize: 10},
			"BufferSize must be at least MaxBlockSize",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if err == nil {
				t.Fatal("expected a validation error, but got nil")
			}
			if !strings.Contains(err.Error(), tc.expectErr) {
				t.Errorf("expected error to contain %q, got %q", tc.expectErr, err.Error())
			}
		})
	}

	t.Run("Multiple invalid fields", func(t *testing.T) {
		c := Config{BufferSize: -1, MinBlockSize: 0, MaxBlockSize: 300}
		err := c.Validate()
		if err == nil {
			t.Fatal("expected an error for multiple invalid fields, but got nil")
		}
		errString := err.Error()
		if !strings.Contains(errString, "MinBlockSize must be at least 1") {
			t.Errorf("error message missing MinBlockSize validation: got %q", errString)
		}
		if !strings.Contains(errString, "must not exceed 255") {
			t.Errorf("error message missing MaxBlockSize validation: got %q", errString)
		}
		if !strings.Contains(errString, "BufferSize must be at least MaxBlockSize") {
			t.Errorf("error message missing BufferSize validation: got %q", errString)
		}
	})
}

func TestConfigLedgerSlots(t *testing.T) {
	testCases := []struct {
		name     string
		config   Config
		expected int
	}{
		{"Evenly divisible", Config{BufferSize: 100, MinBlockSize: 5, MaxBlockSize: 10}, 20},
		{"Truncating division", Config{BufferSize: 100, MinBlockSize: 7, MaxBlockSize: 10}, 14},
		{"Single-byte blocks", Config{BufferSize: 10, MinBlockSize: 1, MaxBlockSize: 1}, 10},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.config.ledgerSlots(); got != tc.expected {
				t.Errorf("expected %d ledger slots, got %d", tc.expected, got)
			}
		})
	}
}
