package pipeline

import (
	"strings"
	"testing"

	"github.com/mako10k/logpilot/internal/logmodel"
)

func TestRunProducesGenericModeWhenNoProfilesLoaded(t *testing.T) {
	lines := []string{
		"compiling foo.c",
		"error: undefined reference to spi_init",
		"linking app",
	}
	result := Run(lines, Options{BudgetTokens: 1000, ReserveTokens: 200})

	if result.Digest.Mode != logmodel.GenericModeName {
		t.Errorf("Mode = %q, want %q", result.Digest.Mode, logmodel.GenericModeName)
	}
	if result.Digest.ErrorBlocks != 1 {
		t.Errorf("ErrorBlocks = %d, want 1", result.Digest.ErrorBlocks)
	}
	if result.Digest.TotalLines != len(lines) {
		t.Errorf("TotalLines = %d, want %d", result.Digest.TotalLines, len(lines))
	}
}

func TestRunWarnsWhenRequestedModeNotFound(t *testing.T) {
	result := Run([]string{"hello"}, Options{RequestedMode: "nonexistent", BudgetTokens: 100, ReserveTokens: 10})
	if result.ModeWarning == "" {
		t.Error("ModeWarning should be set when the requested mode is not loaded")
	}
	if !strings.Contains(result.ModeWarning, "nonexistent") {
		t.Errorf("ModeWarning = %q, should name the requested mode", result.ModeWarning)
	}
	if result.Digest.Mode != logmodel.GenericModeName {
		t.Errorf("Mode = %q, want generic fallback", result.Digest.Mode)
	}
}

func TestRunSelectsRequestedModeWhenLoaded(t *testing.T) {
	profiles := []logmodel.ModeProfile{{Name: "zephyr", Signatures: []string{"Zephyr"}}}
	result := Run([]string{"-- Zephyr version: 3.5.0"}, Options{RequestedMode: "zephyr", Profiles: profiles, BudgetTokens: 100, ReserveTokens: 10})
	if result.Digest.Mode != "zephyr" {
		t.Errorf("Mode = %q, want %q", result.Digest.Mode, "zephyr")
	}
	if result.ModeWarning != "" {
		t.Errorf("ModeWarning = %q, want empty", result.ModeWarning)
	}
}

func TestEstimateTokensConvenienceWrapper(t *testing.T) {
	if got := EstimateTokens(nil); got != 0 {
		t.Errorf("EstimateTokens(nil) = %d, want 0", got)
	}
}
