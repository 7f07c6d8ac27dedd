package validate

import (
	"strings"
	"testing"

	"github.com/mako10k/logpilot/internal/logmodel"
)

func TestFixEntryValid(t *testing.T) {
	e := logmodel.FixEntry{
		Pattern: "undefined reference to spi_init",
		Tags:    []string{"linker"},
		FixText: "Add spi.c to CMakeLists.txt sources.",
	}
	if err := FixEntry(e); err != nil {
		t.Errorf("FixEntry() = %v, want nil", err)
	}
}

func TestFixEntryMissingTags(t *testing.T) {
	e := logmodel.FixEntry{
		Pattern: "undefined reference to spi_init",
		FixText: "Add spi.c to CMakeLists.txt sources.",
	}
	err := FixEntry(e)
	if err == nil {
		t.Fatal("FixEntry() = nil, want an error for missing tags")
	}
	if !strings.Contains(err.Error(), "spi_init") {
		t.Errorf("error %q should name the offending entry's pattern", err.Error())
	}
}

func TestFixEntryEmptyPattern(t *testing.T) {
	e := logmodel.FixEntry{
		Tags:    []string{"linker"},
		FixText: "fix it",
	}
	if err := FixEntry(e); err == nil {
		t.Error("FixEntry() = nil, want an error for an empty pattern")
	}
}
