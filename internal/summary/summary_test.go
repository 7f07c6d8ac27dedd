package summary

import "testing"

func TestExtractBasicFields(t *testing.T) {
	lines := []string{
		"-- Board: nrf52840dk_nrf52840",
		"-- Zephyr version: 3.5.0",
		"The C compiler identification is GNU 12.2.0",
		"-- Found devicetree overlay: boards/nrf52840dk.overlay",
		"FLASH:       123456 B       1 MB     11.77%",
		"RAM:          45678 B     256 KB     17.41%",
	}
	s := Extract(lines)

	if s.Board != "nrf52840dk_nrf52840" {
		t.Errorf("Board = %q", s.Board)
	}
	if s.ZephyrVersion != "3.5.0" {
		t.Errorf("ZephyrVersion = %q", s.ZephyrVersion)
	}
	if s.CCompilerID != "GNU 12.2.0" {
		t.Errorf("CCompilerID = %q", s.CCompilerID)
	}
	if s.DevicetreeOverlay != "boards/nrf52840dk.overlay" {
		t.Errorf("DevicetreeOverlay = %q", s.DevicetreeOverlay)
	}
	if s.Flash == "" || s.RAM == "" {
		t.Errorf("Flash/RAM not captured: %q / %q", s.Flash, s.RAM)
	}
}

func TestExtractFirstOccurrenceWins(t *testing.T) {
	lines := []string{
		"-- Board: first_board",
		"-- Board: second_board",
	}
	s := Extract(lines)
	if s.Board != "first_board" {
		t.Errorf("Board = %q, want first occurrence kept", s.Board)
	}
}

func TestExtractIgnoresUsedSizeFlashLine(t *testing.T) {
	lines := []string{"FLASH: Used Size 123456 B"}
	s := Extract(lines)
	if s.Flash != "" {
		t.Errorf("Flash = %q, want empty for Used Size summary line", s.Flash)
	}
}

func TestExtractProgressSteps(t *testing.T) {
	lines := []string{
		"[1/120] Building C object foo.c.obj",
		"[45/120] Linking CXX executable app",
	}
	s := Extract(lines)
	if s.MaxStep != 45 || s.MaxTotalSteps != 120 {
		t.Errorf("MaxStep=%d MaxTotalSteps=%d, want 45/120", s.MaxStep, s.MaxTotalSteps)
	}
}

func TestExtractFailureDetection(t *testing.T) {
	lines := []string{"ninja: build stopped: subcommand failed."}
	s := Extract(lines)
	if !s.Failed {
		t.Error("Failed = false, want true")
	}
}

func TestExtractNoFailureOnCleanBuild(t *testing.T) {
	lines := []string{"[120/120] Linking C executable zephyr.elf"}
	s := Extract(lines)
	if s.Failed {
		t.Error("Failed = true, want false for a clean build")
	}
}

func TestExtractFailedColonRealTarget(t *testing.T) {
	lines := []string{"FAILED: CMakeFiles/app.dir/main.c.obj"}
	s := Extract(lines)
	if !s.Failed {
		t.Error("Failed = false, want true for a real FAILED: target")
	}
}

func TestExtractFailedColonUnderscoreWrapperIgnored(t *testing.T) {
	lines := []string{"FAILED: _sysbuild_subtarget_foo"}
	s := Extract(lines)
	if s.Failed {
		t.Error("Failed = true, want false for a FAILED: _ sysbuild wrapper pseudo-target")
	}
}
