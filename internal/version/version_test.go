package version

import "testing"

func TestGetVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3"
	if got := GetVersion(); got != "1.2.3" {
		t.Errorf("GetVersion() = %q, want %q", got, "1.2.3")
	}

	Version = ""
	if got := GetVersion(); got == "" {
		t.Error("GetVersion() should never be empty")
	}
}
