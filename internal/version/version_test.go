package version

import "testing"

func TestGetDefaultsToDev(t *testing.T) {
	info := Get()
	if info.Version != "dev" {
		t.Errorf("expected dev version, got %q", info.Version)
	}
	if info.Commit != "dev" || info.BuildDate != "dev" {
		t.Errorf("expected dev build metadata, got %+v", info)
	}
}

func TestGetUsesLinkedValues(t *testing.T) {
	Version, Commit, BuildDate = "1.2.3", "abc1234", "2026-08-25"
	t.Cleanup(func() { Version, Commit, BuildDate = "", "", "" })

	info := Get()
	if info.Version != "1.2.3" {
		t.Errorf("expected linked version, got %q", info.Version)
	}
	if info.Commit != "abc1234" {
		t.Errorf("expected linked commit, got %q", info.Commit)
	}
}
