package updater

import "testing"

func TestNewCheckerValidatesRepo(t *testing.T) {
	if _, err := NewChecker("not-a-repo", "", "1.0.0"); err == nil {
		t.Error("Expected error for repository without owner")
	}
	if _, err := NewChecker("owner/", "", "1.0.0"); err == nil {
		t.Error("Expected error for empty repository name")
	}
	if _, err := NewChecker("owner/name", "", "1.0.0"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestNewerVersion(t *testing.T) {
	tests := []struct {
		latest, current string
		want            bool
	}{
		{"1.0.1", "1.0.0", true},
		{"1.1.0", "1.0.9", true},
		{"2.0.0", "1.9.9", true},
		{"1.0.0", "1.0.0", false},
		{"1.0.0", "1.0.1", false},
		{"0.9.0", "1.0.0", false},
		{"1.0.0.1", "1.0.0", true},
		{"", "1.0.0", false},
		{"10.0.0", "9.0.0", true},
	}

	for _, tt := range tests {
		if got := newerVersion(tt.latest, tt.current); got != tt.want {
			t.Errorf("newerVersion(%q, %q) = %v, want %v", tt.latest, tt.current, got, tt.want)
		}
	}
}

func TestCachedStatusBeforeCheck(t *testing.T) {
	checker, err := NewChecker("owner/name", "", "1.0.0")
	if err != nil {
		t.Fatalf("NewChecker failed: %v", err)
	}
	if status := checker.CachedStatus(); status != nil {
		t.Errorf("Expected nil status before first check, got %+v", status)
	}
}
