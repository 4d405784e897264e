package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", appName); dir != want {
		t.Errorf("configDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	dir, err = configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-config", appName); dir != want {
		t.Errorf("configDir() with XDG_CONFIG_HOME = %q, want %q", dir, want)
	}
}

func TestDerivePath(t *testing.T) {
	tests := []struct {
		input, suffix, ext string
		want               string
	}{
		{"web.json", ".levels", "", "web.levels.json"},
		{"data/web.yaml", ".levels", "", "data/web.levels.yaml"},
		{"web", ".levels", "", "web.levels.json"},
		{"web.json", "", ".svg", "web.svg"},
		{"dir.v2/web.json", "", ".pdf", "dir.v2/web.pdf"},
	}
	for _, tt := range tests {
		if got := derivePath(tt.input, tt.suffix, tt.ext); got != tt.want {
			t.Errorf("derivePath(%q, %q, %q) = %q, want %q", tt.input, tt.suffix, tt.ext, got, tt.want)
		}
	}
}
