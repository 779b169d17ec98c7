package startup

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("GALLERY_TEST_SET", "value")
	t.Setenv("GALLERY_TEST_EMPTY", "")

	if got := getEnv("GALLERY_TEST_SET", "default"); got != "value" {
		t.Errorf("expected set value, got %q", got)
	}
	if got := getEnv("GALLERY_TEST_EMPTY", "default"); got != "default" {
		t.Errorf("empty var should fall back to default, got %q", got)
	}
	if got := getEnv("GALLERY_TEST_UNSET", "default"); got != "default" {
		t.Errorf("unset var should fall back to default, got %q", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value        string
		defaultValue bool
		expected     bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"on", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"off", true, false},
		{"", true, true},
		{"", false, false},
		{"garbage", true, true},
		{"garbage", false, false},
	}

	for _, tt := range tests {
		t.Setenv("GALLERY_TEST_BOOL", tt.value)
		if got := getEnvBool("GALLERY_TEST_BOOL", tt.defaultValue); got != tt.expected {
			t.Errorf("getEnvBool(%q, %v) = %v, expected %v", tt.value, tt.defaultValue, got, tt.expected)
		}
	}
}

func TestLoadConfigRequiresManifestURL(t *testing.T) {
	t.Setenv("MANIFEST_JSON_URL", "")
	t.Setenv("MANIFEST_CSV_URL", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when no manifest URL is configured")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MANIFEST_JSON_URL", "https://example.com/manifest.json")
	t.Setenv("MANIFEST_CSV_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("RELOAD_INTERVAL", "")
	t.Setenv("CACHE_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.ReloadInterval.Minutes() != 30 {
		t.Errorf("expected default reload interval 30m, got %s", cfg.ReloadInterval)
	}
	if !cfg.CacheEnabled {
		t.Error("cache should be enabled when the directory is writable")
	}
}

func TestLoadConfigInvalidReloadInterval(t *testing.T) {
	t.Setenv("MANIFEST_JSON_URL", "https://example.com/manifest.json")
	t.Setenv("RELOAD_INTERVAL", "soon")
	t.Setenv("CACHE_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ReloadInterval.Minutes() != 30 {
		t.Errorf("invalid interval should fall back to 30m, got %s", cfg.ReloadInterval)
	}
}
