package platform

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Platform
	}{
		{"linux", Linux},
		{"darwin", Darwin},
		{"macOS", Darwin},
		{"Windows", Windows},
		{" android ", Android},
		{"ios", IOS},
		{"plan9", Unknown},
		{"", Unknown},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for p := range platformNames {
		if Parse(p.String()) != p {
			t.Fatalf("round trip failed for %v", p)
		}
	}
	if Platform(99).String() != "unknown" {
		t.Fatal("out-of-range platform should print as unknown")
	}
}

func TestPurgesCache(t *testing.T) {
	for p := range platformNames {
		if p.PurgesCache() != (p == Windows) {
			t.Fatalf("%v: unexpected PurgesCache", p)
		}
	}
}

func TestPurgeCacheRemovesDir(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "com.example.pomodoro")
	if err := os.MkdirAll(filepath.Join(dir, "EBWebView", "Cache"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "EBWebView", "Cache", "data_0"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	sibling := filepath.Join(base, "other-app")
	os.MkdirAll(sibling, 0o755)

	PurgeCache(Windows, "com.example.pomodoro", func() (string, error) { return base, nil }, discardLogger())

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be removed, stat err = %v", dir, err)
	}
	if _, err := os.Stat(sibling); err != nil {
		t.Fatal("sibling directories must be left alone")
	}
}

func TestPurgeCacheOtherPlatformsNoop(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "com.example.pomodoro")
	os.MkdirAll(dir, 0o755)

	for _, p := range []Platform{Linux, Darwin, Android, IOS, Unknown} {
		PurgeCache(p, "com.example.pomodoro", func() (string, error) { return base, nil }, discardLogger())
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatal("cache must survive on platforms without purge")
	}
}

func TestPurgeCacheSwallowsErrors(t *testing.T) {
	// No panic, no error surfaced.
	PurgeCache(Windows, "com.example.pomodoro", func() (string, error) { return "", errors.New("no home") }, discardLogger())
	PurgeCache(Windows, "com.example.pomodoro", func() (string, error) { return t.TempDir(), nil }, discardLogger())
	PurgeCache(Windows, "", nil, discardLogger())
}
