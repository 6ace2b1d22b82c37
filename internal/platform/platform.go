// Package platform holds the operating-system specific startup hooks.
package platform

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Platform is a small enumerated tag for the runtime target.
type Platform int

const (
	Unknown Platform = iota
	Linux
	Darwin
	Windows
	Android
	IOS
)

var platformNames = map[Platform]string{
	Unknown: "unknown",
	Linux:   "linux",
	Darwin:  "darwin",
	Windows: "windows",
	Android: "android",
	IOS:     "ios",
}

func (p Platform) String() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return platformNames[Unknown]
}

// Parse maps a GOOS-style name to a Platform. Unrecognised names are Unknown.
func Parse(name string) Platform {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "macos" {
		return Darwin
	}
	for p, n := range platformNames {
		if n == name {
			return p
		}
	}
	return Unknown
}

// Current returns the platform the binary is running on.
func Current() Platform {
	return Parse(runtime.GOOS)
}

// PurgesCache reports whether the platform clears its cache directory at
// startup. Only Windows does: the embedded web view there leaves a stale
// cache behind between releases.
func (p Platform) PurgesCache() bool {
	return p == Windows
}

// CacheDirFunc resolves the user cache directory. os.UserCacheDir in production.
type CacheDirFunc func() (string, error)

// PurgeCache removes <cache dir>/<appID> recursively when p supports it.
// It is best effort: every failure is logged at debug level and swallowed.
func PurgeCache(p Platform, appID string, cacheDir CacheDirFunc, logger *slog.Logger) {
	if !p.PurgesCache() {
		return
	}
	if appID == "" {
		logger.Debug("cache purge skipped: empty app id")
		return
	}
	if cacheDir == nil {
		cacheDir = os.UserCacheDir
	}

	base, err := cacheDir()
	if err != nil {
		logger.Debug("cache purge skipped: no cache dir", "error", err)
		return
	}
	dir := filepath.Join(base, appID)
	if _, err := os.Stat(dir); err != nil {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		logger.Debug("cache purge failed", "dir", dir, "error", err)
		return
	}
	logger.Info("cache purged", "dir", dir)
}
