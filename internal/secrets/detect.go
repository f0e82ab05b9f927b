package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
)

// warnOnce prints msg to stderr unless a marker file says a warning was already shown.
// Set CODA_QUIET=1 to suppress entirely.
func warnOnce(msg string) {
	if quietMode() || fileExists(warningMarkerPath()) {
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}

// markWarningsDone persists the marker so future commands stay quiet.
func markWarningsDone() {
	path := warningMarkerPath()
	if fileExists(path) {
		return
	}
	_ = os.MkdirAll(filepath.Dir(path), 0700)
	_ = os.WriteFile(path, []byte("1"), 0600)
}

func warningMarkerPath() string {
	return filepath.Join(xdg.DataHome, ServiceName, ".file-store-warning-shown")
}

func quietMode() bool {
	v := os.Getenv("CODA_QUIET")
	return v == "1" || v == "true"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// NewStore picks the platform backend: OS keyring when usable, otherwise the
// encrypted file under the XDG data directory.
func NewStore() (Store, error) {
	dir := filepath.Join(xdg.DataHome, ServiceName)
	password := os.Getenv("CODA_STORE_PASSWORD")

	if IsWSL() || IsHeadless() {
		warnOnce("Detected WSL/headless environment, using encrypted file storage")
		store, err := NewFileStore(dir, password)
		if err != nil {
			return nil, err
		}
		markWarningsDone()
		return store, nil
	}

	store, err := NewKeyringStore()
	if err != nil {
		warnOnce(fmt.Sprintf("Keyring unavailable (%v), falling back to encrypted file", err))
		fstore, ferr := NewFileStore(dir, password)
		if ferr != nil {
			return nil, ferr
		}
		markWarningsDone()
		return fstore, nil
	}

	return store, nil
}

// Backend names the storage NewStore would pick, for user-facing messages.
func Backend() string {
	if IsWSL() || IsHeadless() {
		return "encrypted file"
	}
	return "keyring"
}

// IsWSL returns true if running under Windows Subsystem for Linux.
func IsWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}

	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}

	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

// IsHeadless returns true on Linux without an X11 or Wayland display.
func IsHeadless() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	return os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}
