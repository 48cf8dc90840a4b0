package watchlist

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "symbols.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTemp(t, "zion\nAAPL\n\n# financials\nWFC USB\naapl\n")

	symbols, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := []string{"ZION", "AAPL", "WFC", "USB"}
	if !reflect.DeepEqual(symbols, want) {
		t.Errorf("Load() = %v, want %v", symbols, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("Load() succeeded on a missing file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeTemp(t, "\n# only comments\n\n")

	symbols, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(symbols) != 0 {
		t.Errorf("Load() = %v, want empty", symbols)
	}
}
