package workdir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveBaseDirNoRedirect(t *testing.T) {
	dir := t.TempDir()
	if got := ResolveBaseDir(dir); got != dir {
		t.Errorf("ResolveBaseDir = %s, want %s", got, dir)
	}
}

func TestResolveBaseDirRedirect(t *testing.T) {
	dir := t.TempDir()
	target := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, ".nsisync-root"), []byte(target+"\n"), 0644)
	if err != nil {
		t.Fatalf("write root file: %v", err)
	}

	if got := ResolveBaseDir(dir); got != target {
		t.Errorf("ResolveBaseDir = %s, want %s", got, target)
	}
}

func TestResolveBaseDirEmptyRootFile(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ".nsisync-root"), []byte("  \n"), 0644)
	if err != nil {
		t.Fatalf("write root file: %v", err)
	}

	if got := ResolveBaseDir(dir); got != dir {
		t.Errorf("empty root file must not redirect, got %s", got)
	}
}
