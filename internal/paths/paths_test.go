package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCacheRootOverrideWins(t *testing.T) {
	envDir := filepath.Join(t.TempDir(), "env")
	t.Setenv(CacheDirEnv, envDir)

	override := filepath.Join(t.TempDir(), "flag", "nested")
	got, err := CacheRoot(override)
	if err != nil {
		t.Fatalf("CacheRoot: %v", err)
	}
	if got != override {
		t.Fatalf("expected %s, got %s", override, got)
	}
	if ok, _ := DirExists(got); !ok {
		t.Fatalf("expected %s to be created", got)
	}
	if ok, _ := DirExists(envDir); ok {
		t.Fatalf("env dir %s should not be created when override is set", envDir)
	}
}

func TestCacheRootFromEnv(t *testing.T) {
	envDir := filepath.Join(t.TempDir(), "env")
	t.Setenv(CacheDirEnv, envDir)

	got, err := CacheRoot("")
	if err != nil {
		t.Fatalf("CacheRoot: %v", err)
	}
	if got != envDir {
		t.Fatalf("expected %s, got %s", envDir, got)
	}
}

func TestCacheRootDefaultUsesXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout only applies on linux")
	}
	xdg := t.TempDir()
	t.Setenv(CacheDirEnv, "")
	t.Setenv("XDG_CACHE_HOME", xdg)

	got, err := CacheRoot("")
	if err != nil {
		t.Fatalf("CacheRoot: %v", err)
	}
	if want := filepath.Join(xdg, "toolfetch"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestIsExecutable(t *testing.T) {
	dir := t.TempDir()

	exe := filepath.Join(dir, "tool")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	plain := filepath.Join(dir, "data")
	if err := os.WriteFile(plain, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !IsExecutable(exe) {
		t.Fatalf("expected %s to be executable", exe)
	}
	if IsExecutable(dir) {
		t.Fatal("directories are never executable")
	}
	if IsExecutable(filepath.Join(dir, "missing")) {
		t.Fatal("missing files are never executable")
	}
	if runtime.GOOS != "windows" && IsExecutable(plain) {
		t.Fatalf("expected %s without exec bits to be rejected", plain)
	}
}

func TestFileAndDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if ok, err := FileExists(file); err != nil || !ok {
		t.Fatalf("FileExists(%s) = %v, %v", file, ok, err)
	}
	if ok, err := FileExists(dir); err != nil || ok {
		t.Fatalf("FileExists(dir) = %v, %v", ok, err)
	}
	if ok, err := DirExists(dir); err != nil || !ok {
		t.Fatalf("DirExists(%s) = %v, %v", dir, ok, err)
	}
	if ok, err := DirExists(filepath.Join(dir, "nope")); err != nil || ok {
		t.Fatalf("DirExists(missing) = %v, %v", ok, err)
	}
}
