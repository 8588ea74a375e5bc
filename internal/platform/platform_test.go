package platform

import (
	"context"
	"runtime"
	"testing"
)

func TestHost(t *testing.T) {
	info := Host()
	if info.OS != runtime.GOOS {
		t.Errorf("OS = %v, want %v", info.OS, runtime.GOOS)
	}
	if info.ArchRaw != runtime.GOARCH {
		t.Errorf("ArchRaw = %v, want %v", info.ArchRaw, runtime.GOARCH)
	}
	if info.Platform != "" {
		t.Errorf("Host() should not populate distro, got %q", info.Platform)
	}
}

func TestRealDetector_Detect(t *testing.T) {
	info, err := NewDetector().Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.OS != runtime.GOOS {
		t.Errorf("OS = %v, want %v", info.OS, runtime.GOOS)
	}
	if info.Platform != "" && info.Family == "" {
		t.Error("Family should be set when Platform is set")
	}
	if runtime.GOOS != "linux" && info.Platform != "" {
		t.Errorf("Platform should be empty on non-Linux, got %v", info.Platform)
	}
}

func TestNormalizeArch(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"amd64", "amd64"},
		{"x86_64", "amd64"},
		{"arm64", "arm64"},
		{"aarch64", "arm64"},
		{"riscv64", "riscv64"},
	}
	for _, tt := range tests {
		if got := normalizeArch(tt.in); got != tt.want {
			t.Errorf("normalizeArch(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapFamily(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debian", FamilyDebian},
		{" Ubuntu ", FamilyDebian},
		{"rhel", FamilyRHEL},
		{"manjaro", FamilyArch},
		{"plan9", FamilyUnknown},
	}
	for _, tt := range tests {
		if got := mapFamily(tt.in); got != tt.want {
			t.Errorf("mapFamily(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"bare", Info{OS: "darwin", Arch: "arm64"}, "darwin/arm64"},
		{"distro", Info{OS: "linux", Arch: "amd64", Platform: "ubuntu", Version: "22.04"}, "linux/amd64 (ubuntu 22.04)"},
		{"distro_no_version", Info{OS: "linux", Arch: "amd64", Platform: "arch"}, "linux/amd64 (arch)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
