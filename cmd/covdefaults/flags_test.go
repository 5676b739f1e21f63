package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jamesainslie/covdefaults/pkg/covdefaults/config"
	"github.com/jamesainslie/covdefaults/pkg/covdefaults/configurer"
)

// setTestConfig installs a plugin config for the duration of a test,
// the way initConfig would after loading.
func setTestConfig(t *testing.T, c config.Config) {
	t.Helper()
	if c.PythonVersion == "" {
		c.PythonVersion = config.DefaultPythonVersion
	}
	if c.Format == "" {
		c.Format = config.DefaultFormat
	}
	prev := cfg
	cfg = &c
	t.Cleanup(func() { cfg = prev })
}

func TestBuildOptions(t *testing.T) {
	tests := []struct {
		name         string
		config       config.Config
		wantPlatform string
		wantVersion  string
		wantPackages []configurer.PackageMapping
		wantErr      bool
	}{
		{
			name:        "default values",
			config:      config.Config{},
			wantVersion: "3.12",
		},
		{
			name: "identity override",
			config: config.Config{
				Identity: config.IdentityConfig{Platform: "win32"},
			},
			wantPlatform: "win32",
			wantVersion:  "3.12",
		},
		{
			name:        "python version override",
			config:      config.Config{PythonVersion: "3.9"},
			wantVersion: "3.9",
		},
		{
			name: "installed packages parsed",
			config: config.Config{
				InstalledPackages: []string{"mypkg:src", "other"},
			},
			wantVersion: "3.12",
			wantPackages: []configurer.PackageMapping{
				{Name: "mypkg", Dest: "src"},
				{Name: "other"},
			},
		},
		{
			name:    "invalid python version",
			config:  config.Config{PythonVersion: "three.twelve"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setTestConfig(t, tt.config)
			opts, err := buildOptions()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("buildOptions: %v", err)
			}
			if opts.Identity.Platform != tt.wantPlatform {
				t.Errorf("Identity.Platform = %q, want %q", opts.Identity.Platform, tt.wantPlatform)
			}
			if got := opts.PythonVersion.String(); got != tt.wantVersion {
				t.Errorf("PythonVersion = %q, want %q", got, tt.wantVersion)
			}
			if len(opts.InstalledPackages) != len(tt.wantPackages) {
				t.Fatalf("InstalledPackages = %v, want %v", opts.InstalledPackages, tt.wantPackages)
			}
			for i, want := range tt.wantPackages {
				if opts.InstalledPackages[i] != want {
					t.Errorf("InstalledPackages[%d] = %v, want %v", i, opts.InstalledPackages[i], want)
				}
			}
		})
	}
}

func TestOutputFormat(t *testing.T) {
	setTestConfig(t, config.Config{Format: "yaml"})
	if got := outputFormat(); got != "yaml" {
		t.Errorf("outputFormat() = %q, want yaml", got)
	}
}

func TestNewConfigurer(t *testing.T) {
	setTestConfig(t, config.Config{})

	c, err := newConfigurer()
	if err != nil {
		t.Fatalf("newConfigurer: %v", err)
	}
	if c == nil {
		t.Fatal("newConfigurer returned nil")
	}
}

// The persistent flags the root command declares and the bindings
// config.Load applies must stay in step; a flag the loader does not
// know is silently ignored.
func TestPersistentFlagsReachConfig(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	if err := flags.Set("python-version", "3.8"); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = flags.Set("python-version", "") }()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("python_version: \"3.10\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := config.Load(path, flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.PythonVersion != "3.8" {
		t.Errorf("PythonVersion = %q, want flag value 3.8", loaded.PythonVersion)
	}
}
