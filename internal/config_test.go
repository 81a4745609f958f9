package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func noEnv(string) string { return "" }

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
store_path: /data/expenses.db
backend: sqlite
currency: eur
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.StorePath != "/data/expenses.db" || cfg.Backend != "sqlite" || cfg.Currency != "eur" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: postgres\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("LoadConfig() error = %v, want ErrUnknownBackend", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("store_path: [unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadConfigOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := LoadConfigOrDefault(missing, false)
	if err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("expected empty config, got %+v", cfg)
	}

	if _, err := LoadConfigOrDefault(missing, true); err == nil {
		t.Error("missing explicit config should fail")
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	want := ConfigTemplate()

	if err := want.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if *got != *want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestConfig_Resolve(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg := &Config{StorePath: "/from/config.json", Backend: "json", Currency: "sek"}
	env := map[string]string{
		EnvStorePath: "/from/env.json",
		EnvCurrency:  "nok",
	}
	getenv := func(k string) string { return env[k] }

	tests := []struct {
		name  string
		cfg   *Config
		flags Settings
		env   func(string) string
		want  Settings
	}{
		{
			name: "defaults",
			cfg:  nil,
			env:  noEnv,
			want: Settings{StorePath: filepath.Join(home, ".expense-tracker", "expenses.json"), Backend: "json"},
		},
		{
			name: "sqlite default path",
			cfg:  &Config{Backend: "sqlite"},
			env:  noEnv,
			want: Settings{StorePath: filepath.Join(home, ".expense-tracker", "expenses.db"), Backend: "sqlite"},
		},
		{
			name: "config file",
			cfg:  cfg,
			env:  noEnv,
			want: Settings{StorePath: "/from/config.json", Backend: "json", Currency: "SEK"},
		},
		{
			name: "environment over config",
			cfg:  cfg,
			env:  getenv,
			want: Settings{StorePath: "/from/env.json", Backend: "json", Currency: "NOK"},
		},
		{
			name:  "flags over everything",
			cfg:   cfg,
			flags: Settings{StorePath: "/from/flag.db", Backend: "sqlite", Currency: "usd"},
			env:   getenv,
			want:  Settings{StorePath: "/from/flag.db", Backend: "sqlite", Currency: "USD"},
		},
		{
			name:  "home expansion",
			cfg:   nil,
			flags: Settings{StorePath: "~/money/expenses.json"},
			env:   noEnv,
			want:  Settings{StorePath: filepath.Join(home, "money", "expenses.json"), Backend: "json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.Resolve(tt.flags, tt.env)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConfig_ResolveUnknownBackend(t *testing.T) {
	_, err := (&Config{}).Resolve(Settings{Backend: "csv"}, noEnv)
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Resolve() error = %v, want ErrUnknownBackend", err)
	}
}
