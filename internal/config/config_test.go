package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_EnvDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("SURREAL_PASSWORD", "secret")

	// Explicit CONFIG_PATH pointing at a missing file must fail.
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}

	os.Unsetenv("CONFIG_PATH")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Counter.ReadBudget != 8*time.Second {
		t.Errorf("counter.read_budget: got %v, want 8s", cfg.Counter.ReadBudget)
	}
	if cfg.Counter.WriteBudget != 5*time.Second {
		t.Errorf("counter.write_budget: got %v, want 5s", cfg.Counter.WriteBudget)
	}
	if len(cfg.Counter.Sevaks) != 2 {
		t.Fatalf("sevaks: got %d, want 2", len(cfg.Counter.Sevaks))
	}
	if cfg.Counter.Sevaks[0].ID != "sevak1" || cfg.Counter.Sevaks[0].DisplayName != "Sevak 1" {
		t.Errorf("sevak roster parsed wrong: %+v", cfg.Counter.Sevaks)
	}
	if cfg.Counter.ResetToken != "RESET" {
		t.Errorf("reset_token: got %q", cfg.Counter.ResetToken)
	}
}

func TestLoad_YAMLOverriddenByEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
surreal:
  password: from-yaml
counter:
  sevaks: "a:Alpha,b:Beta,c:Gamma"
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("env should win over yaml: got %d", cfg.Server.Port)
	}
	if len(cfg.Counter.Sevaks) != 3 {
		t.Errorf("sevaks from yaml: got %d, want 3", len(cfg.Counter.Sevaks))
	}
}

func TestParseSevaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"two", "sevak1:Sevak 1,sevak2:Sevak 2", 2, false},
		{"empty", "", 0, false},
		{"trailing comma", "a:A,", 1, false},
		{"missing name", "a:", 0, true},
		{"missing colon", "justanid", 0, true},
		{"duplicate id", "a:One,a:Two", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSevaks(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestValidate_BadBudgets(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Surreal: SurrealConfig{URL: "ws://x/rpc"},
		Mirror:  MirrorConfig{Path: "./m.db"},
		Counter: CounterConfig{
			ReadBudget:  0,
			WriteBudget: time.Second,
			SevaksRaw:   "a:A",
			ResetToken:  "RESET",
		},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero read budget")
	}
}
