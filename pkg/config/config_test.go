package config

import "testing"

func TestLoadAppliesDefaultsWithNoConfigFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultChainAlias != "eos" {
		t.Errorf("DefaultChainAlias = %q, want eos", cfg.DefaultChainAlias)
	}
	if cfg.CallbackInflateCapBytes != 5<<20 {
		t.Errorf("CallbackInflateCapBytes = %d, want %d", cfg.CallbackInflateCapBytes, 5<<20)
	}
	if cfg.ServerAddr == "" {
		t.Error("ServerAddr = \"\", want a default listen address")
	}
}
