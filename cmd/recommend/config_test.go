package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestInitServerConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "server.yaml")
	yamlData := `
server:
  port: "9000"
  accuracy: 91.5
paths:
  catalog: "file_catalog.json"
  similarity: "file_similarity.json"
`
	if err := os.WriteFile(cfgPath, []byte(yamlData), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("MEDREC_SIMILARITY=env_similarity.bin\n"), 0644); err != nil {
		t.Fatalf("failed to write env: %v", err)
	}
	t.Setenv("MEDREC_PORT", "9100")
	t.Cleanup(func() { os.Unsetenv("MEDREC_SIMILARITY") })

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := InitServerConfig(fs, []string{"-config", cfgPath, "-env", envPath, "-catalog", "flag_catalog.json"})
	if err != nil {
		t.Fatalf("InitServerConfig failed: %v", err)
	}

	if cfg.Server.Port != "9100" {
		t.Errorf("env should override file port, got %s", cfg.Server.Port)
	}
	if cfg.Paths.Catalog != "flag_catalog.json" {
		t.Errorf("flag should override file catalog, got %s", cfg.Paths.Catalog)
	}
	if cfg.Paths.Similarity != "env_similarity.bin" {
		t.Errorf(".env should override file similarity, got %s", cfg.Paths.Similarity)
	}
	if cfg.Server.Accuracy != 91.5 {
		t.Errorf("expected accuracy from file, got %v", cfg.Server.Accuracy)
	}
	if cfg.Server.Scene != "medicine" {
		t.Errorf("expected default scene, got %s", cfg.Server.Scene)
	}
}

func TestInitServerConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := InitServerConfig(fs, []string{
		"-config", filepath.Join(dir, "missing.yaml"),
		"-env", filepath.Join(dir, "missing.env"),
	})
	if err != nil {
		t.Fatalf("InitServerConfig failed: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Paths.Similarity != "data/similarity.json" || cfg.Paths.Pipelines != "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestInitServerConfigDebugOverride(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "server.yaml")
	if err := os.WriteFile(cfgPath, []byte("server:\n  debug: true\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	missingEnv := filepath.Join(dir, "missing.env")

	// 仅配置文件
	cfg, err := InitServerConfig(flag.NewFlagSet("file", flag.ContinueOnError), []string{"-config", cfgPath, "-env", missingEnv})
	if err != nil {
		t.Fatalf("InitServerConfig failed: %v", err)
	}
	if !cfg.DebugEnabled() {
		t.Error("expected debug from config file")
	}

	// 环境变量关闭
	t.Setenv("MEDREC_DEBUG", "false")
	cfg, err = InitServerConfig(flag.NewFlagSet("env", flag.ContinueOnError), []string{"-config", cfgPath, "-env", missingEnv})
	if err != nil {
		t.Fatalf("InitServerConfig failed: %v", err)
	}
	if cfg.DebugEnabled() {
		t.Error("MEDREC_DEBUG=false should override config file")
	}

	// 命令行参数优先于环境变量
	t.Setenv("MEDREC_DEBUG", "true")
	cfg, err = InitServerConfig(flag.NewFlagSet("flag", flag.ContinueOnError), []string{"-config", cfgPath, "-env", missingEnv, "-debug=false"})
	if err != nil {
		t.Fatalf("InitServerConfig failed: %v", err)
	}
	if cfg.DebugEnabled() {
		t.Error("-debug=false should override env and config file")
	}
}
