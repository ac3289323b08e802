package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Errorf("App.Port = %q, want 8080", cfg.App.Port)
	}
	if cfg.Clinic.Timezone != "Asia/Ho_Chi_Minh" {
		t.Errorf("Clinic.Timezone = %q", cfg.Clinic.Timezone)
	}
	if cfg.Clinic.DefaultServiceDuration != 30*time.Minute {
		t.Errorf("DefaultServiceDuration = %v, want 30m", cfg.Clinic.DefaultServiceDuration)
	}
	if cfg.Clinic.GridMaxDays != 62 {
		t.Errorf("GridMaxDays = %d, want 62", cfg.Clinic.GridMaxDays)
	}
	if cfg.Clinic.GridCacheTTL != 30*time.Second {
		t.Errorf("GridCacheTTL = %v, want 30s", cfg.Clinic.GridCacheTTL)
	}
	if cfg.DB.MaxOpenConns != 100 || cfg.DB.MaxIdleConns != 10 {
		t.Errorf("DB pool = %d/%d, want 10/100", cfg.DB.MaxIdleConns, cfg.DB.MaxOpenConns)
	}
}

func TestLoadConfigFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nCLINIC_TIMEZONE=Asia/Jakarta\nDEFAULT_SERVICE_DURATION_MINUTES=45\nDB_NAME=clinic\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("APP_PORT", "7070")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.App.Port != "7070" {
		t.Errorf("App.Port = %q, want environment value 7070", cfg.App.Port)
	}
	if cfg.Clinic.Timezone != "Asia/Jakarta" {
		t.Errorf("Clinic.Timezone = %q, want Asia/Jakarta", cfg.Clinic.Timezone)
	}
	if cfg.Clinic.DefaultServiceDuration != 45*time.Minute {
		t.Errorf("DefaultServiceDuration = %v, want 45m", cfg.Clinic.DefaultServiceDuration)
	}
	if cfg.DB.Name != "clinic" {
		t.Errorf("DB.Name = %q, want clinic", cfg.DB.Name)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("DEFAULT_SERVICE_DURATION_MINUTES", "0")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("LoadConfig() accepted a zero default duration")
	}
}

func TestDBConfigURLs(t *testing.T) {
	c := DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "clinic", SSLMode: "disable"}

	if got, want := c.MigrationURL(), "pgx5://u:p@db:5432/clinic?sslmode=disable"; got != want {
		t.Errorf("MigrationURL() = %q, want %q", got, want)
	}
	if got, want := c.DSN(), "host=db user=u password=p dbname=clinic port=5432 sslmode=disable TimeZone=UTC"; got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
