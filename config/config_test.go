package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.AppPort != "8080" {
		t.Errorf("AppPort = %q, want 8080", cfg.AppPort)
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, want disable", cfg.DBSSLMode)
	}
	if cfg.IsProduction() {
		t.Error("dev config reports production")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_NAME", "school_test")

	cfg := Load()
	if cfg.AppPort != "9999" {
		t.Errorf("AppPort = %q, want 9999", cfg.AppPort)
	}
	if !cfg.IsProduction() {
		t.Error("production flag not honored")
	}
	if cfg.DBName != "school_test" {
		t.Errorf("DBName = %q", cfg.DBName)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p",
		DBName: "n", DBSSLMode: "require",
	}
	want := "host=db user=u password=p dbname=n port=5433 sslmode=require connect_timeout=30 statement_timeout=30000 TimeZone=UTC"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
