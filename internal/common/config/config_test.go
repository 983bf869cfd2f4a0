package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Fatalf("expected default port 3000, got %d", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Port != 3306 {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Consul.Host != "" {
		t.Fatalf("expected consul disabled by default")
	}
	if cfg.RateLimit.Capacity != 0 {
		t.Fatalf("expected rate limiting disabled by default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_DATABASE", "fleet")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("RATE_LIMIT_CAPACITY", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8081 {
		t.Fatalf("port: got %d", cfg.Server.Port)
	}
	if cfg.Database.Host != "db" || cfg.Database.Port != 3307 {
		t.Fatalf("database host/port: %+v", cfg.Database)
	}
	if cfg.Database.User != "svc" || cfg.Database.Password != "secret" || cfg.Database.Database != "fleet" {
		t.Fatalf("database credentials: %+v", cfg.Database)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("log level: %q", cfg.Log.Level)
	}
	if cfg.RateLimit.Capacity != 50 {
		t.Fatalf("rate limit capacity: %d", cfg.RateLimit.Capacity)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric DB_PORT")
	}
}
