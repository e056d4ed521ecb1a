package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":3000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":3000" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":3000")
	}
	if cfg.JWTExpiresIn != "24h" {
		t.Errorf("JWTExpiresIn = %q, want %q", cfg.JWTExpiresIn, "24h")
	}
	if cfg.JWTRefreshExpiresIn != "168h" {
		t.Errorf("JWTRefreshExpiresIn = %q, want %q", cfg.JWTRefreshExpiresIn, "168h")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.CleanupSchedule != "@hourly" {
		t.Errorf("CleanupSchedule = %q, want %q", cfg.CleanupSchedule, "@hourly")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("JWT_EXPIRES_IN", "15m")
	os.Setenv("BCRYPT_COST", "14")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.JWTExpiresIn != "15m" {
		t.Errorf("JWTExpiresIn = %q, want %q", cfg.JWTExpiresIn, "15m")
	}
	if cfg.BcryptCost != 14 {
		t.Errorf("BcryptCost = %d, want 14", cfg.BcryptCost)
	}
}

func TestLoad_RejectsSharedSecret(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "same-secret")
	os.Setenv("JWT_REFRESH_SECRET", "same-secret")

	if _, err := Load(); err == nil {
		t.Fatal("Load should reject identical access and refresh secrets")
	}
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("Load should require secrets when APP_ENV=production")
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	os.Clearenv()
	os.Setenv("BCRYPT_COST", "99")

	if _, err := Load(); err == nil {
		t.Fatal("Load should reject out-of-range BCRYPT_COST")
	}
}

func TestConfig_TTLAccessors(t *testing.T) {
	cfg := &Config{JWTExpiresIn: "30m", JWTRefreshExpiresIn: "72h"}
	if got := cfg.AccessTTL(); got != 30*time.Minute {
		t.Errorf("AccessTTL = %v, want 30m", got)
	}
	if got := cfg.RefreshTTL(); got != 72*time.Hour {
		t.Errorf("RefreshTTL = %v, want 72h", got)
	}

	bad := &Config{JWTExpiresIn: "not-a-duration", JWTRefreshExpiresIn: ""}
	if got := bad.AccessTTL(); got != 24*time.Hour {
		t.Errorf("AccessTTL fallback = %v, want 24h", got)
	}
	if got := bad.RefreshTTL(); got != 168*time.Hour {
		t.Errorf("RefreshTTL fallback = %v, want 168h", got)
	}
}
