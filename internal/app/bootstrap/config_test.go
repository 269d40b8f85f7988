package bootstrap

import (
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:             "mongodb://localhost:27017",
		MongoDatabase:        "voluntree_test",
		DBConnectMaxAttempts: 3,
		DBConnectBackoff:     time.Second,
		JWTSecret:            "a-strong-enough-test-secret",
		TokenTTL:             time.Hour,
	}
}

func TestValidateConfig_Accepts(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}
	if err := ValidateConfig(coreCfg, validAppConfig(), zap.NewNop()); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidateConfig_RejectsBadMongoURI(t *testing.T) {
	cfg := validAppConfig()
	cfg.MongoURI = "http://not-mongo"
	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, zap.NewNop()); err == nil {
		t.Error("bad mongo URI accepted")
	}
}

func TestValidateConfig_RejectsEmptySecret(t *testing.T) {
	cfg := validAppConfig()
	cfg.JWTSecret = ""
	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, zap.NewNop()); err == nil {
		t.Error("empty jwt secret accepted")
	}
}

func TestValidateConfig_RejectsDevSecretInProd(t *testing.T) {
	cfg := validAppConfig()
	cfg.JWTSecret = "dev-only-change-me-please-0123456789ABCDEF"

	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, zap.NewNop()); err != nil {
		t.Errorf("dev secret must be fine outside prod: %v", err)
	}
	if err := ValidateConfig(&config.CoreConfig{Env: "prod"}, cfg, zap.NewNop()); err == nil {
		t.Error("dev secret accepted in prod")
	}
}

func TestValidateConfig_RejectsZeroAttempts(t *testing.T) {
	cfg := validAppConfig()
	cfg.DBConnectMaxAttempts = 0
	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, zap.NewNop()); err == nil {
		t.Error("zero connection attempts accepted")
	}
}
