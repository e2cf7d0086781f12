// pkg/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testYAML = `
app:
  name: panoramai-signals
  env: test

database:
  postgres:
    host: localhost
    port: 5432
    user: panoramai
    dbname: panoramai
    sslmode: disable

detection:
  min_gap_hours: 8
  thresholds:
    followers:
      mode: percent
      warning: 5
      critical: 15
      min_value: 100
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	if err := os.WriteFile(path, []byte(testYAML), 0o644); err != nil {
		t.Fatalf("写入临时配置失败: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeTestConfig(t))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.App.Name != "panoramai-signals" {
		t.Errorf("app.name = %s", cfg.App.Name)
	}
	if cfg.Database.Postgres.Port != 5432 {
		t.Errorf("db.port = %d", cfg.Database.Postgres.Port)
	}
	if cfg.Detection.MinGapHours != 8 {
		t.Errorf("min_gap_hours = %d, want 8", cfg.Detection.MinGapHours)
	}
	// 未配置排程时使用默认值
	if cfg.Detection.Schedule != "0 0 2 * * *" {
		t.Errorf("schedule 默认值 = %s", cfg.Detection.Schedule)
	}

	tier, ok := cfg.Detection.Thresholds["followers"]
	if !ok || tier.Critical != 15 || tier.MinValue != 100 {
		t.Errorf("followers 档位解析不正确: %+v", tier)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DETECTION_SCHEDULE", "0 30 3 * * *")

	cfg, err := LoadConfig(writeTestConfig(t))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Database.Postgres.Host != "db.internal" {
		t.Errorf("db.host = %s, want db.internal", cfg.Database.Postgres.Host)
	}
	if cfg.Database.Postgres.Port != 5433 {
		t.Errorf("db.port = %d, want 5433", cfg.Database.Postgres.Port)
	}
	if cfg.Detection.Schedule != "0 30 3 * * *" {
		t.Errorf("schedule = %s", cfg.Detection.Schedule)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/app.yaml"); err == nil {
		t.Fatal("缺失配置文件应报错")
	}
}
