package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath == "" {
		t.Fatal("expected a default DB path")
	}
	if cfg.HomeLat != 45.6167 || cfg.HomeLon != 63.3167 {
		t.Fatalf("home = %v,%v", cfg.HomeLat, cfg.HomeLon)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TURF_DB_PATH", "/tmp/other.db")
	t.Setenv("TURF_CLOUD_PATH", "/tmp/cloud.json")
	t.Setenv("TURF_NO_SYNC", "true")
	t.Setenv("TURF_HOME_LAT", "51.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/other.db" || cfg.CloudPath != "/tmp/cloud.json" {
		t.Fatalf("paths = %q %q", cfg.DBPath, cfg.CloudPath)
	}
	if !cfg.NoSync {
		t.Fatal("NoSync not parsed")
	}
	if cfg.HomeLat != 51.5 {
		t.Fatalf("HomeLat = %v", cfg.HomeLat)
	}
}
