package config

import "testing"

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("ENV", "")
		t.Setenv("CORS_ORIGIN", "")
		t.Setenv("DASHBOARD_MONTHS", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "8080" || cfg.Env != "development" || cfg.CORSOrigin != "*" || cfg.DashboardMonths != 6 {
			t.Errorf("unexpected defaults %+v", cfg)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DASHBOARD_MONTHS", "12")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "9090" || cfg.DashboardMonths != 12 {
			t.Errorf("unexpected config %+v", cfg)
		}
	})

	for _, tt := range []struct{ key, value string }{
		{"PORT", "http"},
		{"DASHBOARD_MONTHS", "0"},
		{"DASHBOARD_MONTHS", "61"},
		{"DASHBOARD_MONTHS", "six"},
	} {
		t.Run("rejects "+tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
