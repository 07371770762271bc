package migrate

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestSanitizeMigrationName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "add tariff fuel pct", want: "add_tariff_fuel_pct"},
		{in: "  Create Shipments!  ", want: "create_shipments"},
		{in: "scan-events/index", want: "scan_events_index"},
		{in: "###", want: ""},
	}
	for _, tt := range tests {
		if got := sanitizeMigrationName(tt.in); got != tt.want {
			t.Fatalf("sanitizeMigrationName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "add tariff fuel pct")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base := filepath.Base(path)
	if ok, _ := regexp.MatchString(`^\d{14}_add_tariff_fuel_pct\.sql$`, base); !ok {
		t.Fatalf("unexpected migration filename %q", base)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading skeleton: %v", err)
	}
	for _, marker := range []string{"-- +goose Up", "-- +goose Down", "add_tariff_fuel_pct"} {
		if !strings.Contains(string(content), marker) {
			t.Fatalf("skeleton missing %q:\n%s", marker, content)
		}
	}
}

func TestCreateSQLMigrationRejectsBadInput(t *testing.T) {
	if _, err := CreateSQLMigration("", "name"); err == nil {
		t.Fatalf("expected error for empty dir")
	}
	if _, err := CreateSQLMigration(t.TempDir(), ""); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := CreateSQLMigration(t.TempDir(), "###"); err == nil {
		t.Fatalf("expected error for unsanitizable name")
	}
}
