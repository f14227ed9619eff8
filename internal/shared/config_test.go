package shared_test

import (
	"os"
	"path/filepath"
	"testing"

	"tshwane_places/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	c := shared.Load()
	if c.Workers != 5 {
		t.Fatalf("workers = %d", c.Workers)
	}
	if c.OutputDir != "processed_data" {
		t.Fatalf("output dir = %q", c.OutputDir)
	}
	if c.MySQLDSN != "" {
		t.Fatalf("mysql dsn should default empty, got %q", c.MySQLDSN)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ENRICH_WORKERS", "3")
	t.Setenv("SEARCH_DIRS", "a, b ,c")

	c := shared.Load()
	if c.Workers != 3 {
		t.Fatalf("workers = %d", c.Workers)
	}
	if len(c.SearchDirs) != 3 || c.SearchDirs[1] != "b" {
		t.Fatalf("search dirs = %v", c.SearchDirs)
	}
}

func TestLoad_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "output_dir: exported\nworkers: 9\nmysql_dsn: root@tcp(db:3306)/tshwane\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TSHWANE_CONFIG", path)
	t.Setenv("OUTPUT_DIR", "ignored_by_overlay")

	c := shared.Load()
	if c.OutputDir != "exported" {
		t.Fatalf("output dir = %q", c.OutputDir)
	}
	if c.Workers != 9 {
		t.Fatalf("workers = %d", c.Workers)
	}
	if c.MySQLDSN != "root@tcp(db:3306)/tshwane" {
		t.Fatalf("dsn = %q", c.MySQLDSN)
	}
}
