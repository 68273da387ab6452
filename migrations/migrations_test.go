package migrations

import (
	"io/fs"
	"testing"
)

func TestEmbeddedMigrationsPresent(t *testing.T) {
	for name, fsys := range map[string]fs.FS{"sqlite": SQLite(), "postgres": Postgres()} {
		entries, err := fs.ReadDir(fsys, ".")
		if err != nil {
			t.Fatalf("%s: ReadDir failed: %v", name, err)
		}
		if len(entries) == 0 {
			t.Errorf("%s: no migrations embedded", name)
		}
		if _, err := fs.ReadFile(fsys, "001_init.sql"); err != nil {
			t.Errorf("%s: 001_init.sql missing: %v", name, err)
		}
	}
}
