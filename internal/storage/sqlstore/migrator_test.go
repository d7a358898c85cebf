package sqlstore

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadMigrationsFromFS_Success(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"0002_more.up.sql":   {Data: []byte("CREATE TABLE test_b (id INT);")},
		"0002_more.down.sql": {Data: []byte("DROP TABLE IF EXISTS test_b;")},
		"0001_init.up.sql":   {Data: []byte("CREATE TABLE test_a (id INT);")},
		"0001_init.down.sql": {Data: []byte("DROP TABLE IF EXISTS test_a;")},
	}

	migrations, err := loadMigrationsFromFS(fsys)
	if err != nil {
		t.Fatalf("loadMigrationsFromFS failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "init" {
		t.Fatalf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "more" {
		t.Fatalf("unexpected second migration: %+v", migrations[1])
	}
	if migrations[0].DownSQL != "DROP TABLE IF EXISTS test_a;" {
		t.Fatalf("unexpected down body: %q", migrations[0].DownSQL)
	}
}

func TestLoadMigrationsFromFS_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		fsys    fstest.MapFS
		wantErr string
	}{
		"missing down": {
			fsys:    fstest.MapFS{"0001_init.up.sql": {Data: []byte("CREATE TABLE a (id INT);")}},
			wantErr: "both up and down",
		},
		"invalid name": {
			fsys:    fstest.MapFS{"not_a_migration.sql": {Data: []byte("SELECT 1;")}},
			wantErr: "invalid migration file name",
		},
		"empty body": {
			fsys: fstest.MapFS{
				"0001_init.up.sql":   {Data: []byte("   \n")},
				"0001_init.down.sql": {Data: []byte("DROP TABLE a;")},
			},
			wantErr: "empty",
		},
		"name mismatch": {
			fsys: fstest.MapFS{
				"0001_init.up.sql":    {Data: []byte("CREATE TABLE a (id INT);")},
				"0001_other.down.sql": {Data: []byte("DROP TABLE a;")},
			},
			wantErr: "name mismatch",
		},
		"no files": {
			fsys:    fstest.MapFS{},
			wantErr: "no migration files",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := loadMigrationsFromFS(tc.fsys)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
