package db

import "testing"

func TestOpen_InvalidDSN(t *testing.T) {
	conn, err := Open("postgres://invalid-host.invalid:5432/none?connect_timeout=1")
	if err == nil {
		_ = conn.Close()
		t.Fatal("Open with unreachable DSN should return error")
	}
}

func TestMigrationFS_HasMigrations(t *testing.T) {
	entries, err := MigrationFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no embedded migrations")
	}
	// Every up migration needs a matching down migration.
	ups, downs := 0, 0
	for _, e := range entries {
		name := e.Name()
		switch {
		case len(name) > 7 && name[len(name)-7:] == ".up.sql":
			ups++
		case len(name) > 9 && name[len(name)-9:] == ".down.sql":
			downs++
		}
	}
	if ups == 0 || ups != downs {
		t.Errorf("unbalanced migrations: %d up, %d down", ups, downs)
	}
}
