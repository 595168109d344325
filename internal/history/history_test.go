package history

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndList(t *testing.T) {
	db := openTestDB(t)

	if err := db.Record("2 weeks + 3 days", "2021-07-19", "2021-07-02"); err != nil {
		t.Fatalf("Record: unexpected error: %v", err)
	}
	if err := db.Record("dec 30, 2021 + 2 weeks + 1 day", "2022-01-14", "2021-07-02"); err != nil {
		t.Fatalf("Record: unexpected error: %v", err)
	}

	entries, err := db.List(0)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(entries))
	}

	// Newest first.
	if entries[0].Expression != "dec 30, 2021 + 2 weeks + 1 day" {
		t.Errorf("entries[0].Expression = %q, want newest entry", entries[0].Expression)
	}
	if entries[0].Result != "2022-01-14" {
		t.Errorf("entries[0].Result = %q, want 2022-01-14", entries[0].Result)
	}
	if entries[1].Today != "2021-07-02" {
		t.Errorf("entries[1].Today = %q, want 2021-07-02", entries[1].Today)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("entries[0].CreatedAt should be set")
	}
}

func TestListLimit(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 5; i++ {
		if err := db.Record("1 day", "2021-07-03", "2021-07-02"); err != nil {
			t.Fatalf("Record: unexpected error: %v", err)
		}
	}

	entries, err := db.List(3)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("List(3) returned %d entries, want 3", len(entries))
	}
}

func TestCountAndClear(t *testing.T) {
	db := openTestDB(t)
	if err := db.Record("1 day", "2021-07-03", "2021-07-02"); err != nil {
		t.Fatalf("Record: unexpected error: %v", err)
	}

	n, err := db.Count()
	if err != nil {
		t.Fatalf("Count: unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}

	if err := db.Clear(); err != nil {
		t.Fatalf("Clear: unexpected error: %v", err)
	}
	n, err = db.Count()
	if err != nil {
		t.Fatalf("Count: unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("Count after Clear = %d, want 0", n)
	}
}

func TestPruneKeepsNewest(t *testing.T) {
	db := openTestDB(t)
	expressions := []string{"1 day", "2 days", "3 days", "4 days"}
	for _, e := range expressions {
		if err := db.Record(e, "x", "2021-07-02"); err != nil {
			t.Fatalf("Record: unexpected error: %v", err)
		}
	}

	if err := db.Prune(2); err != nil {
		t.Fatalf("Prune: unexpected error: %v", err)
	}

	entries, err := db.List(0)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("after Prune(2): %d entries, want 2", len(entries))
	}
	if entries[0].Expression != "4 days" || entries[1].Expression != "3 days" {
		t.Errorf("Prune kept %q, %q; want newest two", entries[0].Expression, entries[1].Expression)
	}
}

func TestPruneZeroIsNoop(t *testing.T) {
	db := openTestDB(t)
	if err := db.Record("1 day", "x", "2021-07-02"); err != nil {
		t.Fatalf("Record: unexpected error: %v", err)
	}
	if err := db.Prune(0); err != nil {
		t.Fatalf("Prune(0): unexpected error: %v", err)
	}
	n, _ := db.Count()
	if n != 1 {
		t.Errorf("Prune(0) removed entries: count = %d, want 1", n)
	}
}
