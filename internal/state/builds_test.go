// Tests in this file cover the sqlite-backed build history.
package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	db, err := Open(ctx, Config{Path: filepath.Join(t.TempDir(), "state.db")})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndListBuilds(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	ctx := context.Background()

	older := BuildRecord{
		Tag:           "dloenv:aaaa",
		DockerfileKey: "df-a",
		Duration:      90 * time.Second,
		CreatedAt:     time.Now().Add(-time.Hour),
	}
	newer := BuildRecord{
		Tag:           "dloenv:bbbb",
		DockerfileKey: "df-b",
		Duration:      30 * time.Second,
		CreatedAt:     time.Now(),
	}
	if err := db.RecordBuild(ctx, older); err != nil {
		t.Fatalf("RecordBuild failed: %v", err)
	}
	if err := db.RecordBuild(ctx, newer); err != nil {
		t.Fatalf("RecordBuild failed: %v", err)
	}

	records, err := db.ListBuilds(ctx, 0)
	if err != nil {
		t.Fatalf("ListBuilds failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Tag != "dloenv:bbbb" || records[1].Tag != "dloenv:aaaa" {
		t.Fatalf("records not newest first: %v", records)
	}
	if records[0].Duration != 30*time.Second {
		t.Fatalf("duration = %v, want 30s", records[0].Duration)
	}
}

func TestListBuildsRespectsLimit(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rec := BuildRecord{
			Tag:           "dloenv:tag",
			DockerfileKey: "df",
			CreatedAt:     time.Now().Add(time.Duration(i) * time.Minute),
		}
		if err := db.RecordBuild(ctx, rec); err != nil {
			t.Fatalf("RecordBuild failed: %v", err)
		}
	}

	records, err := db.ListBuilds(ctx, 3)
	if err != nil {
		t.Fatalf("ListBuilds failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
}

func TestPruneBuildsKeepsNewest(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		rec := BuildRecord{
			Tag:           "dloenv:" + string(rune('a'+i)),
			DockerfileKey: "df",
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.RecordBuild(ctx, rec); err != nil {
			t.Fatalf("RecordBuild failed: %v", err)
		}
	}

	if err := db.PruneBuilds(ctx, 2); err != nil {
		t.Fatalf("PruneBuilds failed: %v", err)
	}

	records, err := db.ListBuilds(ctx, 0)
	if err != nil {
		t.Fatalf("ListBuilds failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records after prune, want 2", len(records))
	}
	if records[0].Tag != "dloenv:d" || records[1].Tag != "dloenv:c" {
		t.Fatalf("prune kept the wrong records: %v", records)
	}
}
