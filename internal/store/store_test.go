package store

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rahulj/mockmate/internal/scoring"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared", slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	// Shared-cache memory databases persist across connections within
	// the process; start each test from a clean slate.
	for _, table := range []string{"attempts", "users", "app_state"} {
		if _, err := s.DB().Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("reset %s: %v", table, err)
		}
	}
	return s
}

func testResult(domain string, score int, ts time.Time) scoring.Result {
	return scoring.Result{
		ID:           uuid.New().String(),
		Domain:       domain,
		ScorePercent: score,
		Total:        10,
		Timestamp:    ts,
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL falls back to "memory" for in-memory databases, so
		// journal_mode is not asserted here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}
	for _, tt := range tests {
		var got string
		if err := s.DB().QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAppendAndListOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		res := testResult("Computer / IT", 50+10*i, base.Add(time.Duration(i)*time.Hour))
		if err := repo.Append(ctx, "a@b.c", res); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.List(ctx, "a@b.c", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Most recent first.
	if got[0].ScorePercent != 70 || got[2].ScorePercent != 50 {
		t.Fatalf("order = %d,%d,%d, want 70,60,50", got[0].ScorePercent, got[1].ScorePercent, got[2].ScorePercent)
	}
}

func TestListLimitAndUserScoping(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()
	ts := time.Now().UTC()

	for i := 0; i < 4; i++ {
		if err := repo.Append(ctx, "a@b.c", testResult("Civil Engineering", i, ts.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := repo.Append(ctx, "other@b.c", testResult("Mechanical", 99, ts)); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.List(ctx, "a@b.c", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, r := range got {
		if r.Domain == "Mechanical" {
			t.Fatal("list leaked another user's attempt")
		}
	}
}

func TestLastResult(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()

	last, err := repo.Last(ctx, "a@b.c")
	if err != nil {
		t.Fatalf("last (empty): %v", err)
	}
	if last != nil {
		t.Fatal("expected nil last result before any append")
	}

	first := testResult("Computer / IT", 40, time.Now().UTC())
	second := testResult("Computer / IT", 80, time.Now().UTC().Add(time.Minute))
	if err := repo.Append(ctx, "a@b.c", first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(ctx, "a@b.c", second); err != nil {
		t.Fatalf("append: %v", err)
	}

	last, err = repo.Last(ctx, "a@b.c")
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if last == nil || last.ID != second.ID {
		t.Fatalf("last = %+v, want second append", last)
	}
}

func TestCorruptRowsSkipped(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()

	if err := repo.Append(ctx, "a@b.c", testResult("Computer / IT", 60, time.Now().UTC())); err != nil {
		t.Fatalf("append: %v", err)
	}
	_, err := s.DB().Exec(
		`INSERT INTO attempts (id, email, created_at, payload) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), "a@b.c", time.Now().UnixMilli(), "{not json")
	if err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}

	got, err := repo.List(ctx, "a@b.c", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 (corrupt row skipped)", len(got))
	}
}

func TestCorruptLastResultTreatedAsAbsent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.DB().Exec(
		`INSERT INTO app_state (key, value) VALUES (?, ?)`, lastResultKey("a@b.c"), "garbage")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	last, err := s.Attempts().Last(ctx, "a@b.c")
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if last != nil {
		t.Fatal("corrupt last result should read as absent")
	}
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if err := repo.Append(ctx, "a@b.c", testResult("Computer / IT", 10*i, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := repo.Prune(ctx, "a@b.c", 2); err != nil {
		t.Fatalf("prune: %v", err)
	}

	got, err := repo.List(ctx, "a@b.c", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 after prune", len(got))
	}
	if got[0].ScorePercent != 40 || got[1].ScorePercent != 30 {
		t.Fatalf("prune kept %d,%d, want the 2 most recent (40,30)", got[0].ScorePercent, got[1].ScorePercent)
	}
}

func TestUserLifecycle(t *testing.T) {
	s := openTestStore(t)
	users := s.Users()
	ctx := context.Background()

	u, err := users.Create(ctx, "Rahul", "  Rahul@Example.COM ", "secret1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != "rahul@example.com" {
		t.Fatalf("email = %q, want normalized", u.Email)
	}

	if _, err := users.Create(ctx, "Again", "rahul@example.com", "secret2"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate create err = %v, want ErrUserExists", err)
	}

	if _, err := users.Authenticate(ctx, "rahul@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad password err = %v, want ErrInvalidCredentials", err)
	}
	got, err := users.Authenticate(ctx, "RAHUL@example.com", "secret1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.Name != "Rahul" {
		t.Fatalf("name = %q", got.Name)
	}
}

func TestCreateValidation(t *testing.T) {
	s := openTestStore(t)
	users := s.Users()
	ctx := context.Background()

	if _, err := users.Create(ctx, "Name", "x@y.z", "short"); err == nil {
		t.Fatal("short password accepted")
	}
	if _, err := users.Create(ctx, "", "x@y.z", "secret1"); err == nil {
		t.Fatal("empty name accepted")
	}
	if _, err := users.Create(ctx, "Name", "  ", "secret1"); err == nil {
		t.Fatal("empty email accepted")
	}
}

func TestCurrentUser(t *testing.T) {
	s := openTestStore(t)
	users := s.Users()
	ctx := context.Background()

	cur, err := users.Current(ctx)
	if err != nil {
		t.Fatalf("current (signed out): %v", err)
	}
	if cur != nil {
		t.Fatal("expected nil current user initially")
	}

	if _, err := users.Create(ctx, "Rahul", "a@b.c", "secret1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := users.SetCurrent(ctx, "a@b.c"); err != nil {
		t.Fatalf("set current: %v", err)
	}
	cur, err = users.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cur == nil || cur.Email != "a@b.c" {
		t.Fatalf("current = %+v, want a@b.c", cur)
	}

	if err := users.ClearCurrent(ctx); err != nil {
		t.Fatalf("clear current: %v", err)
	}
	cur, err = users.Current(ctx)
	if err != nil {
		t.Fatalf("current (cleared): %v", err)
	}
	if cur != nil {
		t.Fatal("expected nil current user after sign-out")
	}
}

func TestDeleteClearsEverything(t *testing.T) {
	s := openTestStore(t)
	users := s.Users()
	attempts := s.Attempts()
	ctx := context.Background()

	if _, err := users.Create(ctx, "Rahul", "a@b.c", "secret1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := users.SetCurrent(ctx, "a@b.c"); err != nil {
		t.Fatalf("set current: %v", err)
	}
	if err := attempts.Append(ctx, "a@b.c", testResult("Computer / IT", 75, time.Now().UTC())); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := users.Delete(ctx, "a@b.c"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := users.Authenticate(ctx, "a@b.c", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("authenticate after delete err = %v, want ErrInvalidCredentials", err)
	}
	history, err := attempts.List(ctx, "a@b.c", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(history) != 0 {
		t.Fatal("history survived account deletion")
	}
	last, err := attempts.Last(ctx, "a@b.c")
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if last != nil {
		t.Fatal("last result survived account deletion")
	}
	cur, err := users.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cur != nil {
		t.Fatal("current user survived account deletion")
	}

	if err := users.Delete(ctx, "a@b.c"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("second delete err = %v, want ErrUserNotFound", err)
	}
}
