package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/example/rollcall/internal/adapters/sqlite"
	"github.com/example/rollcall/internal/db"
)

// Integration tests verify cross-repository workflows against the seeded
// development data set.

func setupIntegrationDB(t *testing.T) *sql.DB {
	t.Helper()
	testDB := setupTestDB(t)
	if err := db.SeedFixtures(testDB, db.EngineSQLite); err != nil {
		t.Fatalf("SeedFixtures failed: %v", err)
	}
	return testDB
}

func TestIntegration_AssignCohortVotes(t *testing.T) {
	conn := setupIntegrationDB(t)
	ctx := context.Background()

	crawlRepo := sqlite.NewCrawlRepository(conn, "")
	memberRepo := sqlite.NewMemberRepository(conn, "")
	voteRepo := sqlite.NewVoteRepository(conn, "")

	rolls, err := crawlRepo.ListRollCalls(ctx)
	if err != nil {
		t.Fatalf("ListRollCalls failed: %v", err)
	}
	if len(rolls) != 2 {
		t.Fatalf("expected 2 rolls, got %d", len(rolls))
	}
	rollIDs := []int64{rolls[0].ID, rolls[1].ID}

	members, err := memberRepo.ListByCohort(ctx, 2019, 1)
	if err != nil {
		t.Fatalf("ListByCohort failed: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("expected 3 sitting members, got %d", len(members))
	}

	n, err := voteRepo.AssignMember(ctx, "JONES", []int64{1}, rollIDs, 3)
	if err != nil {
		t.Fatalf("AssignMember failed: %v", err)
	}
	if n != 2 {
		t.Errorf("assigned %d rows, want 2", n)
	}

	votes, err := voteRepo.ListByRolls(ctx, rollIDs)
	if err != nil {
		t.Fatalf("ListByRolls failed: %v", err)
	}
	assigned := 0
	for _, v := range votes {
		if v.MemberID != 0 {
			assigned++
			if v.Name != "JONES" {
				t.Errorf("unexpected assignment on %q", v.Name)
			}
		}
	}
	if assigned != 2 {
		t.Errorf("assigned = %d, want 2", assigned)
	}
}

func TestIntegration_MergeDuplicateMember(t *testing.T) {
	conn := setupIntegrationDB(t)
	ctx := context.Background()

	memberRepo := sqlite.NewMemberRepository(conn, "")
	serviceRepo := sqlite.NewServiceRepository(conn, "")
	voteRepo := sqlite.NewVoteRepository(conn, "")

	// Member 4 duplicates member 3: fold it in the way a merge does.
	if _, err := voteRepo.AssignMember(ctx, "JONES", []int64{1}, []int64{1, 2}, 4); err != nil {
		t.Fatalf("AssignMember failed: %v", err)
	}
	if err := memberRepo.Update(ctx, 3,
		map[string]string{"middle": "A."},
		map[string]int64{"house_current_id": 77},
	); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := voteRepo.ReassignMember(ctx, 4, 3); err != nil {
		t.Fatalf("ReassignMember failed: %v", err)
	}
	if _, err := serviceRepo.DeleteByMember(ctx, 4); err != nil {
		t.Fatalf("DeleteByMember failed: %v", err)
	}
	if err := memberRepo.Delete(ctx, 4); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := memberRepo.GetByID(ctx, 3)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Middle != "A." || got.HouseArchiveID != 1003 || got.HouseCurrentID != 77 {
		t.Errorf("merged member = %+v", got)
	}
	if voteMember(t, conn, 3) != 3 {
		t.Errorf("vote 3 member = %d, want 3", voteMember(t, conn, 3))
	}

	all, err := memberRepo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 members after merge, got %d", len(all))
	}
}
