package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/rollcall/internal/core/dedupe"
	"github.com/example/rollcall/internal/core/names"
	"github.com/example/rollcall/internal/ports/primary"
	"github.com/example/rollcall/internal/ports/secondary"
)

type mergeFixture struct {
	service  *MergeServiceImpl
	members  *mockMemberRepository
	services *mockServiceRepository
	votes    *mockVoteRepository
	audit    *mockLogWriter
}

// newMergeFixture seeds two Smiths who are different people and a Mary Jones
// recorded twice under the same birth date.
func newMergeFixture() *mergeFixture {
	f := &mergeFixture{
		services: newMockServiceRepository(),
		votes:    newMockVoteRepository(),
		audit:    &mockLogWriter{},
	}
	f.members = newMockMemberRepository(f.services)

	f.members.add(secondary.MemberRecord{ID: 1, First: "John", Last: "Smith", HouseArchiveID: 1001})
	f.members.add(secondary.MemberRecord{ID: 2, First: "Jane", Last: "Smith", HouseArchiveID: 1002})
	f.members.add(secondary.MemberRecord{ID: 3, First: "Mary", Last: "Jones", DOB: "1961-04-12", HouseArchiveID: 1003})
	f.members.add(secondary.MemberRecord{ID: 4, First: "Mary", Middle: "A.", Last: "Jones", DOB: "1961-04-12", HouseCurrentID: 77})

	f.services.add(secondary.ServiceRecord{ID: 1, MemberID: 1, Year: 2019, Chamber: 1})
	f.services.add(secondary.ServiceRecord{ID: 2, MemberID: 2, Year: 2019, Chamber: 1})
	f.services.add(secondary.ServiceRecord{ID: 3, MemberID: 3, Year: 2019, Chamber: 1})
	f.services.add(secondary.ServiceRecord{ID: 4, MemberID: 4, Year: 2017, Chamber: 1})

	f.votes.add(1, 1, 1, "JONES", 3)
	f.votes.add(2, 1, 2, "JONES, MARY A.", 4)

	tester := names.NewTester(names.DefaultNicknames())
	executor := NewEffectExecutor(f.members, f.services, f.votes, f.audit)
	f.service = NewMergeService(f.members, f.services, dedupe.NewPlanner(tester, false), executor)
	return f
}

func TestFindDuplicates_PlanOnly(t *testing.T) {
	f := newMergeFixture()

	resp, err := f.service.FindDuplicates(context.Background(), primary.FindDuplicatesRequest{})
	if err != nil {
		t.Fatalf("FindDuplicates failed: %v", err)
	}
	if len(resp.Merged) != 0 {
		t.Errorf("expected nothing merged without write, got %v", resp.Merged)
	}
	if len(resp.Plan.Decisions) != 1 {
		t.Fatalf("expected 1 decision, got %d", len(resp.Plan.Decisions))
	}
	d := resp.Plan.Decisions[0]
	if d.AnchorID != 3 {
		t.Errorf("AnchorID = %d, want 3", d.AnchorID)
	}
	if len(d.Merged) != 1 || d.Merged[0] != 4 {
		t.Errorf("Merged = %v, want [4]", d.Merged)
	}
	if d.Canonical.String() != "Mary A. Jones" {
		t.Errorf("Canonical = %q, want %q", d.Canonical.String(), "Mary A. Jones")
	}
	if _, err := f.members.GetByID(context.Background(), 4); err != nil {
		t.Error("member 4 should still exist after a dry run")
	}
}

func TestFindDuplicates_Write(t *testing.T) {
	f := newMergeFixture()
	ctx := context.Background()

	resp, err := f.service.FindDuplicates(ctx, primary.FindDuplicatesRequest{Write: true})
	if err != nil {
		t.Fatalf("FindDuplicates failed: %v", err)
	}
	if len(resp.Merged) != 1 || resp.Merged[0] != 3 {
		t.Errorf("Merged = %v, want [3]", resp.Merged)
	}

	anchor, err := f.members.GetByID(ctx, 3)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if anchor.Middle != "A." {
		t.Errorf("Middle = %q, want %q", anchor.Middle, "A.")
	}
	if anchor.HouseArchiveID != 1003 || anchor.HouseCurrentID != 77 {
		t.Errorf("identifiers = %d/%d, want 1003/77", anchor.HouseArchiveID, anchor.HouseCurrentID)
	}
	if _, err := f.members.GetByID(ctx, 4); err == nil {
		t.Error("member 4 should be deleted")
	}
	if f.votes.member(2) != 3 {
		t.Errorf("vote 2 member = %d, want 3", f.votes.member(2))
	}

	rows, _ := f.services.ListByMember(ctx, 3)
	if len(rows) != 2 {
		t.Errorf("expected anchor to hold 2 service rows, got %d", len(rows))
	}

	want := []string{
		`update member 3 middle ""->"A."`,
		`update member 3 house_current_id ""->"77"`,
		`update vote member:4 member_id "4"->"3"`,
		`update service 4 member_id ""->"3"`,
		`delete member 4`,
	}
	if len(f.audit.entries) != len(want) {
		t.Fatalf("audit = %v, want %v", f.audit.entries, want)
	}
	for i := range want {
		if f.audit.entries[i] != want[i] {
			t.Errorf("audit[%d] = %s, want %s", i, f.audit.entries[i], want[i])
		}
	}

	// A second run finds nothing left to merge.
	again, err := f.service.FindDuplicates(ctx, primary.FindDuplicatesRequest{Write: true})
	if err != nil {
		t.Fatalf("second FindDuplicates failed: %v", err)
	}
	if len(again.Merged) != 0 {
		t.Errorf("second run merged %v", again.Merged)
	}
}

func TestFindDuplicates_LoadError(t *testing.T) {
	f := newMergeFixture()
	f.members.listErr = errBoom

	_, err := f.service.FindDuplicates(context.Background(), primary.FindDuplicatesRequest{})
	if !errors.Is(err, errBoom) {
		t.Errorf("expected load error, got %v", err)
	}
}
