package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/refindhq/refind/core"
	"github.com/refindhq/refind/storage"
)

func testReport(name string) core.Report {
	return core.Report{
		Name:        name,
		Description: "test item",
		Location:    "main library",
		Date:        time.Now().UTC().AddDate(0, 0, -1),
		Contact:     "front desk",
		ReporterId:  core.IDFromContent([]byte("reporter")),
	}
}

func TestFoundRecordBasics(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	record := &core.FoundRecord{Report: testReport("Blue Backpack")}

	added, err := repos.Found.AddFoundRecords(ctx, record)
	if err != nil {
		t.Fatalf("Failed to add found record: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(added))
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if added[0].Status != core.FoundPending {
		t.Fatalf("Expected PENDING status, got %v", added[0].Status)
	}

	retrieved, err := repos.Found.GetFoundRecord(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get found record: %v", err)
	}
	if retrieved.Name != "Blue Backpack" {
		t.Fatalf("Expected 'Blue Backpack', got '%s'", retrieved.Name)
	}
}

func TestFoundRecordNotFound(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	_, err = repos.Found.GetFoundRecord(context.Background(), 9999)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	missing := &core.FoundRecord{Report: testReport("ghost")}
	missing.Id = 9999
	_, err = repos.Found.UpdateFoundRecords(context.Background(), missing)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on update, got %v", err)
	}
}

func TestFoundRecordUpdate(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	added, err := repos.Found.AddFoundRecords(ctx, &core.FoundRecord{Report: testReport("Silver Watch")})
	if err != nil {
		t.Fatalf("Failed to add found record: %v", err)
	}

	record := added[0]
	record.Status = core.FoundClaimed
	record.ClaimedBy = core.IDFromContent([]byte("claimant"))

	if _, err := repos.Found.UpdateFoundRecords(ctx, record); err != nil {
		t.Fatalf("Failed to update found record: %v", err)
	}

	retrieved, err := repos.Found.GetFoundRecord(ctx, record.Id)
	if err != nil {
		t.Fatalf("Failed to get found record: %v", err)
	}
	if retrieved.Status != core.FoundClaimed {
		t.Fatalf("Expected CLAIMED status, got %v", retrieved.Status)
	}
	if retrieved.ClaimedBy != record.ClaimedBy {
		t.Fatalf("Expected ClaimedBy %d, got %d", record.ClaimedBy, retrieved.ClaimedBy)
	}
}

func TestListFoundRecordsByStatus(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	added, err := repos.Found.AddFoundRecords(ctx,
		&core.FoundRecord{Report: testReport("Item A")},
		&core.FoundRecord{Report: testReport("Item B")},
		&core.FoundRecord{Report: testReport("Item C")},
	)
	if err != nil {
		t.Fatalf("Failed to add found records: %v", err)
	}

	added[1].Status = core.FoundReturned
	if _, err := repos.Found.UpdateFoundRecords(ctx, added[1]); err != nil {
		t.Fatalf("Failed to update found record: %v", err)
	}

	pending, err := repos.Found.ListFoundRecords(ctx, core.FoundPending)
	if err != nil {
		t.Fatalf("Failed to list found records: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("Expected 2 pending records, got %d", len(pending))
	}

	all, err := repos.Found.ListFoundRecords(ctx, 0)
	if err != nil {
		t.Fatalf("Failed to list found records: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(all))
	}

	// Ordered by ID ascending
	for i := 1; i < len(all); i++ {
		if all[i-1].Id >= all[i].Id {
			t.Fatalf("Expected ascending IDs, got %d before %d", all[i-1].Id, all[i].Id)
		}
	}
}

func TestLostRecordOwnerIndex(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	alice := core.IDFromContent([]byte("alice"))
	bob := core.IDFromContent([]byte("bob"))

	aliceRecord := &core.LostRecord{Report: testReport("Gold Ring")}
	aliceRecord.ReporterId = alice
	bobRecord := &core.LostRecord{Report: testReport("Black Umbrella")}
	bobRecord.ReporterId = bob
	aliceRecord2 := &core.LostRecord{Report: testReport("Red Scarf")}
	aliceRecord2.ReporterId = alice

	if _, err := repos.Lost.AddLostRecords(ctx, aliceRecord, bobRecord, aliceRecord2); err != nil {
		t.Fatalf("Failed to add lost records: %v", err)
	}

	mine, err := repos.Lost.ListLostRecordsByOwner(ctx, alice)
	if err != nil {
		t.Fatalf("Failed to list lost records by owner: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("Expected 2 records for alice, got %d", len(mine))
	}
	for _, record := range mine {
		if record.ReporterId != alice {
			t.Fatalf("Expected reporter %d, got %d", alice, record.ReporterId)
		}
	}

	all, err := repos.Lost.ListLostRecords(ctx)
	if err != nil {
		t.Fatalf("Failed to list lost records: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(all))
	}
}

func TestLostRecordVectorRoundTrip(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	record := &core.LostRecord{Report: testReport("Laptop")}
	record.Vector = []float32{0.1, -0.2, 0.3}

	added, err := repos.Lost.AddLostRecords(ctx, record)
	if err != nil {
		t.Fatalf("Failed to add lost record: %v", err)
	}

	retrieved, err := repos.Lost.GetLostRecord(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get lost record: %v", err)
	}
	if len(retrieved.Vector) != 3 {
		t.Fatalf("Expected 3-element vector, got %d", len(retrieved.Vector))
	}
	if retrieved.Vector[1] != -0.2 {
		t.Fatalf("Expected -0.2, got %f", retrieved.Vector[1])
	}
}
