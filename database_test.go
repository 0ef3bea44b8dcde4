package refind

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/refindhq/refind/ai/mock"
	"github.com/refindhq/refind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase("", WithInMemory(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func addFound(t *testing.T, db *Database, name, description, location string, reporter core.ID) *core.FoundRecord {
	t.Helper()

	record := &core.FoundRecord{
		Report: core.Report{
			Name:        name,
			Description: description,
			Location:    location,
			Date:        time.Now().UTC().AddDate(0, 0, -1),
			Contact:     "front desk",
			ReporterId:  reporter,
		},
	}
	added, err := db.FoundRepository().AddFoundRecords(context.Background(), record)
	require.NoError(t, err)
	return added[0]
}

func addLost(t *testing.T, db *Database, name, description, location string, owner core.ID) *core.LostRecord {
	t.Helper()

	record := &core.LostRecord{
		Report: core.Report{
			Name:        name,
			Description: description,
			Location:    location,
			Date:        time.Now().UTC().AddDate(0, 0, -2),
			Contact:     "owner@example.com",
			ReporterId:  owner,
		},
	}
	added, err := db.LostRepository().AddLostRecords(context.Background(), record)
	require.NoError(t, err)
	return added[0]
}

func TestDatabaseLifecycle(t *testing.T) {
	dir := t.TempDir()

	db, err := NewDatabase(filepath.Join(dir, "records"), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)

	found := addFound(t, db, "Blue Backpack", "blue backpack", "library", 1)
	require.NoError(t, db.Close())

	// Records survive reopening.
	db, err = NewDatabase(filepath.Join(dir, "records"), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer db.Close()

	got, err := db.FoundRepository().GetFoundRecord(context.Background(), found.Id)
	require.NoError(t, err)
	assert.Equal(t, "Blue Backpack", got.Name)
}

func TestDatabaseSearchBidirectional(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	finder := core.IDFromContent([]byte("finder"))
	owner := core.IDFromContent([]byte("owner"))

	foundMatch := addFound(t, db, "Blue Backpack", "blue backpack with laptop sleeve", "library", finder)
	lostMatch := addLost(t, db, "Backpack", "blue backpack, two zippers", "library", owner)
	addLost(t, db, "Gold Ring", "thin gold band", "gym", owner)

	results, err := db.Search(ctx, "blue backpack")
	require.NoError(t, err)
	require.Len(t, results, 2)

	kinds := map[core.ReportKind]core.ID{}
	for _, r := range results {
		switch r.Kind {
		case core.KindFound:
			kinds[core.KindFound] = r.Found.Id
		case core.KindLost:
			kinds[core.KindLost] = r.Lost.Id
		}
		assert.GreaterOrEqual(t, r.Score.Value, 25.0)
	}
	assert.Equal(t, foundMatch.Id, kinds[core.KindFound])
	assert.Equal(t, lostMatch.Id, kinds[core.KindLost])
}

func TestDatabaseSearchExcludesClaimedItems(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	claimed := addFound(t, db, "Blue Backpack", "blue backpack", "library", 1)
	claimed.Status = core.FoundClaimed
	_, err := db.FoundRepository().UpdateFoundRecords(ctx, claimed)
	require.NoError(t, err)

	results, err := db.Search(ctx, "blue backpack")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDatabaseSearchEmptyQuery(t *testing.T) {
	db := newTestDatabase(t)
	addFound(t, db, "Phone", "black phone", "hall", 1)

	results, err := db.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDatabaseVerifyClaim(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	finder := core.IDFromContent([]byte("finder"))
	claimant := core.IDFromContent([]byte("claimant"))
	other := core.IDFromContent([]byte("other"))

	found := addFound(t, db, "Blue Backpack", "blue backpack with laptop sleeve", "library", finder)
	mine := addLost(t, db, "Blue Backpack", "blue backpack, laptop inside", "library", claimant)
	addLost(t, db, "Gold Ring", "thin gold band", "gym", claimant)
	addLost(t, db, "Blue Backpack", "someone else's backpack", "library", other)

	results, err := db.VerifyClaim(ctx, found.Id, claimant)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	// Only the claimant's own records are considered.
	for _, r := range results {
		assert.Equal(t, core.KindLost, r.Kind)
		assert.Equal(t, claimant, r.Lost.ReporterId)
	}
	assert.Equal(t, mine.Id, results[0].Lost.Id)
}

func TestDatabaseVerifyClaimNoLostRecords(t *testing.T) {
	db := newTestDatabase(t)

	found := addFound(t, db, "Phone", "black phone", "hall", 1)
	results, err := db.VerifyClaim(context.Background(), found.Id, 42)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDatabaseVerifyClaimWithImages(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	dir := t.TempDir()

	foundImage := filepath.Join(dir, "found.jpg")
	lostImage := filepath.Join(dir, "lost.jpg")
	require.NoError(t, os.WriteFile(foundImage, []byte("same photo"), 0644))
	require.NoError(t, os.WriteFile(lostImage, []byte("same photo"), 0644))

	finder := core.IDFromContent([]byte("finder"))
	claimant := core.IDFromContent([]byte("claimant"))

	found := addFound(t, db, "Umbrella", "black umbrella", "lobby", finder)
	found.ImageRef = foundImage
	_, err := db.FoundRepository().UpdateFoundRecords(ctx, found)
	require.NoError(t, err)

	lost := addLost(t, db, "Umbrella", "black umbrella", "lobby", claimant)
	lost.ImageRef = lostImage
	_, err = db.LostRepository().UpdateLostRecords(ctx, lost)
	require.NoError(t, err)

	results, err := db.VerifyClaim(ctx, found.Id, claimant)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Mock comparer scores identical bytes 100, so the visual signal landed.
	assert.True(t, results[0].Score.Breakdown.HasVisual)
	assert.Equal(t, 100.0, results[0].Score.Breakdown.Visual)
}

func TestDatabaseEndToEndClaimFlow(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	finder := core.IDFromContent([]byte("finder"))
	claimant := core.IDFromContent([]byte("claimant"))

	pipeline, err := db.NewPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	found, err := pipeline.SubmitFound(ctx, &core.FoundRecord{
		Report: core.Report{
			Name:        "Silver Watch",
			Description: "silver wristwatch, leather strap",
			Location:    "cafeteria",
			Date:        time.Now().UTC(),
			Contact:     "front desk",
			ReporterId:  finder,
		},
	}, nil)
	require.NoError(t, err)

	// Let the embedding backfill land before mutating the record further.
	require.Eventually(t, func() bool {
		got, err := db.FoundRepository().GetFoundRecord(ctx, found.Id)
		return err == nil && len(got.Vector) > 0
	}, 5*time.Second, 10*time.Millisecond)

	controller, err := db.NewClaimController()
	require.NoError(t, err)

	claim, err := controller.InitiateClaim(ctx, found.Id, claimant, "engraved initials on the back")
	require.NoError(t, err)

	_, err = controller.PostMessage(ctx, claim.Id, finder, "what are the initials?")
	require.NoError(t, err)
	_, err = controller.PostMessage(ctx, claim.Id, claimant, "J.D.")
	require.NoError(t, err)

	_, err = controller.DecideClaim(ctx, claim.Id, finder, core.DecisionApprove)
	require.NoError(t, err)

	got, err := db.FoundRepository().GetFoundRecord(ctx, found.Id)
	require.NoError(t, err)
	assert.Equal(t, core.FoundClaimed, got.Status)
	assert.Equal(t, claimant, got.ClaimedBy)

	// A claimed item no longer appears in open search.
	results, err := db.Search(ctx, "silver watch")
	require.NoError(t, err)
	assert.Empty(t, results)
}
