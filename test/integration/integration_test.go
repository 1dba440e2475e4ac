package integration_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rostralabs/rostra/internal/domain/contributor"
	"github.com/rostralabs/rostra/internal/domain/ingest"
	"github.com/rostralabs/rostra/internal/domain/project"
	"github.com/rostralabs/rostra/internal/share"
	"github.com/rostralabs/rostra/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db *sqlite.DB

	contributorSvc *contributor.Service
	projectSvc     *project.Service
	ingestSvc      *ingest.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	contributorSvc := contributor.NewService(sqlite.NewContributorRepository(db), nil)
	projectSvc := project.NewService(sqlite.NewProjectRepository(db), contributorSvc, nil)
	ingestSvc := ingest.NewService(contributorSvc, nil)

	return &testEnv{
		db:             db,
		contributorSvc: contributorSvc,
		projectSvc:     projectSvc,
		ingestSvc:      ingestSvc,
	}
}

func TestIntegration_ColdStartSeedsDefault(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.projectSvc.Bootstrap(ctx)
	require.NoError(t, err)
	require.Equal(t, "Default", proj.Name)

	snap, err := env.contributorSvc.Snapshot(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, snap.Active, 4)
	require.Len(t, snap.Archived, 1)
	require.Equal(t, "CB001", snap.Active[0].ID)
	require.Equal(t, "alice.smith@example.com", snap.Active[0].Email)

	// A second bootstrap is a no-op: the roster is not re-seeded
	added, err := env.contributorSvc.Add(ctx, proj.ID, "extra@example.com", contributor.TargetPending)
	require.NoError(t, err)

	again, err := env.projectSvc.Bootstrap(ctx)
	require.NoError(t, err)
	require.Equal(t, proj.ID, again.ID)

	_, err = env.contributorSvc.FindByEmail(ctx, proj.ID, added.Email)
	require.NoError(t, err)
}

func TestIntegration_ContributorLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.projectSvc.Create(ctx, "Lifecycle")
	require.NoError(t, err)

	c, err := env.contributorSvc.Add(ctx, proj.ID, "dev@example.com", contributor.TargetPending)
	require.NoError(t, err)
	require.Equal(t, "CB001", c.ID)

	c, err = env.contributorSvc.UpdateStatus(ctx, proj.ID, c.ID, contributor.UpdateAssignment, "assigned")
	require.NoError(t, err)
	require.Equal(t, contributor.StatusAssigned, c.Status)

	c, err = env.contributorSvc.UpdateStatus(ctx, proj.ID, c.ID, contributor.UpdateResult, "passed")
	require.NoError(t, err)
	require.Equal(t, contributor.ResultPassed, c.Result)
	require.NotEmpty(t, c.DateCompleted)

	// Archive then restore: the record survives byte for byte except the
	// archive date
	archived, err := env.contributorSvc.Archive(ctx, proj.ID, c.ID)
	require.NoError(t, err)
	require.NotEmpty(t, archived.DateArchived)

	_, err = env.contributorSvc.UpdateStatus(ctx, proj.ID, c.ID, contributor.UpdateResult, "")
	require.ErrorIs(t, err, contributor.ErrContributorNotFound)

	restored, err := env.contributorSvc.Restore(ctx, proj.ID, c.ID)
	require.NoError(t, err)
	restoredCopy := *restored
	archivedCopy := *archived
	archivedCopy.DateArchived = ""
	require.Equal(t, archivedCopy, restoredCopy)

	require.NoError(t, env.contributorSvc.Remove(ctx, proj.ID, c.ID))
	snap, err := env.contributorSvc.Snapshot(ctx, proj.ID)
	require.NoError(t, err)
	require.Empty(t, snap.Active)
	require.Empty(t, snap.Archived)
}

func TestIntegration_BatchIngestion(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.projectSvc.Create(ctx, "Batch")
	require.NoError(t, err)

	raw := "one@example.com\ntwo@example.com\nnot-an-email\none@example.com"
	candidates, err := env.ingestSvc.ParseBulk(ctx, proj.ID, raw, contributor.TargetAssigned)
	require.NoError(t, err)
	require.Len(t, candidates, 4)

	res := env.ingestSvc.Apply(ctx, proj.ID, candidates, contributor.TargetAssigned, nil)
	require.Equal(t, 2, res.Succeeded)
	require.Equal(t, 1, res.Failed) // the doubled email fails at apply
	require.Equal(t, []string{"Line 4: Duplicate email"}, res.Errors)

	list, err := env.contributorSvc.List(ctx, proj.ID, contributor.PartitionActive, contributor.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, c := range list {
		require.Equal(t, contributor.StatusAssigned, c.Status)
	}
}

func TestIntegration_ShareAcrossProjects(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	src, err := env.projectSvc.Create(ctx, "Source")
	require.NoError(t, err)
	_, err = env.contributorSvc.Add(ctx, src.ID, "a@x.com", contributor.TargetPassed)
	require.NoError(t, err)
	_, err = env.contributorSvc.Add(ctx, src.ID, "b@x.com", contributor.TargetPending)
	require.NoError(t, err)

	snap, err := env.contributorSvc.Snapshot(ctx, src.ID)
	require.NoError(t, err)

	payload, err := share.Encode(share.Project{Name: src.Name, Active: snap.Active, Archived: snap.Archived})
	require.NoError(t, err)

	decoded, err := share.Decode(payload)
	require.NoError(t, err)

	copied, err := env.projectSvc.ImportShared(ctx, "Copy", decoded.Snapshot())
	require.NoError(t, err)
	require.NotEqual(t, src.ID, copied.ID)

	copySnap, err := env.contributorSvc.Snapshot(ctx, copied.ID)
	require.NoError(t, err)
	require.Equal(t, snap, copySnap)

	// Re-importing the same name selects the existing copy instead of
	// overwriting it
	again, err := env.projectSvc.ImportShared(ctx, "copy", contributor.Snapshot{})
	require.NoError(t, err)
	require.Equal(t, copied.ID, again.ID)

	copySnap, err = env.contributorSvc.Snapshot(ctx, copied.ID)
	require.NoError(t, err)
	require.Len(t, copySnap.Active, 2)
}

func TestIntegration_DeleteProjectDropsRoster(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	keep, err := env.projectSvc.Create(ctx, "Keep")
	require.NoError(t, err)
	doomed, err := env.projectSvc.Create(ctx, "Doomed")
	require.NoError(t, err)
	_, err = env.contributorSvc.Add(ctx, doomed.ID, "a@x.com", contributor.TargetPending)
	require.NoError(t, err)

	current, err := env.projectSvc.Delete(ctx, "Doomed")
	require.NoError(t, err)
	require.Equal(t, keep.ID, current.ID)

	var count int
	err = env.db.QueryRow(`SELECT COUNT(*) FROM contributors WHERE project_id = ?`, doomed.ID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
