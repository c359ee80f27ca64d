package service_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/straye-as/estimate-api/internal/export"
	"github.com/straye-as/estimate-api/internal/repository"
	"github.com/straye-as/estimate-api/internal/service"
	"github.com/straye-as/estimate-api/internal/storage"
)

type exportFixture struct {
	estimates *service.EstimateService
	exports   *service.ExportService
	archive   *storage.LocalStorage
}

func newExportFixture(t *testing.T, archived bool) *exportFixture {
	repo := repository.NewEstimateRepository(setupTestDB(t))
	f := &exportFixture{}

	var archive storage.Storage
	if archived {
		local, err := storage.NewLocalStorage(t.TempDir())
		require.NoError(t, err)
		f.archive = local
		archive = local
	}

	f.exports = service.NewExportService(repo, archive, zap.NewNop())
	f.estimates = service.NewEstimateService(repo, cannedBuilder(), f.exports, zap.NewNop())
	return f
}

func (f *exportFixture) archiveKeys(t *testing.T) []string {
	keys, err := f.archive.List(context.Background(), "")
	require.NoError(t, err)
	return keys
}

func TestExportService_BOMCSV(t *testing.T) {
	f := newExportFixture(t, false)
	ctx := context.Background()

	_, err := f.estimates.Save(ctx, saveRequest("est-abcdef"))
	require.NoError(t, err)

	art, err := f.exports.BOMCSV(ctx, "est-abcdef")
	require.NoError(t, err)
	assert.Equal(t, "BOM-est-abcdef.csv", art.Filename)
	assert.Equal(t, export.ContentTypeCSV, art.ContentType)
	assert.Equal(t, "name,qty,unit,notes\nJoist,20,,\n", string(art.Body))
	assert.False(t, art.FromArchive)
}

func TestExportService_ProposalPDF(t *testing.T) {
	f := newExportFixture(t, false)
	ctx := context.Background()

	_, err := f.estimates.Save(ctx, saveRequest("est-abcdef"))
	require.NoError(t, err)

	art, err := f.exports.ProposalPDF(ctx, "est-abcdef")
	require.NoError(t, err)
	assert.Equal(t, "Backyard deck.pdf", art.Filename)
	assert.Equal(t, export.ContentTypePDF, art.ContentType)
	assert.True(t, bytes.HasPrefix(art.Body, []byte("%PDF-")))
}

func TestExportService_NotFound(t *testing.T) {
	f := newExportFixture(t, true)

	_, err := f.exports.BOMCSV(context.Background(), "est-missing")
	assert.ErrorIs(t, err, service.ErrEstimateNotFound)

	_, err = f.exports.ProposalPDF(context.Background(), "est-missing")
	assert.ErrorIs(t, err, service.ErrEstimateNotFound)
}

// ============================================================================
// Archive
// ============================================================================

func TestExportService_ServesRepeatsFromArchive(t *testing.T) {
	f := newExportFixture(t, true)
	ctx := context.Background()

	_, err := f.estimates.Save(ctx, saveRequest("est-abcdef"))
	require.NoError(t, err)

	first, err := f.exports.BOMCSV(ctx, "est-abcdef")
	require.NoError(t, err)
	assert.False(t, first.FromArchive)

	second, err := f.exports.BOMCSV(ctx, "est-abcdef")
	require.NoError(t, err)
	assert.True(t, second.FromArchive)
	assert.Equal(t, first.Body, second.Body)

	keys := f.archiveKeys(t)
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "exports/est-abcdef/"))
	assert.True(t, strings.HasSuffix(keys[0], ".csv"))
}

func TestExportService_UpdateInvalidatesArchive(t *testing.T) {
	f := newExportFixture(t, true)
	ctx := context.Background()

	_, err := f.estimates.Save(ctx, saveRequest("est-abcdef"))
	require.NoError(t, err)
	_, err = f.exports.BOMCSV(ctx, "est-abcdef")
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	req := saveRequest("est-abcdef")
	req.Outputs.BOM[0].Qty = 30
	_, err = f.estimates.Save(ctx, req)
	require.NoError(t, err)

	art, err := f.exports.BOMCSV(ctx, "est-abcdef")
	require.NoError(t, err)
	assert.False(t, art.FromArchive)
	assert.Contains(t, string(art.Body), "Joist,30")
	assert.Len(t, f.archiveKeys(t), 2)

	removed, err := f.exports.PruneStale(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Len(t, f.archiveKeys(t), 1)
}

func TestExportService_DeletePurgesArchive(t *testing.T) {
	f := newExportFixture(t, true)
	ctx := context.Background()

	for _, id := range []string{"est-111111", "est-222222"} {
		_, err := f.estimates.Save(ctx, saveRequest(id))
		require.NoError(t, err)
		_, err = f.exports.BOMCSV(ctx, id)
		require.NoError(t, err)
		_, err = f.exports.ProposalPDF(ctx, id)
		require.NoError(t, err)
	}
	require.Len(t, f.archiveKeys(t), 4)

	require.NoError(t, f.estimates.Delete(ctx, "est-111111"))

	keys := f.archiveKeys(t)
	require.Len(t, keys, 2)
	for _, k := range keys {
		assert.True(t, strings.HasPrefix(k, "exports/est-222222/"), k)
	}
}

func TestExportService_PruneRemovesOrphans(t *testing.T) {
	f := newExportFixture(t, true)
	ctx := context.Background()

	_, err := f.archive.Put(ctx, "exports/est-gone00/123.csv", export.ContentTypeCSV, strings.NewReader("x"))
	require.NoError(t, err)
	_, err = f.archive.Put(ctx, "exports/notes.txt", "text/plain", strings.NewReader("ignored"))
	require.NoError(t, err)

	removed, err := f.exports.PruneStale(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"exports/notes.txt"}, f.archiveKeys(t))
}

func TestExportService_WithoutArchive(t *testing.T) {
	f := newExportFixture(t, false)

	removed, err := f.exports.PruneStale(context.Background(), 4)
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.NoError(t, f.exports.Purge(context.Background(), "est-abcdef"))
}
