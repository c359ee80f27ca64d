package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/straye-as/estimate-api/internal/domain"
	"github.com/straye-as/estimate-api/internal/export"
	"github.com/straye-as/estimate-api/internal/logger"
	"github.com/straye-as/estimate-api/internal/repository"
	"github.com/straye-as/estimate-api/internal/storage"
)

const archivePrefix = "exports/"

// Artifact is a rendered export ready to be sent to the client
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
	// FromArchive is set when the bytes came from storage instead of a render
	FromArchive bool
}

type exportKind struct {
	ext         string
	contentType string
	filename    func(rec *domain.EstimateRecord) string
	render      func(w io.Writer, rec *domain.EstimateRecord) error
}

var (
	bomExport = exportKind{
		ext:         "csv",
		contentType: export.ContentTypeCSV,
		filename:    func(rec *domain.EstimateRecord) string { return export.BOMFilename(rec.ID) },
		render: func(w io.Writer, rec *domain.EstimateRecord) error {
			return export.WriteBOMCSV(w, rec.Outputs.BOM)
		},
	}
	proposalExport = exportKind{
		ext:         "pdf",
		contentType: export.ContentTypePDF,
		filename:    func(rec *domain.EstimateRecord) string { return export.ProposalFilename(rec.Title) },
		render:      export.WriteProposalPDF,
	}
)

// ExportService renders stored estimates and keeps an optional archive of
// the rendered files. An archive entry is only valid for the estimate
// version (updatedAt) it was rendered from.
type ExportService struct {
	estimateRepo *repository.EstimateRepository
	archive      storage.Storage
	logger       *zap.Logger
}

// NewExportService creates a new export service. archive may be nil.
func NewExportService(estimateRepo *repository.EstimateRepository, archive storage.Storage, logger *zap.Logger) *ExportService {
	return &ExportService{
		estimateRepo: estimateRepo,
		archive:      archive,
		logger:       logger,
	}
}

// BOMCSV returns the bill of materials of an estimate as CSV
func (s *ExportService) BOMCSV(ctx context.Context, id string) (*Artifact, error) {
	return s.artifact(ctx, id, bomExport)
}

// ProposalPDF returns the customer proposal of an estimate as PDF
func (s *ExportService) ProposalPDF(ctx context.Context, id string) (*Artifact, error) {
	return s.artifact(ctx, id, proposalExport)
}

func (s *ExportService) artifact(ctx context.Context, id string, kind exportKind) (*Artifact, error) {
	rec, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstimateNotFound
		}
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}

	art := &Artifact{Filename: kind.filename(rec), ContentType: kind.contentType}
	key := archiveKey(rec, kind.ext)
	log := logger.WithEstimate(s.logger, rec.ID)

	if s.archive != nil {
		if body, err := s.readArchive(ctx, key); err == nil {
			art.Body = body
			art.FromArchive = true
			return art, nil
		} else if !errors.Is(err, storage.ErrNotFound) {
			log.Warn("Failed to read archived export", zap.String("key", key), zap.Error(err))
		}
	}

	var buf bytes.Buffer
	if err := kind.render(&buf, rec); err != nil {
		return nil, fmt.Errorf("failed to render %s export: %w", kind.ext, err)
	}
	art.Body = buf.Bytes()

	if s.archive != nil {
		if _, err := s.archive.Put(ctx, key, kind.contentType, bytes.NewReader(art.Body)); err != nil {
			log.Warn("Failed to archive export", zap.String("key", key), zap.Error(err))
		}
	}
	return art, nil
}

func (s *ExportService) readArchive(ctx context.Context, key string) ([]byte, error) {
	rc, err := s.archive.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Purge deletes every archived export of an estimate
func (s *ExportService) Purge(ctx context.Context, estimateID string) error {
	if s.archive == nil {
		return nil
	}
	keys, err := s.archive.List(ctx, archiveDir(estimateID))
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.archive.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// PruneStale deletes archived exports whose estimate is gone or has changed
// since they were rendered. At most concurrency deletes run at once. It
// returns the number of entries removed.
func (s *ExportService) PruneStale(ctx context.Context, concurrency int) (int, error) {
	if s.archive == nil {
		return 0, nil
	}

	keys, err := s.archive.List(ctx, archivePrefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list archive: %w", err)
	}

	entries := make(map[string][]archiveEntry)
	var ids []string
	for _, key := range keys {
		entry, ok := parseArchiveKey(key)
		if !ok {
			continue
		}
		if _, seen := entries[entry.estimateID]; !seen {
			ids = append(ids, entry.estimateID)
		}
		entries[entry.estimateID] = append(entries[entry.estimateID], entry)
	}

	current, err := s.estimateRepo.UpdatedAtByID(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to load estimate versions: %w", err)
	}

	var stale []string
	for id, list := range entries {
		updatedAt, exists := current[id]
		for _, e := range list {
			if !exists || e.version != updatedAt.UnixNano() {
				stale = append(stale, e.key)
			}
		}
	}

	if concurrency < 1 {
		concurrency = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, key := range stale {
		g.Go(func() error {
			return s.archive.Delete(gctx, key)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("failed to prune archive: %w", err)
	}
	return len(stale), nil
}

type archiveEntry struct {
	key        string
	estimateID string
	version    int64
}

func archiveDir(estimateID string) string {
	return archivePrefix + url.PathEscape(estimateID) + "/"
}

// archiveKey is exports/<id>/<updatedAt unix nanos>.<ext>
func archiveKey(rec *domain.EstimateRecord, ext string) string {
	return archiveDir(rec.ID) + strconv.FormatInt(rec.UpdatedAt.UnixNano(), 10) + "." + ext
}

func parseArchiveKey(key string) (archiveEntry, bool) {
	rest, ok := strings.CutPrefix(key, archivePrefix)
	if !ok {
		return archiveEntry{}, false
	}
	dir, file, ok := strings.Cut(rest, "/")
	if !ok || strings.Contains(file, "/") {
		return archiveEntry{}, false
	}
	id, err := url.PathUnescape(dir)
	if err != nil {
		return archiveEntry{}, false
	}
	stem, _, ok := strings.Cut(file, ".")
	if !ok {
		return archiveEntry{}, false
	}
	version, err := strconv.ParseInt(stem, 10, 64)
	if err != nil {
		return archiveEntry{}, false
	}
	return archiveEntry{key: key, estimateID: id, version: version}, true
}
