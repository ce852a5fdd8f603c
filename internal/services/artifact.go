package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/seyaul/hana-auth/internal/events"
	"github.com/seyaul/hana-auth/internal/storage"
)

const snapshotContentType = "text/csv"

// ArtifactService stores immutable per-tool snapshots and maintains a
// latest pointer per tool. Snapshots are additive; only the pointer moves.
type ArtifactService struct {
	storage  *storage.Storage
	notifier *events.Notifier

	// One mutex per allow-listed tool. Uploads to the same tool serialize
	// on the pointer redirect; different tools never contend.
	locks map[string]*sync.Mutex
}

// NewArtifactService constructs the service for the fixed tool allow-list.
func NewArtifactService(st *storage.Storage, tools []string, notifier *events.Notifier) *ArtifactService {
	locks := make(map[string]*sync.Mutex, len(tools))
	for _, tool := range tools {
		locks[tool] = &sync.Mutex{}
	}
	return &ArtifactService{
		storage:  st,
		notifier: notifier,
		locks:    locks,
	}
}

// Upload accepts a CSV snapshot for the tool, writes it under a fresh
// unique key, then redirects the tool's latest pointer to it. The pointer
// write is a single atomic replace, so a concurrent DownloadLatest sees
// either the previous snapshot or this one, never "missing".
func (s *ArtifactService) Upload(ctx context.Context, tool, filename, uploader string, content io.Reader, size int64) (string, error) {
	lock, ok := s.locks[tool]
	if !ok {
		return "", ErrUnknownTool
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return "", ErrInvalidFormat
	}

	key := s.snapshotKey(tool)
	if err := s.storage.Put(ctx, key, content, size, snapshotContentType); err != nil {
		return "", fmt.Errorf("store snapshot: %w", err)
	}

	// The snapshot write above runs unlocked: keys are unique so uploads
	// to the same tool cannot clobber each other's content. Only the
	// pointer redirect is serialized per tool.
	lock.Lock()
	err := s.storage.Put(ctx, s.pointerKey(tool), bytes.NewReader([]byte(key)), int64(len(key)), "text/plain")
	lock.Unlock()
	if err != nil {
		return "", fmt.Errorf("redirect latest pointer: %w", err)
	}

	s.notifier.ArtifactUploaded(ctx, tool, key, uploader)
	return key, nil
}

// DownloadLatest resolves the tool's latest pointer and returns the
// snapshot content. ErrNoSnapshot means nothing has been uploaded yet.
func (s *ArtifactService) DownloadLatest(ctx context.Context, tool string) (io.ReadCloser, error) {
	pointer, err := s.storage.GetBytes(ctx, s.pointerKey(tool))
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("resolve latest pointer: %w", err)
	}

	key := strings.TrimSpace(string(pointer))
	r, err := s.storage.Get(ctx, key)
	if err != nil {
		// Snapshots are immutable and never deleted, so a dangling
		// pointer means the store was tampered with out of band.
		return nil, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return r, nil
}

func (s *ArtifactService) snapshotKey(tool string) string {
	return fmt.Sprintf("tools/%s/%s.csv", tool, uuid.NewString())
}

func (s *ArtifactService) pointerKey(tool string) string {
	return fmt.Sprintf("tools/%s/latest", tool)
}
