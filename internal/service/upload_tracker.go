package service

import (
	"sync"
	"time"

	"file-converter-api/internal/domain"

	"github.com/google/uuid"
)

const (
	// uploadEntryTTL bounds how long a status entry outlives its last
	// transition, keeping the map from growing without bound.
	uploadEntryTTL = 30 * time.Minute

	uploadSweepInterval = 5 * time.Minute
)

type uploadEntry struct {
	status    domain.UploadStatus
	touchedAt time.Time
}

// UploadTracker keeps upload lifecycle state in process memory. Entries
// are lost on restart; clients polling an id from a previous process get
// a 404 and restart the upload.
type UploadTracker struct {
	logger domain.Logger
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]*uploadEntry

	stopOnce sync.Once
	stop     chan struct{}
}

// NewUploadTracker creates the tracker and starts its sweep loop.
func NewUploadTracker(logger domain.Logger) *UploadTracker {
	t := &UploadTracker{
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]*uploadEntry),
		stop:    make(chan struct{}),
	}
	go t.sweepLoop()
	return t
}

// Create registers a new upload in the pending state and returns its
// status record with a fresh upload id.
func (t *UploadTracker) Create(fileName string) *domain.UploadStatus {
	now := t.now()
	status := domain.UploadStatus{
		UploadID:  uuid.New().String(),
		Status:    domain.UploadStatePending,
		FileName:  fileName,
		CreatedAt: now,
	}

	t.mu.Lock()
	t.entries[status.UploadID] = &uploadEntry{status: status, touchedAt: now}
	t.mu.Unlock()

	t.logger.Debug("Upload registered", "upload_id", status.UploadID, "file_name", fileName)
	return &status
}

// SetStatus transitions an upload. errMsg is recorded verbatim and only
// meaningful for the failed state.
func (t *UploadTracker) SetStatus(uploadID string, state domain.UploadState, errMsg string) (*domain.UploadStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[uploadID]
	if !ok || t.expired(entry) {
		delete(t.entries, uploadID)
		return nil, domain.ErrUploadNotFound
	}

	entry.status.Status = state
	entry.status.Error = errMsg
	entry.touchedAt = t.now()

	statusCopy := entry.status
	return &statusCopy, nil
}

// Get returns the status record for an upload id.
func (t *UploadTracker) Get(uploadID string) (*domain.UploadStatus, error) {
	t.mu.RLock()
	entry, ok := t.entries[uploadID]
	var statusCopy domain.UploadStatus
	if ok {
		statusCopy = entry.status
	}
	expired := ok && t.expired(entry)
	t.mu.RUnlock()

	if !ok || expired {
		return nil, domain.ErrUploadNotFound
	}
	return &statusCopy, nil
}

// Stop terminates the sweep loop. Used by tests and shutdown.
func (t *UploadTracker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

func (t *UploadTracker) expired(entry *uploadEntry) bool {
	return t.now().Sub(entry.touchedAt) > uploadEntryTTL
}

func (t *UploadTracker) sweepLoop() {
	ticker := time.NewTicker(uploadSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.sweep()
		case <-t.stop:
			return
		}
	}
}

func (t *UploadTracker) sweep() {
	t.mu.Lock()
	removed := 0
	for id, entry := range t.entries {
		if t.expired(entry) {
			delete(t.entries, id)
			removed++
		}
	}
	remaining := len(t.entries)
	t.mu.Unlock()

	if removed > 0 {
		t.logger.Debug("Swept expired upload entries", "removed", removed, "remaining", remaining)
	}
}
