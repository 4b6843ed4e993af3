package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/export"
	"github.com/google/uuid"
)

// exportLogRepository keeps export history in process memory, newest first.
type exportLogRepository struct {
	mu   sync.RWMutex
	logs []*export.Log
}

// NewExportLogRepository creates an in-memory export log repository
func NewExportLogRepository() export.Repository {
	return &exportLogRepository{}
}

func (r *exportLogRepository) Create(ctx context.Context, log *export.Log) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	stored := *log
	r.mu.Lock()
	r.logs = append([]*export.Log{&stored}, r.logs...)
	r.mu.Unlock()

	return nil
}

func (r *exportLogRepository) List(ctx context.Context, limit, offset int) ([]*export.Log, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.logs)
	if offset >= total {
		return []*export.Log{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]*export.Log, 0, end-offset)
	for _, l := range r.logs[offset:end] {
		copied := *l
		page = append(page, &copied)
	}
	return page, total, nil
}

func (r *exportLogRepository) GetByObjectName(ctx context.Context, objectName string) (*export.Log, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.logs {
		if l.ObjectName != nil && *l.ObjectName == objectName {
			copied := *l
			return &copied, nil
		}
	}
	return nil, export.ErrExportLogNotFound
}
