package export

import "context"

// Repository stores the export history
type Repository interface {
	Create(ctx context.Context, log *Log) error
	List(ctx context.Context, limit, offset int) ([]*Log, int, error)
	GetByObjectName(ctx context.Context, objectName string) (*Log, error)
}
