package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/export"
	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type exportLogRepository struct {
	db *database.DB
}

// NewExportLogRepository creates a new export log repository
func NewExportLogRepository(db *database.DB) export.Repository {
	return &exportLogRepository{db: db}
}

const exportLogColumns = `id, intent, filename, object_name, content_type, employee_count, status, message, size_bytes, created_at`

// Create inserts an export attempt
func (r *exportLogRepository) Create(ctx context.Context, log *export.Log) error {
	q := GetQuerier(ctx, r.db)

	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	query := `
		INSERT INTO export_logs (` + exportLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := q.Exec(ctx, query,
		log.ID,
		string(log.Intent),
		log.Filename,
		log.ObjectName,
		log.ContentType,
		log.EmployeeCount,
		string(log.Status),
		log.Message,
		log.SizeBytes,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create export log: %w", err)
	}

	return nil
}

// List returns export attempts, newest first
func (r *exportLogRepository) List(ctx context.Context, limit, offset int) ([]*export.Log, int, error) {
	q := GetQuerier(ctx, r.db)

	var total int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM export_logs").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count export logs: %w", err)
	}

	query := `
		SELECT ` + exportLogColumns + `
		FROM export_logs
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`

	rows, err := q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query export logs: %w", err)
	}
	defer rows.Close()

	logs := []*export.Log{}
	for rows.Next() {
		l, err := scanExportLog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan export log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate export logs: %w", err)
	}

	return logs, total, nil
}

// GetByObjectName finds the attempt that saved objectName
func (r *exportLogRepository) GetByObjectName(ctx context.Context, objectName string) (*export.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + exportLogColumns + `
		FROM export_logs
		WHERE object_name = $1
	`

	l, err := scanExportLog(q.QueryRow(ctx, query, objectName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, export.ErrExportLogNotFound
		}
		return nil, fmt.Errorf("failed to get export log: %w", err)
	}

	return l, nil
}

func scanExportLog(row pgx.Row) (*export.Log, error) {
	var l export.Log
	var intent, status string

	err := row.Scan(
		&l.ID,
		&intent,
		&l.Filename,
		&l.ObjectName,
		&l.ContentType,
		&l.EmployeeCount,
		&status,
		&l.Message,
		&l.SizeBytes,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Intent = export.Intent(intent)
	l.Status = export.Status(status)
	return &l, nil
}
