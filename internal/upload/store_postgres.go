package upload

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresIndex persists upload records in PostgreSQL, one row per SDS id.
type PostgresIndex struct {
	db *sql.DB
}

func NewPostgresIndex(db *sql.DB) *PostgresIndex {
	return &PostgresIndex{db: db}
}

func (s *PostgresIndex) Put(ctx context.Context, record Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sds_uploads (sds_id, file_name, original_name, uploaded_at, uploaded_by, file_size)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (sds_id) DO UPDATE SET
			file_name = EXCLUDED.file_name,
			original_name = EXCLUDED.original_name,
			uploaded_at = EXCLUDED.uploaded_at,
			uploaded_by = EXCLUDED.uploaded_by,
			file_size = EXCLUDED.file_size`,
		record.SDSID, record.FileName, record.OriginalName,
		record.UploadedAt, record.UploadedBy, record.FileSize)
	if err != nil {
		return fmt.Errorf("put upload record: %w", err)
	}
	return nil
}

func (s *PostgresIndex) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sds_id, file_name, original_name, uploaded_at, uploaded_by, file_size
		FROM sds_uploads
		ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list upload records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r          Record
			uploadedBy sql.NullString
		)
		if err := rows.Scan(&r.SDSID, &r.FileName, &r.OriginalName, &r.UploadedAt, &uploadedBy, &r.FileSize); err != nil {
			return nil, fmt.Errorf("scan upload record: %w", err)
		}
		r.UploadedBy = uploadedBy.String
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate upload records: %w", err)
	}
	return records, nil
}
