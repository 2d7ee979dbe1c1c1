package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hazcom/internal/sds/metrics"
	"hazcom/internal/sds/models"
	"hazcom/pkg/platform/sentinel"
)

// PostgresStore persists safety-document records in PostgreSQL.
type PostgresStore struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// NewPostgres constructs a PostgreSQL-backed document cache.
func NewPostgres(db *sql.DB, m *metrics.Metrics) *PostgresStore {
	return &PostgresStore{db: db, metrics: m}
}

const recordColumns = `product_name, manufacturer, sds_url, sds_source,
       manufacturer_portal_url, confidence, lookup_date`

func (s *PostgresStore) Find(ctx context.Context, productName, manufacturer string) (*models.Record, error) {
	// Tier 1: exact product name, newest record wins.
	record, err := s.queryOne(ctx, `
		SELECT `+recordColumns+`
		FROM sds_documents
		WHERE product_name = $1
		ORDER BY lookup_date DESC
		LIMIT 1`, productName)
	if err != nil {
		return nil, fmt.Errorf("exact lookup: %w", err)
	}
	if record != nil {
		s.metrics.ObserveCacheHit("exact")
		return record, nil
	}

	// Tier 2: case-insensitive product name.
	record, err = s.queryOne(ctx, `
		SELECT `+recordColumns+`
		FROM sds_documents
		WHERE LOWER(product_name) = LOWER($1)
		ORDER BY lookup_date DESC
		LIMIT 1`, productName)
	if err != nil {
		return nil, fmt.Errorf("fold lookup: %w", err)
	}
	if record != nil {
		s.metrics.ObserveCacheHit("fold")
		return record, nil
	}

	// Tier 3: substring on the first tokens of the product name.
	term := searchTokens(productName)
	if term != "" {
		candidates, err := s.queryMany(ctx, `
			SELECT `+recordColumns+`
			FROM sds_documents
			WHERE product_name ILIKE $1
			ORDER BY lookup_date DESC
			LIMIT $2`, "%"+term+"%", substringLimit)
		if err != nil {
			return nil, fmt.Errorf("substring lookup: %w", err)
		}
		if picked := pickCandidate(candidates, manufacturer); picked != nil {
			s.metrics.ObserveCacheHit("substring")
			return picked, nil
		}
	}

	s.metrics.ObserveCacheMiss()
	return nil, sentinel.ErrNotFound
}

func (s *PostgresStore) Insert(ctx context.Context, record models.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sds_documents (product_name, manufacturer, sds_url,
			sds_source, manufacturer_portal_url, confidence, lookup_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		record.ProductName, record.Manufacturer, record.SDSURL,
		record.SDSSource, record.ManufacturerPortalURL, record.Confidence,
		record.LookupDate)
	if err != nil {
		return fmt.Errorf("insert sds document: %w", err)
	}
	return nil
}

func (s *PostgresStore) queryOne(ctx context.Context, query string, args ...any) (*models.Record, error) {
	row := s.db.QueryRowContext(ctx, query, args...)
	record, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *PostgresStore) queryMany(ctx context.Context, query string, args ...any) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func scanRecord(scan func(...any) error) (*models.Record, error) {
	var (
		r            models.Record
		manufacturer sql.NullString
		sdsURL       sql.NullString
		sdsSource    sql.NullString
		portalURL    sql.NullString
	)
	err := scan(&r.ProductName, &manufacturer, &sdsURL, &sdsSource,
		&portalURL, &r.Confidence, &r.LookupDate)
	if err != nil {
		return nil, err
	}
	r.Manufacturer = manufacturer.String
	r.SDSURL = sdsURL.String
	r.SDSSource = sdsSource.String
	r.ManufacturerPortalURL = portalURL.String
	return &r, nil
}
