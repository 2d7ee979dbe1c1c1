package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStore reads chemical and employee records from the inventory
// database owned by the surrounding application. Read-only by design.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed inventory reader.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListChemicals(ctx context.Context) ([]Chemical, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_name, manufacturer, location, container_count,
		       labeled, sds_status, added_date, label_printed_date,
		       signal_word, pictogram_codes
		FROM chemicals
		ORDER BY product_name`)
	if err != nil {
		return nil, fmt.Errorf("list chemicals: %w", err)
	}
	defer rows.Close()

	var chemicals []Chemical
	for rows.Next() {
		var (
			c            Chemical
			labelPrinted sql.NullTime
			signalWord   sql.NullString
		)
		err := rows.Scan(&c.ID, &c.ProductName, &c.Manufacturer, &c.Location,
			&c.ContainerCount, &c.Labeled, &c.SDSStatus, &c.AddedDate,
			&labelPrinted, &signalWord, pq.Array(&c.PictogramCodes))
		if err != nil {
			return nil, fmt.Errorf("scan chemical: %w", err)
		}
		if labelPrinted.Valid {
			t := labelPrinted.Time
			c.LabelPrintedDate = &t
		}
		c.SignalWord = signalWord.String
		chemicals = append(chemicals, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chemicals: %w", err)
	}
	return chemicals, nil
}

func (s *PostgresStore) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, role, completed_modules, pending_modules,
		       initial_training, last_training
		FROM employees
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var (
			e         Employee
			completed []string
			pending   []string
			initial   sql.NullTime
			last      sql.NullTime
		)
		err := rows.Scan(&e.ID, &e.Name, &e.Role, pq.Array(&completed),
			pq.Array(&pending), &initial, &last)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		e.CompletedModules = toModuleIDs(completed)
		e.PendingModules = toModuleIDs(pending)
		if initial.Valid {
			t := initial.Time
			e.InitialTraining = &t
		}
		if last.Valid {
			t := last.Time
			e.LastTraining = &t
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return employees, nil
}

func toModuleIDs(raw []string) []ModuleID {
	if len(raw) == 0 {
		return nil
	}
	ids := make([]ModuleID, len(raw))
	for i, m := range raw {
		ids[i] = ModuleID(m)
	}
	return ids
}
