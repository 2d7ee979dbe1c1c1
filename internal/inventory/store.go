package inventory

import "context"

// ChemicalStore reads the chemical inventory from the external store.
type ChemicalStore interface {
	ListChemicals(ctx context.Context) ([]Chemical, error)
}

// EmployeeStore reads employee training records from the external store.
type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
}
