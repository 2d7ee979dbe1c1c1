// Package inventory defines the chemical and employee records consumed by the
// compliance engine. The records are owned by the surrounding inventory
// application; this service only reads them through the store interfaces.
package inventory

import "time"

// SDSStatus tracks whether a chemical has a usable safety data sheet on file.
type SDSStatus string

const (
	SDSCurrent SDSStatus = "current"
	SDSExpired SDSStatus = "expired"
	SDSMissing SDSStatus = "missing"
)

// ModuleID identifies one training curriculum module.
type ModuleID string

// Chemical is one inventoried product. Labeling state and SDS status are
// mutated by workflows outside this service.
type Chemical struct {
	ID               string     `json:"id"`
	ProductName      string     `json:"product_name"`
	Manufacturer     string     `json:"manufacturer"`
	Location         string     `json:"location"`
	ContainerCount   int        `json:"container_count"`
	Labeled          bool       `json:"labeled"`
	SDSStatus        SDSStatus  `json:"sds_status"`
	AddedDate        time.Time  `json:"added_date"`
	LabelPrintedDate *time.Time `json:"label_printed_date,omitempty"`
	SignalWord       string     `json:"signal_word,omitempty"`
	PictogramCodes   []string   `json:"pictogram_codes,omitempty"`
}

// Employee carries training progress. Training status is always derived from
// CompletedModules and LastTraining (see internal/training); it is never
// stored, which removes the drift risk of a persisted classification.
type Employee struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Role             string     `json:"role"`
	CompletedModules []ModuleID `json:"completed_modules"`
	PendingModules   []ModuleID `json:"pending_modules"`
	InitialTraining  *time.Time `json:"initial_training,omitempty"`
	LastTraining     *time.Time `json:"last_training,omitempty"`
}
