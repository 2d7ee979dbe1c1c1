// Package models holds the safety-document record and the resolve
// request/response shapes shared by the cache, client, service, and handler.
package models

import "time"

// Record is one resolved safety-document reference. Records are immutable
// once created; a re-resolution appends a new record instead of updating.
// Confidence is always within [0, 1].
type Record struct {
	ProductName           string    `json:"product_name"`
	Manufacturer          string    `json:"manufacturer,omitempty"`
	SDSURL                string    `json:"sds_url,omitempty"`
	SDSSource             string    `json:"sds_source,omitempty"`
	ManufacturerPortalURL string    `json:"manufacturer_portal_url,omitempty"`
	Confidence            float64   `json:"confidence"`
	LookupDate            time.Time `json:"lookup_date"`
}

// Usable reports whether the record passes the confidence gate: strictly
// above 0.5 with a document URL present. Exactly 0.5 does not qualify.
func (r Record) Usable() bool {
	return r.Confidence > 0.5 && r.SDSURL != ""
}

// ResolveRequest is the resolution endpoint input. Both fields are required.
type ResolveRequest struct {
	ProductName  string `json:"product_name"`
	Manufacturer string `json:"manufacturer"`
}

// Resolution is what the orchestrator returns: the record plus the free-form
// notes the external service attached (empty on cache hits).
type Resolution struct {
	Record Record
	Notes  string
	Cached bool
}

// ResolveResponse is the resolution endpoint output.
type ResolveResponse struct {
	SDSURL                string  `json:"sds_url"`
	SDSSource             string  `json:"sds_source"`
	ManufacturerSDSPortal string  `json:"manufacturer_sds_portal"`
	Confidence            float64 `json:"confidence"`
	Notes                 string  `json:"notes"`
}
