// Package upload receives SDS PDF files, stores the bytes through a blob
// storage driver, and tracks one active upload record per SDS id.
package upload

import (
	"context"
	"time"
)

// Record indexes one stored SDS file. At most one record exists per SDSID;
// a re-upload replaces the previous record.
type Record struct {
	SDSID        string    `json:"sdsId"`
	FileName     string    `json:"fileName"`
	OriginalName string    `json:"originalName"`
	UploadedAt   time.Time `json:"uploadedAt"`
	UploadedBy   string    `json:"uploadedBy,omitempty"`
	FileSize     int64     `json:"fileSize"`
}

// Index stores upload records. Put replaces any prior record with the same
// SDSID.
type Index interface {
	Put(ctx context.Context, record Record) error
	List(ctx context.Context) ([]Record, error)
}
