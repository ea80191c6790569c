// Package ingest loads uploaded CSV bytes into datasets, with an optional
// content-addressed cache so byte-identical uploads are not reparsed.
package ingest

import (
	"github.com/polarsight/sea-ice-analyst/internal/domain"
)

// Loader parses raw tabular bytes into a Dataset.
type Loader interface {
	Load(data []byte) (*domain.Dataset, error)
}

// CSVLoader is the plain, uncached loader.
type CSVLoader struct{}

func (CSVLoader) Load(data []byte) (*domain.Dataset, error) {
	return domain.ParseCSV(data)
}
