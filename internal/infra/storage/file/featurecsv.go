package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gabapcia/sharkguard/internal/features"
)

// ErrMalformedDataset is returned when a dataset file does not carry the
// expected header or a row cannot be parsed.
var ErrMalformedDataset = errors.New("malformed feature dataset")

// datasetStore persists feature datasets as a CSV file: one header row with
// the wallet column followed by the feature schema, then one row per wallet.
type datasetStore struct {
	path string
}

// NewDatasetStore creates a feature dataset store rooted at the given path.
func NewDatasetStore(path string) *datasetStore {
	return &datasetStore{
		path: path,
	}
}

// header is the expected CSV column layout.
func header() []string {
	return append([]string{"wallet"}, features.Schema()...)
}

// SaveDataset writes the dataset, replacing any previous file. Feature
// columns follow the extraction schema order.
func (s *datasetStore) SaveDataset(ctx context.Context, dataset []features.WalletVector) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating dataset directory %s: %w", dir, err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("creating dataset file %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header()); err != nil {
		return fmt.Errorf("writing dataset header: %w", err)
	}

	names := features.Schema()
	for _, wv := range dataset {
		values, err := wv.Features.Values(names)
		if err != nil {
			return fmt.Errorf("dataset row for wallet %s: %w", wv.Wallet, err)
		}

		row := make([]string, 0, len(values)+1)
		row = append(row, wv.Wallet)
		for _, v := range values {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing dataset row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing dataset file: %w", err)
	}

	return nil
}

// LoadDataset reads a dataset previously written by SaveDataset. The header
// must match the current extraction schema exactly; a dataset produced under
// a different schema is rejected rather than silently misaligned.
func (s *datasetStore) LoadDataset(ctx context.Context) ([]features.WalletVector, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset file %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading dataset file %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedDataset)
	}

	want := header()
	got := records[0]
	if len(got) != len(want) {
		return nil, fmt.Errorf("%w: header has %d columns, expected %d", ErrMalformedDataset, len(got), len(want))
	}
	for i, name := range want {
		if got[i] != name {
			return nil, fmt.Errorf("%w: header column %d is %q, expected %q", ErrMalformedDataset, i, got[i], name)
		}
	}

	names := features.Schema()
	dataset := make([]features.WalletVector, 0, len(records)-1)
	for rowNum, record := range records[1:] {
		vec := make(features.Vector, len(names))
		for i, name := range names {
			v, err := strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %q: %v", ErrMalformedDataset, rowNum+1, name, err)
			}
			vec[name] = v
		}

		dataset = append(dataset, features.WalletVector{
			Wallet:   record[0],
			Features: vec,
		})
	}

	return dataset, nil
}
