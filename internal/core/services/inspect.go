package services

import (
	"context"
	"fmt"
	"math"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driving"
	"github.com/custodia-labs/tdsprep/internal/logger"
)

// Ensure InspectService implements the interface.
var _ driving.InspectService = (*InspectService)(nil)

// unknownKey groups records missing a source or content type.
const unknownKey = "unknown"

// InspectService reads persisted output the way a downstream
// vector-store builder would.
type InspectService struct {
	reader driven.RecordReader
}

// NewInspectService creates an inspect service.
func NewInspectService(reader driven.RecordReader) *InspectService {
	return &InspectService{reader: reader}
}

// Records returns the coerced records in path scoring at least minQuality.
func (s *InspectService) Records(ctx context.Context, path string, minQuality float64) ([]domain.Record, error) {
	records, _, err := s.load(ctx, path, minQuality)
	return records, err
}

// Summarise describes the records in path scoring at least minQuality.
func (s *InspectService) Summarise(ctx context.Context, path string, minQuality float64) (*domain.OutputSummary, error) {
	records, invalid, err := s.load(ctx, path, minQuality)
	if err != nil {
		return nil, err
	}

	summary := &domain.OutputSummary{
		Path:          path,
		Records:       len(records),
		Invalid:       invalid,
		BySource:      make(map[string]int),
		ByContentType: make(map[string]int),
	}

	docIDs := make(map[string]struct{}, len(records))
	var total float64
	for _, rec := range records {
		summary.BySource[groupKey(rec.Metadata[domain.MetaSource])]++
		summary.ByContentType[groupKey(rec.Metadata[domain.MetaContentType])]++
		if id, ok := rec.Metadata[domain.MetaDocID]; ok && id != nil {
			docIDs[fmt.Sprint(id)] = struct{}{}
		}
		total += domain.QualityScore(rec.Metadata)
	}

	summary.UniqueDocIDs = len(docIDs)
	if len(records) > 0 {
		summary.AverageQuality = math.Round(total/float64(len(records))*1000) / 1000
	}
	return summary, nil
}

func (s *InspectService) load(ctx context.Context, path string, minQuality float64) ([]domain.Record, int, error) {
	if path == "" {
		return nil, 0, fmt.Errorf("%w: empty output path", domain.ErrInvalidInput)
	}
	if math.IsNaN(minQuality) || math.IsInf(minQuality, 0) {
		return nil, 0, fmt.Errorf("%w: min_quality must be a finite number", domain.ErrInvalidInput)
	}

	records, invalid, err := s.reader.Read(ctx, path)
	if err != nil {
		return nil, 0, err
	}
	if invalid > 0 {
		logger.Warn("Skipped %d invalid records in %s", invalid, path)
	}

	kept := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if domain.MeetsQuality(rec.Metadata, minQuality) {
			kept = append(kept, rec)
		}
	}
	return kept, invalid, nil
}

func groupKey(v any) string {
	if v == nil {
		return unknownKey
	}
	if s := fmt.Sprint(v); s != "" {
		return s
	}
	return unknownKey
}
