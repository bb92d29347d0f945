package services

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driving"
	"github.com/custodia-labs/tdsprep/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// ConfigOpener opens the configuration file at path. An empty path selects
// the default file. With mustExist set, a missing file is an error.
type ConfigOpener func(path string, mustExist bool) (driven.ConfigStore, error)

type settingKind int

const (
	kindString settingKind = iota
	kindDate
	kindInt
	kindFloat
	kindBool
)

var settingKinds = map[string]settingKind{
	KeyMarkdownMetadata: kindString,
	KeyMarkdownDir:      kindString,
	KeyDiscourseInput:   kindString,
	KeyDateFrom:         kindDate,
	KeyDateTo:           kindDate,
	KeyOutputFile:       kindString,
	KeySQLiteOutput:     kindString,
	KeyMinQuality:       kindFloat,
	KeyChunkSize:        kindInt,
	KeyChunkOverlap:     kindInt,
	KeyWatch:            kindBool,
}

// SettingsService reads pipeline options from, and writes single settings
// to, a configuration file.
type SettingsService struct {
	open ConfigOpener
}

// NewSettingsService creates a settings service that opens files with open.
func NewSettingsService(open ConfigOpener) *SettingsService {
	return &SettingsService{open: open}
}

// Options reads pipeline options from the file at path.
func (s *SettingsService) Options(path string) (domain.PipelineOptions, error) {
	store, err := s.open(path, path != "")
	if err != nil {
		return domain.PipelineOptions{}, err
	}
	logger.Debug("Using configuration %s", store.Path())

	return LoadOptions(store), nil
}

// Set parses value according to key's type and persists it.
func (s *SettingsService) Set(path, key, value string) (string, error) {
	parsed, err := parseSetting(key, value)
	if err != nil {
		return "", err
	}

	store, err := s.open(path, false)
	if err != nil {
		return "", err
	}
	if err := store.Set(key, parsed); err != nil {
		return "", fmt.Errorf("save %s: %w", key, err)
	}

	logger.Debug("Set %s = %v in %s", key, parsed, store.Path())
	return store.Path(), nil
}

// Keys returns the recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func parseSetting(key, value string) (any, error) {
	kind, ok := settingKinds[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	value = strings.TrimSpace(value)

	switch kind {
	case kindDate:
		if value != "" {
			if _, err := domain.NewDateRange(value, value); err != nil {
				return nil, fmt.Errorf("%w: %s must be an ISO-8601 date, got %q", domain.ErrInvalidInput, key, value)
			}
		}
		return value, nil
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative integer, got %q", domain.ErrInvalidInput, key, value)
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %s must be a number, got %q", domain.ErrInvalidInput, key, value)
		}
		return f, nil
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		return b, nil
	default:
		return value, nil
	}
}
