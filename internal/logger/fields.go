package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldSearchID is the structured log field key for the search identifier.
	FieldSearchID = "search_id"
	// FieldMode is the structured log field key for the scoring mode.
	FieldMode = "scoring_mode"
	// FieldCandidateID is the structured log field key for a candidate identifier.
	FieldCandidateID = "candidate_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger, defaulting
// to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// SearchFields returns the fields that tie log entries to one search.
func SearchFields(searchID, mode string) []zap.Field {
	return StringFields(
		StringField{Key: FieldSearchID, Value: searchID},
		StringField{Key: FieldMode, Value: mode},
	)
}

// WithSearchFields attaches the search fields to the provided logger.
func WithSearchFields(logger *zap.Logger, searchID, mode string) *zap.Logger {
	return WithFields(logger, SearchFields(searchID, mode)...)
}
