package candidate

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/candidate-ranker/internal/logger"
)

//go:embed candidate.schema.json
var candidateSchema string

// ErrMalformedPool is returned when the pool document itself cannot be read.
var ErrMalformedPool = errors.New("malformed candidate pool")

// Skipped describes a raw record that could not be turned into a Candidate.
type Skipped struct {
	Source string `json:"source,omitempty"`
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// LoadReport summarizes a pool load.
type LoadReport struct {
	Total   int       `json:"total"`
	Loaded  int       `json:"loaded"`
	Skipped []Skipped `json:"skipped"`
}

// Loader decodes raw candidate records, normalizing variant-shaped fields
// so that the rest of the system sees a single canonical Candidate.
type Loader struct {
	schema *gojsonschema.Schema
	logger *zap.Logger
}

func NewLoader(l *zap.Logger) (*Loader, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(candidateSchema))
	if err != nil {
		return nil, fmt.Errorf("compile candidate schema: %w", err)
	}

	return &Loader{schema: schema, logger: logger.WithFields(l)}, nil
}

// LoadFile reads a pool from a JSON file. The file holds either an array
// of candidates or an object with a "candidates" array.
func (l *Loader) LoadFile(path string) (*Candidates, *LoadReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading candidate pool %q: %w", path, err)
	}

	pool, report, err := l.Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	for i := range report.Skipped {
		report.Skipped[i].Source = path
	}

	return pool, report, nil
}

// LoadFiles reads several pool files concurrently and merges them in the
// order given. A candidate ID seen in an earlier file wins; later copies are
// reported as skipped.
func (l *Loader) LoadFiles(paths ...string) (*Candidates, *LoadReport, error) {
	pools := make([]*Candidates, len(paths))
	reports := make([]*LoadReport, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			pool, report, err := l.LoadFile(path)
			if err != nil {
				return err
			}
			pools[i], reports[i] = pool, report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	merged := &Candidates{Items: []Candidate{}}
	report := &LoadReport{Skipped: []Skipped{}}
	seen := make(map[string]bool)

	for i, pool := range pools {
		report.Total += reports[i].Total
		report.Skipped = append(report.Skipped, reports[i].Skipped...)

		for idx, c := range pool.Items {
			if seen[c.ID] {
				report.Skipped = append(report.Skipped, Skipped{
					Source: paths[i],
					Index:  idx,
					ID:     c.ID,
					Reason: fmt.Sprintf("duplicate id %q", c.ID),
				})
				continue
			}
			seen[c.ID] = true
			merged.Items = append(merged.Items, c)
		}
	}

	report.Loaded = merged.Len()
	return merged, report, nil
}

// Decode turns a JSON document into a pool. Records that fail to decode are
// skipped and listed in the report; they never fail the whole load.
func (l *Loader) Decode(data []byte) (*Candidates, *LoadReport, error) {
	records, err := splitRecords(data)
	if err != nil {
		return nil, nil, err
	}

	pool := &Candidates{Items: make([]Candidate, 0, len(records))}
	report := &LoadReport{Total: len(records), Skipped: []Skipped{}}
	seen := make(map[string]bool, len(records))

	for idx, raw := range records {
		c, err := l.decodeRecord(raw)
		if err == nil && seen[c.ID] {
			err = fmt.Errorf("duplicate id %q", c.ID)
		}

		if err != nil {
			skipped := Skipped{Index: idx, ID: rawID(raw), Reason: err.Error()}
			report.Skipped = append(report.Skipped, skipped)
			l.logger.Warn("skipping candidate record",
				zap.Int("index", idx),
				zap.String(logger.FieldCandidateID, skipped.ID),
				zap.Error(err),
			)
			continue
		}

		seen[c.ID] = true
		pool.Items = append(pool.Items, c)
	}

	report.Loaded = pool.Len()
	l.logger.Debug("candidate pool decoded",
		zap.Int("total", report.Total),
		zap.Int("loaded", report.Loaded),
		zap.Int("skipped", len(report.Skipped)),
	)

	return pool, report, nil
}

func splitRecords(data []byte) ([]map[string]any, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return []map[string]any{}, nil
	}

	var list []any
	if strings.HasPrefix(trimmed, "{") {
		var wrapper struct {
			Candidates []any `json:"candidates"`
		}
		if err := json.Unmarshal([]byte(trimmed), &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPool, err)
		}
		list = wrapper.Candidates
	} else if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPool, err)
	}

	records := make([]map[string]any, 0, len(list))
	for _, item := range list {
		record, ok := item.(map[string]any)
		if !ok {
			// Keep the slot so that indexes in the report match the input.
			record = map[string]any{"__invalid": fmt.Sprintf("%T", item)}
		}
		records = append(records, record)
	}
	return records, nil
}

func (l *Loader) decodeRecord(raw map[string]any) (Candidate, error) {
	if kind, ok := raw["__invalid"]; ok {
		return Candidate{}, fmt.Errorf("record is %v, not an object", kind)
	}

	normalized, err := normalizeRaw(raw)
	if err != nil {
		return Candidate{}, err
	}

	result, err := l.schema.Validate(gojsonschema.NewGoLoader(normalized))
	if err != nil {
		return Candidate{}, fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return Candidate{}, fmt.Errorf("schema validation: %s", strings.Join(msgs, "; "))
	}

	var c Candidate
	cfg := &mapstructure.DecoderConfig{
		Result:           &c,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       skillHook,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return Candidate{}, err
	}
	if err := decoder.Decode(normalized); err != nil {
		return Candidate{}, fmt.Errorf("decode candidate: %w", err)
	}

	return c.Normalized(), nil
}

// normalizeRaw folds the accepted variants of a record into the canonical
// shape: experience as a bare number, numeric string or {"years": n}
// object, and skills as a flat list or a technical/soft object.
func normalizeRaw(raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		out[key] = value
	}

	if _, ok := out["experienceYears"]; !ok {
		if exp, ok := out["experience"]; ok {
			out["experienceYears"] = exp
		}
	}
	delete(out, "experience")

	if exp, ok := out["experienceYears"]; ok {
		years, err := coerceYears(exp)
		if err != nil {
			return nil, err
		}
		out["experienceYears"] = years
	}

	if list, ok := out["skills"].([]any); ok {
		out["skills"] = map[string]any{"technical": list}
	}

	return out, nil
}

func coerceYears(v any) (int, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, fmt.Errorf("experience is not a finite number")
		}
		return int(math.Floor(val)), nil
	case int:
		return val, nil
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fmt.Errorf("experience %q is not a number", val)
		}
		return coerceYears(f)
	case map[string]any:
		years, ok := val["years"]
		if !ok {
			return 0, fmt.Errorf("experience object has no years")
		}
		return coerceYears(years)
	default:
		return 0, fmt.Errorf("unsupported experience type %T", v)
	}
}

// skillHook accepts a bare string or a {"name": ...} object as a Skill.
func skillHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(Skill{}) {
		return data, nil
	}

	switch val := data.(type) {
	case string:
		return Skill{Label: val}, nil
	case map[string]any:
		if _, ok := val["label"]; !ok {
			if name, ok := val["name"]; ok {
				return map[string]any{"label": name}, nil
			}
		}
	}

	return data, nil
}

func rawID(raw map[string]any) string {
	if id, ok := raw["id"].(string); ok {
		return id
	}
	return ""
}
