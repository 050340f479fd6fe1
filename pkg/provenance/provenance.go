// Package provenance provides field-level tracking of which source filled each
// record field during reconciliation.
package provenance

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/bankrot/pkg/constants"
	"github.com/agentstation/bankrot/pkg/errors"
	"github.com/agentstation/bankrot/pkg/records"
)

// Provenance records the origin of one field value.
type Provenance struct {
	Source    string    `yaml:"source"`          // Winning source (e.g., "lastLegalCase.number", "deep:inn")
	Stage     string    `yaml:"stage"`           // Merge stage that wrote the value (list, detail, auxiliary, defaults)
	Value     string    `yaml:"value"`           // The value written
	Timestamp time.Time `yaml:"timestamp"`       // When the value was written
	Reason    string    `yaml:"reason,omitempty"` // Optional note, e.g. a placeholder default
}

// Map tracks provenance for multiple records.
type Map map[string][]Provenance // key is "kind:guid:field"

// Tracker manages provenance tracking during reconciliation.
type Tracker interface {
	// Track records provenance for a field
	Track(kind records.Kind, id string, field string, p Provenance)

	// FindByField retrieves provenance for a specific field
	FindByField(kind records.Kind, id string, field string) []Provenance

	// FindByRecord retrieves all provenance for a record
	FindByRecord(kind records.Kind, id string) map[string][]Provenance

	// Map returns the complete provenance map
	Map() Map

	// Clear removes all provenance data
	Clear()
}

// tracker is the default implementation.
type tracker struct {
	mu         sync.Mutex
	provenance Map
	enabled    bool
}

// NewTracker creates a new provenance tracker. A disabled tracker ignores
// every call.
func NewTracker(enabled bool) Tracker {
	return &tracker{
		provenance: make(Map),
		enabled:    enabled,
	}
}

// Track records provenance for a field.
func (p *tracker) Track(kind records.Kind, id string, field string, history Provenance) {
	if !p.enabled {
		return
	}

	if history.Timestamp.IsZero() {
		history.Timestamp = time.Now()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	key := makeKey(kind, id, field)
	p.provenance[key] = append(p.provenance[key], history)
}

// FindByField retrieves provenance for a specific field.
func (p *tracker) FindByField(kind records.Kind, id string, field string) []Provenance {
	if !p.enabled {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Provenance(nil), p.provenance[makeKey(kind, id, field)]...)
}

// FindByRecord retrieves all provenance for one record.
func (p *tracker) FindByRecord(kind records.Kind, id string) map[string][]Provenance {
	if !p.enabled {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	result := make(map[string][]Provenance)
	prefix := fmt.Sprintf("%s:%s:", kind, id)
	for key, info := range p.provenance {
		if field, found := strings.CutPrefix(key, prefix); found {
			result[field] = append([]Provenance(nil), info...)
		}
	}
	return result
}

// Map returns a copy of the complete provenance map.
func (p *tracker) Map() Map {
	if !p.enabled {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	result := make(Map, len(p.provenance))
	for k, v := range p.provenance {
		result[k] = append([]Provenance{}, v...)
	}
	return result
}

// Clear removes all provenance data.
func (p *tracker) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.provenance = make(Map)
}

func makeKey(kind records.Kind, id string, field string) string {
	return fmt.Sprintf("%s:%s:%s", kind, id, field)
}

func splitKey(key string) (kind records.Kind, id string, field string, ok bool) {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	return records.Kind(parts[0]), parts[1], parts[2], true
}

// CoverageRow counts how many records had a field filled by one source.
type CoverageRow struct {
	Kind   records.Kind
	Field  string
	Source string
	Count  int
}

// Coverage aggregates a provenance map into per-field source counts, sorted
// by kind, field, then descending count.
func Coverage(provenance Map) []CoverageRow {
	type bucket struct {
		kind   records.Kind
		field  string
		source string
	}
	counts := make(map[bucket]int)
	for key, infos := range provenance {
		kind, _, field, ok := splitKey(key)
		if !ok || len(infos) == 0 {
			continue
		}
		counts[bucket{kind, field, infos[0].Source}]++
	}

	rows := make([]CoverageRow, 0, len(counts))
	for b, n := range counts {
		rows = append(rows, CoverageRow{Kind: b.kind, Field: b.field, Source: b.source, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Source < b.Source
	})
	return rows
}

// ProvenanceFile represents a provenance file stored on disk.
//
//nolint:revive // Name is intentionally descriptive for external clarity
type ProvenanceFile struct {
	RunID      string `yaml:"run_id,omitempty"`
	Provenance Map    `yaml:"provenance"`
}

// Save writes provenance data to a YAML file.
func Save(path string, pf *ProvenanceFile) error {
	data, err := yaml.Marshal(pf)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Load reads provenance data from a YAML file.
// Returns nil, nil if the file doesn't exist (not an error).
func Load(path string) (*ProvenanceFile, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var pf ProvenanceFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	return &pf, nil
}
