// Package catalog holds the GRIB2 lookup tables the template codecs consult
// for names, units and code table descriptions.
//
// The tables are read from YAML. Default returns the table compiled into the
// package; Load and Overlay build tables from other sources, for example a
// centre's local parameter definitions. A Table is never modified after it is
// built, so one value can be shared by any number of goroutines.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTables []byte

// Entry describes a parameter, surface or chemical.
type Entry struct {
	Name     string
	LongName string
	Units    string
}

// Catalog is the lookup surface the template codecs depend on. Lookups never
// fail: codes that are not in the tables yield placeholder text.
type Catalog interface {
	// Parameter returns the entry for a discipline, category and number.
	Parameter(discipline, category, number uint8) Entry
	// Surface returns the fixed surface entry for code table 4.5, and false
	// when the code is unknown.
	Surface(code uint8) (Entry, bool)
	// Chemical returns the entry for code table 4.230.
	Chemical(code uint16) Entry
	// StatisticalProcess returns the summary name suffix and description for
	// code table 4.10.
	StatisticalProcess(code uint8) (suffix, description string)
	GeneratingProcessType(code uint8) string
	EnsembleType(code uint8) string
	TimeIncrementType(code uint8) string
	QualityValue(code uint8) string
	IntervalType(code uint8) string
}

// ParameterKey identifies a parameter.
type ParameterKey struct {
	Discipline, Category, Number uint8
}

func (k ParameterKey) packed() uint32 {
	return uint32(k.Discipline)<<16 | uint32(k.Category)<<8 | uint32(k.Number)
}

func unpackKey(v uint32) ParameterKey {
	return ParameterKey{uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

type statistic struct {
	suffix, description string
}

// Table is a Catalog built from YAML.
type Table struct {
	parameters map[uint32]Entry
	surfaces   map[uint8]Entry
	chemicals  map[uint16]Entry
	statistics map[uint8]statistic
	generating map[uint8]string
	ensembles  map[uint8]string
	increments map[uint8]string
	qualities  map[uint8]string
	intervals  map[uint8]string
}

var _ Catalog = (*Table)(nil)

type yamlEntry struct {
	Code       uint16 `yaml:"code"`
	Discipline uint8  `yaml:"discipline"`
	Category   uint8  `yaml:"category"`
	Number     uint8  `yaml:"number"`
	Name       string `yaml:"name"`
	LongName   string `yaml:"long_name"`
	Units      string `yaml:"units"`
}

type yamlStatistic struct {
	Code        uint8  `yaml:"code"`
	Suffix      string `yaml:"suffix"`
	Description string `yaml:"description"`
}

type yamlFile struct {
	Surfaces               []yamlEntry      `yaml:"surfaces"`
	Parameters             []yamlEntry      `yaml:"parameters"`
	Chemicals              []yamlEntry      `yaml:"chemicals"`
	StatisticalProcesses   []yamlStatistic  `yaml:"statistical_processes"`
	GeneratingProcessTypes map[uint8]string `yaml:"generating_process_types"`
	EnsembleTypes          map[uint8]string `yaml:"ensemble_types"`
	TimeIncrementTypes     map[uint8]string `yaml:"time_increment_types"`
	QualityValues          map[uint8]string `yaml:"quality_values"`
	IntervalTypes          map[uint8]string `yaml:"interval_types"`
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the compiled-in tables. The YAML is parsed on first use.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load(bytes.NewReader(defaultTables))
		if err != nil {
			panic(errors.Wrap(err, "catalog: compiled-in tables are invalid"))
		}
		defaultTable = t
	})
	return defaultTable
}

// Load reads a complete table from r.
func Load(r io.Reader) (*Table, error) {
	return Overlay(nil, r)
}

// Overlay returns a new table holding the entries of base with the entries
// read from r added on top. Entries in r replace entries of base with the same
// code. base may be nil. base itself is not modified.
func Overlay(base *Table, r io.Reader) (*Table, error) {
	var f yamlFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding catalog tables: %w", err)
	}
	t := base.clone()
	if err := t.add(&f); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) clone() *Table {
	out := &Table{
		parameters: map[uint32]Entry{},
		surfaces:   map[uint8]Entry{},
		chemicals:  map[uint16]Entry{},
		statistics: map[uint8]statistic{},
		generating: map[uint8]string{},
		ensembles:  map[uint8]string{},
		increments: map[uint8]string{},
		qualities:  map[uint8]string{},
		intervals:  map[uint8]string{},
	}
	if t == nil {
		return out
	}
	maps.Copy(out.parameters, t.parameters)
	maps.Copy(out.surfaces, t.surfaces)
	maps.Copy(out.chemicals, t.chemicals)
	maps.Copy(out.statistics, t.statistics)
	maps.Copy(out.generating, t.generating)
	maps.Copy(out.ensembles, t.ensembles)
	maps.Copy(out.increments, t.increments)
	maps.Copy(out.qualities, t.qualities)
	maps.Copy(out.intervals, t.intervals)
	return out
}

func (t *Table) add(f *yamlFile) error {
	for _, e := range f.Surfaces {
		if e.Code > 255 {
			return fmt.Errorf("surface code %d is out of range", e.Code)
		}
		t.surfaces[uint8(e.Code)] = Entry{e.Name, e.LongName, e.Units}
	}
	for _, e := range f.Parameters {
		if e.Name == "" {
			return fmt.Errorf("parameter %d.%d.%d has no name", e.Discipline, e.Category, e.Number)
		}
		k := ParameterKey{e.Discipline, e.Category, e.Number}
		t.parameters[k.packed()] = Entry{e.Name, e.LongName, e.Units}
	}
	for _, e := range f.Chemicals {
		t.chemicals[e.Code] = Entry{e.Name, e.LongName, e.Units}
	}
	for _, s := range f.StatisticalProcesses {
		t.statistics[s.Code] = statistic{s.Suffix, s.Description}
	}
	maps.Copy(t.generating, f.GeneratingProcessTypes)
	maps.Copy(t.ensembles, f.EnsembleTypes)
	maps.Copy(t.increments, f.TimeIncrementTypes)
	maps.Copy(t.qualities, f.QualityValues)
	maps.Copy(t.intervals, f.IntervalTypes)
	return nil
}

// Parameter implements Catalog.
func (t *Table) Parameter(discipline, category, number uint8) Entry {
	if e, ok := t.parameters[ParameterKey{discipline, category, number}.packed()]; ok {
		return e
	}
	return Entry{
		Name:     fmt.Sprintf("UNKNOWN-%d_%d_%d", discipline, category, number),
		LongName: "Unknown Parameter",
		Units:    "-",
	}
}

// Surface implements Catalog.
func (t *Table) Surface(code uint8) (Entry, bool) {
	e, ok := t.surfaces[code]
	return e, ok
}

// Chemical implements Catalog.
func (t *Table) Chemical(code uint16) Entry {
	if e, ok := t.chemicals[code]; ok {
		return e
	}
	return Entry{Name: "UNK", LongName: "Unknown Chemical Type"}
}

// StatisticalProcess implements Catalog.
func (t *Table) StatisticalProcess(code uint8) (suffix, description string) {
	if s, ok := t.statistics[code]; ok {
		return s.suffix, s.description
	}
	return "", "Unknown Statistical Process"
}

// GeneratingProcessType implements Catalog.
func (t *Table) GeneratingProcessType(code uint8) string {
	return lookup(t.generating, code, "Unknown")
}

// EnsembleType implements Catalog.
func (t *Table) EnsembleType(code uint8) string {
	return lookup(t.ensembles, code, "Unknown Ensemble Type")
}

// TimeIncrementType implements Catalog.
func (t *Table) TimeIncrementType(code uint8) string {
	return lookup(t.increments, code, "Unknown")
}

// QualityValue implements Catalog.
func (t *Table) QualityValue(code uint8) string {
	return lookup(t.qualities, code, "Unknown")
}

// IntervalType implements Catalog.
func (t *Table) IntervalType(code uint8) string {
	return lookup(t.intervals, code, "Unknown Type of Interval")
}

func lookup(m map[uint8]string, code uint8, fallback string) string {
	if s, ok := m[code]; ok {
		return s
	}
	return fallback
}

// ParameterKeys returns the keys of every known parameter in ascending order.
func (t *Table) ParameterKeys() []ParameterKey {
	packed := maps.Keys(t.parameters)
	slices.Sort(packed)
	out := make([]ParameterKey, len(packed))
	for i, p := range packed {
		out[i] = unpackKey(p)
	}
	return out
}

// SurfaceCodes returns the known fixed surface codes in ascending order.
func (t *Table) SurfaceCodes() []uint8 {
	codes := maps.Keys(t.surfaces)
	slices.Sort(codes)
	return codes
}

// ChemicalCodes returns the known chemical codes in ascending order.
func (t *Table) ChemicalCodes() []uint16 {
	codes := maps.Keys(t.chemicals)
	slices.Sort(codes)
	return codes
}
