package pdt

import (
	"strconv"

	"github.com/sdifrance/gribtemplates/catalog"
)

// MissingLevel is the level value reported when a second surface is absent.
const MissingLevel = -999

// Summary is a one-record description of a product, the basis of inventory
// listings.
type Summary struct {
	Discipline, Category, Number uint8

	Name     string
	LongName string
	Units    string

	LevelType     string
	LevelTypeLong string
	LevelUnits    string
	LevelValue    float64
	LevelValue2   float64

	ForecastTime string // e.g. "6Hr"
	Additional   string
}

func newSummary(discipline, category, number uint8, c catalog.Catalog) Summary {
	e := c.Parameter(discipline, category, number)
	return Summary{
		Discipline: discipline,
		Category:   category,
		Number:     number,
		Name:       e.Name,
		LongName:   e.LongName,
		Units:      e.Units,
	}
}

func (s *Summary) satelliteLevel() {
	s.LevelType = "SPACE"
	s.LevelTypeLong = "Satellite space"
}

// surfaceLevel fills the level fields from the first and second fixed
// surfaces. A second surface of the same type makes the level a layer.
func (s *Summary) surfaceLevel(c catalog.Catalog, first, second Surface) {
	e1, ok := c.Surface(first.Type)
	if !ok {
		s.LevelType = "UNKNOWN"
		s.LevelTypeLong = "unknown primary surface type"
	} else {
		s.LevelType = e1.Name
		s.LevelTypeLong = e1.LongName
		s.LevelUnits = e1.Units
	}
	s.LevelValue = levelValue(first)

	e2, ok := c.Surface(second.Type)
	switch {
	case second.Type == MissingSurface || !ok:
		s.LevelValue2 = MissingLevel
	case second.Type != first.Type:
		s.LevelType += "-" + e2.Name
		s.LevelValue2 = MissingLevel
	default:
		switch second.Type {
		case 104, 105, 107:
			s.LevelType += "_LAYER"
			s.LevelTypeLong += " layer"
		}
		s.LevelValue2 = levelValue(second)
	}
}

// levelValue is the physical surface value, 0 when it is not given.
func levelValue(sf Surface) float64 {
	if sf.Value.Unspecified() {
		return 0
	}
	return sf.Value.Float()
}

func (s *Summary) chemical(c catalog.Catalog, code uint16) {
	e := c.Chemical(code)
	s.Name += "_" + e.Name
	s.LongName += " - " + e.LongName
}

func (s *Summary) ensemble(e EnsembleInfo) {
	n := strconv.Itoa(int(e.PerturbationNumber))
	s.Name += "_PERT" + n
	s.Additional = "Ensemble Perturbation #" + n
}

func (s *Summary) forecast(g Generating) {
	s.ForecastTime = g.TimeUnit.Label(int64(g.ForecastTime))
}
