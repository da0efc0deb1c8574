package pdt

import (
	"testing"

	"github.com/sdifrance/gribtemplates/catalog"
	"github.com/sdifrance/gribtemplates/scaled"
)

func TestSummaryName(t *testing.T) {
	sixHourly := sample(42, 0).(*ChemicalStatistics)
	sixHourly.Intervals = []IntervalSpec{{StatisticalProcess: 2, IncrementType: 2, RangeUnit: UnitOfTime6Hours, RangeLength: 2}}
	accumulated := sample(46, 0).(*AerosolStatistics)
	accumulated.Intervals = []IntervalSpec{
		{StatisticalProcess: 0, RangeUnit: UnitOfTimeHour, RangeLength: 3},
		{StatisticalProcess: 1, RangeUnit: UnitOfTimeDay, RangeLength: 1},
	}
	unknown := sample(32, 0).(*Satellite)
	unknown.ParameterCategory = 250
	unknown.ParameterNumber = 7

	tests := []struct {
		name string
		tmpl Template
		want string
	}{
		{"4.32", sample(32, 1), "TMP"},
		{"4.32 unknown parameter", unknown, "UNKNOWN-0_250_7"},
		{"4.33", sample(33, 1), "TMP_PERT3"},
		{"4.34 one range", sample(34, 1), "TMP3Hr_AVG_PERT3"},
		{"4.34 total of two ranges", sample(34, 2), "TMP6Hr_AVG_PERT3"},
		{"4.34 no ranges", sample(34, 0), "TMP_PERT3"},
		{"4.35", sample(35, 1), "TMP"},
		{"4.42", sample(42, 1), "MASSDEN_O33Hr_AVG"},
		{"4.42 last of two ranges", sample(42, 2), "MASSDEN_O33Hr_AVG"},
		{"4.42 six hour units", sixHourly, "MASSDEN_O312Hr_MAX"},
		{"4.43 total of two ranges", sample(43, 2), "MASSDEN_H2O6Hr_AVG_PERT3"},
		{"4.45", sample(45, 0), "MASSDEN_TotalAerosol_PERT3"},
		{"4.46 last range", accumulated, "MASSDEN_SeaSalt1Day"},
		{"4.49", sample(49, 0), "AOTK_TotalAerosol_PERT3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tmpl.Summary(0, catalog.Default()).Name; got != tt.want {
				t.Errorf("Summary().Name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarySatellite(t *testing.T) {
	got := sample(34, 1).Summary(0, catalog.Default())
	want := Summary{
		Discipline:    0,
		Category:      0,
		Number:        0,
		Name:          "TMP3Hr_AVG_PERT3",
		LongName:      "Temperature",
		Units:         "K",
		LevelType:     "SPACE",
		LevelTypeLong: "Satellite space",
		ForecastTime:  "6Hr",
		Additional:    "Ensemble Perturbation #3",
	}
	if got != want {
		t.Errorf("Summary() = %+v, want %+v", got, want)
	}

	obs := sample(35, 1).Summary(0, catalog.Default())
	if obs.ForecastTime != "" || obs.LevelType != "SPACE" {
		t.Errorf("4.35 Summary() = %+v, want no forecast time at SPACE", obs)
	}
}

func TestSummaryChemical(t *testing.T) {
	got := sample(42, 1).Summary(0, catalog.Default())
	want := Summary{
		Discipline:    0,
		Category:      20,
		Number:        0,
		Name:          "MASSDEN_O33Hr_AVG",
		LongName:      "Mass Density (Concentration) - Ozone O3",
		Units:         "kg m^-3",
		LevelType:     "HTGL",
		LevelTypeLong: "Specified height level above ground",
		LevelUnits:    "m",
		LevelValue:    2,
		LevelValue2:   MissingLevel,
		ForecastTime:  "6Hr",
	}
	if got != want {
		t.Errorf("Summary() = %+v, want %+v", got, want)
	}
}

func TestSummaryLevel(t *testing.T) {
	hybrid := func(v int32) Surface { return Surface{Type: 105, Value: scaled.Value{Scaled: v}} }
	tests := []struct {
		name          string
		first, second Surface
		wantType      string
		wantLong      string
		wantValue     float64
		wantValue2    float64
	}{
		{"single level", height2m, noSurface, "HTGL", "Specified height level above ground", 2, MissingLevel},
		{"hybrid layer", hybrid(1), hybrid(10), "HYBL_LAYER", "Hybrid level layer", 1, 10},
		{"same type not a layer", height2m, Surface{Type: 103, Value: scaled.Value{Scaled: 10}}, "HTGL", "Specified height level above ground", 2, 10},
		{"different types", height2m, Surface{Type: 1, Value: scaled.Missing}, "HTGL-SFC", "Specified height level above ground", 2, MissingLevel},
		{"unknown first surface", Surface{Type: 250}, noSurface, "UNKNOWN", "unknown primary surface type", 0, MissingLevel},
		{"unknown second surface", height2m, Surface{Type: 250}, "HTGL", "Specified height level above ground", 2, MissingLevel},
		{"missing value", Surface{Type: 1, Value: scaled.Missing}, noSurface, "SFC", "Ground or water surface", 0, MissingLevel},
		{"scaled value", Surface{Type: 100, Value: scaled.Value{Factor: 0x82, Scaled: 850}}, noSurface, "ISBL", "Isobaric surface", 85000, MissingLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := sample(45, 0).(*AerosolEnsemble)
			tmpl.FirstSurface, tmpl.SecondSurface = tt.first, tt.second
			got := tmpl.Summary(0, catalog.Default())
			if got.LevelType != tt.wantType || got.LevelTypeLong != tt.wantLong {
				t.Errorf("level type = %q, %q; want %q, %q", got.LevelType, got.LevelTypeLong, tt.wantType, tt.wantLong)
			}
			if got.LevelValue != tt.wantValue || got.LevelValue2 != tt.wantValue2 {
				t.Errorf("level values = %g, %g; want %g, %g", got.LevelValue, got.LevelValue2, tt.wantValue, tt.wantValue2)
			}
		})
	}
}
