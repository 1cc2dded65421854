package instr

import (
	"strconv"

	"github.com/specialistvlad/imagineer/internal/operation"
)

// EnvItem is the typed value carried by an EnvUpdate.
type EnvItem interface {
	Modifier() operation.ID
	value() string
}

// PreserveAspectRatio makes later resizes fit within the requested box.
type PreserveAspectRatio struct {
	Enabled bool
}

// SetSamplingFilter selects the filter later resizes interpolate with.
type SetSamplingFilter struct {
	Filter SamplingFilter
}

func (PreserveAspectRatio) Modifier() operation.ID { return operation.PreserveAspectRatio }
func (SetSamplingFilter) Modifier() operation.ID   { return operation.SamplingFilter }

func (p PreserveAspectRatio) value() string { return strconv.FormatBool(p.Enabled) }
func (s SetSamplingFilter) value() string   { return s.Filter.String() }

// SamplingFilter names an interpolation filter.
type SamplingFilter int

const (
	CatmullRom SamplingFilter = iota + 1
	Gaussian
	Lanczos3
	Nearest
	Triangle
)

// DefaultSamplingFilter is used until a script selects another one.
const DefaultSamplingFilter = Lanczos3

var filterNames = map[SamplingFilter]string{
	CatmullRom: "catmullrom",
	Gaussian:   "gaussian",
	Lanczos3:   "lanczos3",
	Nearest:    "nearest",
	Triangle:   "triangle",
}

// ParseSamplingFilter resolves a filter by its script name.
func ParseSamplingFilter(name string) (SamplingFilter, bool) {
	for f, n := range filterNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}

// SamplingFilters lists every filter in declaration order.
func SamplingFilters() []SamplingFilter {
	return []SamplingFilter{CatmullRom, Gaussian, Lanczos3, Nearest, Triangle}
}

func (f SamplingFilter) String() string {
	if n, ok := filterNames[f]; ok {
		return n
	}
	return "SamplingFilter(" + strconv.Itoa(int(f)) + ")"
}
