package engine

import (
	"fmt"

	"github.com/specialistvlad/imagineer/internal/instr"
	"github.com/specialistvlad/imagineer/internal/operation"
	"github.com/specialistvlad/imagineer/internal/transform"
)

// Environment is the mutable modifier state of one run.
type Environment struct {
	PreserveAspectRatio bool
	SamplingFilter      instr.SamplingFilter
}

// DefaultEnvironment is the state every run starts from.
func DefaultEnvironment() Environment {
	return Environment{SamplingFilter: instr.DefaultSamplingFilter}
}

// Snapshot captures the settings Resize reads.
func (e Environment) Snapshot() transform.ResizeOptions {
	return transform.ResizeOptions{
		PreserveAspectRatio: e.PreserveAspectRatio,
		Filter:              e.SamplingFilter,
	}
}

func (e *Environment) apply(item instr.EnvItem) error {
	switch it := item.(type) {
	case instr.PreserveAspectRatio:
		e.PreserveAspectRatio = it.Enabled
	case instr.SetSamplingFilter:
		e.SamplingFilter = it.Filter
	default:
		return fmt.Errorf("unknown environment item %T", item)
	}
	return nil
}

func (e *Environment) reset(id operation.ID) error {
	def := DefaultEnvironment()
	switch id {
	case operation.PreserveAspectRatio:
		e.PreserveAspectRatio = def.PreserveAspectRatio
	case operation.SamplingFilter:
		e.SamplingFilter = def.SamplingFilter
	default:
		return fmt.Errorf("'%s' is not a modifier", id)
	}
	return nil
}
