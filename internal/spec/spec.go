package spec

import (
	"errors"
	"fmt"

	"materialhub/internal/model"
)

// ErrNotFound is returned when no specification exists for a (platform, slot) pair.
var ErrNotFound = errors.New("spec not found")

// MaxBytesCeiling is the system-wide upload size limit. Individual specs may
// tighten it but never exceed it.
const MaxBytesCeiling int64 = 10 << 20

// PlatformSlotSpec is the immutable acceptance rule set for one material slot.
// A published spec is never mutated in place; changing a rule means publishing
// a new revision so already-accepted history keeps its meaning.
type PlatformSlotSpec struct {
	Key            model.SlotKey      `json:"key"`
	AllowedFormats []model.Format     `json:"allowed_formats"`
	Width          int                `json:"width"`
	Height         int                `json:"height"`
	Transparency   model.Transparency `json:"transparency"`
	MaxBytes       int64              `json:"max_bytes"`
	// Margin is the required fully-transparent border in pixels; 0 means no
	// margin rule. Enforced for raster formats only.
	Margin   int `json:"margin,omitempty"`
	Revision int `json:"revision"`
}

// Allows reports whether the given format is in the spec's allowed set.
func (s PlatformSlotSpec) Allows(f model.Format) bool {
	for _, a := range s.AllowedFormats {
		if a == f {
			return true
		}
	}
	return false
}

// Registry resolves specifications for validation. Lookups have no side
// effects; authoring happens administratively outside the validation path.
type Registry interface {
	// Lookup returns the spec for (platform, slot) or ErrNotFound.
	Lookup(platform model.Platform, slot string) (PlatformSlotSpec, error)

	// ListForPlatform returns the platform's specs in stable slot order.
	ListForPlatform(platform model.Platform) []PlatformSlotSpec
}

type builtinRegistry struct {
	specs map[model.SlotKey]PlatformSlotSpec
	order map[model.Platform][]string
}

// NewBuiltin returns the registry seeded with the production platform table.
func NewBuiltin() Registry {
	r := &builtinRegistry{
		specs: make(map[model.SlotKey]PlatformSlotSpec),
		order: make(map[model.Platform][]string),
	}
	for _, s := range builtinSpecs {
		if s.Width <= 0 || s.Height <= 0 || s.MaxBytes <= 0 {
			panic(fmt.Sprintf("invalid builtin spec %s", s.Key))
		}
		r.specs[s.Key] = s
		r.order[s.Key.Platform] = append(r.order[s.Key.Platform], s.Key.Slot)
	}
	return r
}

func (r *builtinRegistry) Lookup(platform model.Platform, slot string) (PlatformSlotSpec, error) {
	s, ok := r.specs[model.SlotKey{Platform: platform, Slot: slot}]
	if !ok {
		return PlatformSlotSpec{}, fmt.Errorf("%s/%s: %w", platform, slot, ErrNotFound)
	}
	return s, nil
}

func (r *builtinRegistry) ListForPlatform(platform model.Platform) []PlatformSlotSpec {
	slots := r.order[platform]
	out := make([]PlatformSlotSpec, 0, len(slots))
	for _, slot := range slots {
		out = append(out, r.specs[model.SlotKey{Platform: platform, Slot: slot}])
	}
	return out
}
