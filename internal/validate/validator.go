package validate

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"materialhub/internal/inspect"
	"materialhub/internal/model"
	"materialhub/internal/spec"
)

// Candidate is one upload under validation. It exists only for the duration
// of the call; rejected bytes are never retained.
type Candidate struct {
	Data       []byte
	Filename   string
	Platform   model.Platform
	Slot       string
	UploaderID string
}

// Result pairs the verdict with what was learned about the file. Spec and
// Metadata are populated only as far as validation got.
type Result struct {
	Verdict  Verdict
	Spec     spec.PlatformSlotSpec
	Metadata *inspect.Metadata
}

// Validator checks candidates against the spec registry. It is pure and
// stateless: identical bytes against an unchanged spec always produce the
// identical verdict, and unrelated calls may run fully in parallel.
type Validator struct {
	registry   spec.Registry
	inspectors *inspect.Registry
	tracer     trace.Tracer
}

func New(registry spec.Registry) *Validator {
	return &Validator{
		registry:   registry,
		inspectors: inspect.NewRegistry(),
		tracer:     otel.Tracer("materialhub/validate"),
	}
}

// Validate runs the full check pipeline. Cheap checks run first; a size,
// format, corruption or unsafe-content failure short-circuits with a single
// violation because later checks would be meaningless or unsafe. Dimension,
// transparency and margin failures accumulate so one submission yields one
// complete correction list.
func (v *Validator) Validate(ctx context.Context, c Candidate) Result {
	_, span := v.tracer.Start(ctx, "validate.Validate", trace.WithAttributes(
		attribute.String("material.platform", string(c.Platform)),
		attribute.String("material.slot", c.Slot),
		attribute.Int("material.bytes", len(c.Data)),
	))
	defer span.End()

	res := v.validate(c)
	span.SetAttributes(attribute.Bool("material.accepted", res.Verdict.Accepted))
	return res
}

func (v *Validator) validate(c Candidate) Result {
	s, err := v.registry.Lookup(c.Platform, c.Slot)
	if err != nil {
		if errors.Is(err, spec.ErrNotFound) {
			return rejected(Violation{
				Code:    CodeUnknownSlot,
				Message: fmt.Sprintf("no specification for %s/%s", c.Platform, c.Slot),
				Details: map[string]any{"platform": string(c.Platform), "slot": c.Slot},
			})
		}
		return rejected(Violation{Code: CodeUnknownSlot, Message: err.Error()})
	}
	res := Result{Spec: s}

	if int64(len(c.Data)) > s.MaxBytes {
		res.Verdict = reject(Violation{
			Code:    CodeSizeExceeded,
			Message: fmt.Sprintf("file is %d bytes, limit is %d", len(c.Data), s.MaxBytes),
			Details: map[string]any{"actual_bytes": len(c.Data), "max_bytes": s.MaxBytes},
		})
		return res
	}

	format, ok := inspect.Sniff(c.Data)
	if !ok || !s.Allows(format) {
		sniffed := "unrecognized"
		if ok {
			sniffed = string(format)
		}
		res.Verdict = reject(Violation{
			Code:    CodeFormatMismatch,
			Message: fmt.Sprintf("content is %s, slot accepts %v", sniffed, s.AllowedFormats),
			Details: map[string]any{"sniffed": sniffed, "allowed": s.AllowedFormats, "declared_filename": c.Filename},
		})
		return res
	}

	ins, _ := v.inspectors.ForFormat(format)
	meta, err := ins.Parse(c.Data)
	if err != nil {
		res.Verdict = reject(fatalViolation(err))
		return res
	}
	res.Metadata = meta

	var violations []Violation
	if meta.Width != s.Width || meta.Height != s.Height {
		violations = append(violations, Violation{
			Code:    CodeDimensionMismatch,
			Message: fmt.Sprintf("got %dx%d, spec requires exactly %dx%d", meta.Width, meta.Height, s.Width, s.Height),
			Details: map[string]any{
				"actual_width": meta.Width, "actual_height": meta.Height,
				"expected_width": s.Width, "expected_height": s.Height,
			},
		})
	}
	if viol := checkTransparency(s, meta); viol != nil {
		violations = append(violations, *viol)
	}
	if viol := checkMargin(s, meta); viol != nil {
		violations = append(violations, *viol)
	}

	res.Verdict = Verdict{Accepted: len(violations) == 0, Violations: violations}
	return res
}

func checkTransparency(s spec.PlatformSlotSpec, meta *inspect.Metadata) *Violation {
	switch s.Transparency {
	case model.TransparencyRequired:
		if !meta.HasAlpha {
			return &Violation{
				Code:    CodeTransparencyMismatch,
				Message: "transparency is required but the file has no transparent pixels",
				Details: map[string]any{"expected": "required", "got": "absent"},
			}
		}
	case model.TransparencyForbidden:
		if meta.HasAlpha {
			return &Violation{
				Code:    CodeTransparencyMismatch,
				Message: "transparency is forbidden but the file has transparent pixels",
				Details: map[string]any{"expected": "forbidden", "got": "present"},
			}
		}
	}
	return nil
}

// checkMargin verifies the required empty border. Raster only: pixel-border
// inspection of vector content is undefined without rendering, which the
// engine never does.
func checkMargin(s spec.PlatformSlotSpec, meta *inspect.Metadata) *Violation {
	if s.Margin <= 0 || !meta.Format.Raster() {
		return nil
	}
	if !meta.BorderClear(s.Margin) {
		return &Violation{
			Code:    CodeMarginViolation,
			Message: fmt.Sprintf("outer %dpx border must be fully transparent", s.Margin),
			Details: map[string]any{"margin_px": s.Margin},
		}
	}
	return nil
}

func fatalViolation(err error) Violation {
	var unsafe *inspect.UnsafeContentError
	if errors.As(err, &unsafe) {
		return Violation{
			Code:    CodeUnsafeContent,
			Message: err.Error(),
			Details: map[string]any{"reason": unsafe.Reason},
		}
	}
	var corrupt *inspect.CorruptError
	if errors.As(err, &corrupt) {
		return Violation{
			Code:    CodeCorrupt,
			Message: err.Error(),
			Details: map[string]any{"format": string(corrupt.Format), "reason": corrupt.Reason},
		}
	}
	return Violation{Code: CodeCorrupt, Message: err.Error()}
}

func reject(v Violation) Verdict {
	return Verdict{Accepted: false, Violations: []Violation{v}}
}

func rejected(v Violation) Result {
	return Result{Verdict: reject(v)}
}
