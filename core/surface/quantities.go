package surface

import (
	stderrors "errors"

	"buildcost/core/catalog"
	"buildcost/core/materials"
	"buildcost/core/types"
	"buildcost/internal/errors"
)

// Quantities is everything derived from one surface
type Quantities struct {
	Surface Meta   `json:"surface"`
	Variant string `json:"variant"`

	Area         types.Measure `json:"area"`
	OpeningsArea types.Measure `json:"openings_area"`
	NetArea      types.Measure `json:"net_area"`
	Volume       types.Measure `json:"volume"`
	TileArea     types.Measure `json:"tile_area"`
	PlasterArea  types.Measure `json:"plaster_area"`

	// Masonry, Plaster and Concrete are kept apart so the caller can
	// itemise them; Consumption is their sum.
	Masonry     materials.Consumption `json:"masonry"`
	Plaster     materials.Consumption `json:"plaster"`
	Concrete    materials.Consumption `json:"concrete"`
	Consumption materials.Consumption `json:"consumption"`

	// Items are the catalog-priced materials of the surface
	Items []MaterialQuantity `json:"items,omitempty"`

	Violations  []Violation `json:"violations,omitempty"`
	Assumptions []string    `json:"assumptions,omitempty"`
}

// Blocked reports whether a validation violation stopped the evaluation
func (q *Quantities) Blocked() bool {
	return len(q.Violations) > 0
}

// MaterialQuantity is a quantity of one catalog material
type MaterialQuantity struct {
	Category types.Category       `json:"category"`
	Kind     catalog.Kind         `json:"catalog"`
	Material string               `json:"material"`
	Spec     catalog.MaterialSpec `json:"-"`
	Found    bool                 `json:"found"`
	Quantity float64              `json:"quantity"`
	Unit     types.Unit           `json:"unit"`
	Override types.Measure        `json:"override"`
	Formula  string               `json:"formula"`
}

// Violation is a user-correctable condition that blocks a result
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AsViolation extracts a violation from a validation error
func AsViolation(err error) (Violation, bool) {
	var e *errors.Error
	if err == nil || !stderrors.As(err, &e) || e.Type != errors.TypeValidation {
		return Violation{}, false
	}
	return Violation{Code: e.Code, Message: e.Message}, true
}

func (q *Quantities) violate(err error) {
	if v, ok := AsViolation(err); ok {
		q.Violations = append(q.Violations, v)
	}
}

func (q *Quantities) assume(note string) {
	if note != "" {
		q.Assumptions = append(q.Assumptions, note)
	}
}

func (q *Quantities) total() {
	q.Consumption = materials.Sum(q.Masonry, q.Plaster, q.Concrete)
}

func newQuantities(m Meta, variant string) Quantities {
	return Quantities{
		Surface:      m,
		Variant:      variant,
		Area:         types.None,
		OpeningsArea: types.None,
		NetArea:      types.None,
		Volume:       types.None,
		TileArea:     types.None,
		PlasterArea:  types.None,
	}
}
