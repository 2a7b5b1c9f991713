// Package catalog - Catalog validation
// Ensures catalog integrity and enforces invariants.
package catalog

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"buildcost/core/types"
	"buildcost/internal/errors"
	"buildcost/internal/logging"
)

// ValidationRule is a catalog validation rule
type ValidationRule func(*MaterialSpec) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateName,
		validateCost,
		validateUnitForKind,
		validateMasonryVolumes,
		validateCarbon,
	}
}

// Validate checks every catalog in the set for unique names and
// against validation rules
func (s *Set) Validate(rules []ValidationRule) []error {
	var errs []error

	for _, kind := range Kinds() {
		c, ok := s.catalogs[kind]
		if !ok {
			continue
		}
		for _, name := range c.duplicates {
			errs = append(errs, errors.Newf(errors.TypeCatalog, "%s:%s: name registered more than once", kind, name).
				WithContext("catalog", string(kind)))
		}
		for _, name := range c.order {
			entry := c.entries[name]
			for _, rule := range rules {
				if err := rule(entry); err != nil {
					errs = append(errs, errors.Wrapf(errors.TypeCatalog, err, "%s:%s", kind, name).
						WithContext("catalog", string(kind)))
				}
			}
		}
	}

	return errs
}

// validateName ensures every entry is addressable
func validateName(e *MaterialSpec) error {
	if e.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	return nil
}

// validateCost ensures costs are not negative
func validateCost(e *MaterialSpec) error {
	if e.CostPerUnit.IsNegative() {
		return fmt.Errorf("cost per unit must not be negative, got %s", e.CostPerUnit)
	}
	return nil
}

// validateUnitForKind ensures each catalog prices in its own unit
func validateUnitForKind(e *MaterialSpec) error {
	want := UnitFor(e.Kind)
	if e.Unit != want {
		return fmt.Errorf("%s entries are priced per %s, got %s", e.Kind, want, e.Unit)
	}
	return nil
}

// validateMasonryVolumes ensures brick volumes support the consumption formula
func validateMasonryVolumes(e *MaterialSpec) error {
	if e.Kind != KindBrick {
		if e.VolumePerUnitWithMortar != 0 || e.VolumePerUnitWithoutMortar != 0 {
			return fmt.Errorf("only brick entries carry unit volumes")
		}
		return nil
	}
	if !(e.VolumePerUnitWithoutMortar > 0) || math.IsInf(e.VolumePerUnitWithoutMortar, 0) {
		return fmt.Errorf("volume without mortar must be positive")
	}
	if e.VolumePerUnitWithMortar <= e.VolumePerUnitWithoutMortar {
		return fmt.Errorf("volume with mortar (%g) must exceed volume without mortar (%g)",
			e.VolumePerUnitWithMortar, e.VolumePerUnitWithoutMortar)
	}
	return nil
}

// validateCarbon ensures carbon factors are not negative
func validateCarbon(e *MaterialSpec) error {
	if e.CarbonPerUnit < 0 || math.IsNaN(e.CarbonPerUnit) {
		return fmt.Errorf("carbon per unit must not be negative")
	}
	return nil
}

// UnitFor returns the pricing unit used by a catalog kind
func UnitFor(kind Kind) types.Unit {
	switch kind {
	case KindBrick:
		return types.UnitPiece
	case KindInsulation:
		return types.UnitSqFtInch
	default:
		return types.UnitSquareFoot
	}
}

// MustValidate panics if validation fails
func (s *Set) MustValidate() {
	errs := s.Validate(DefaultValidationRules())
	if len(errs) > 0 {
		for _, err := range errs {
			logging.Error("catalog validation failed", zap.Error(err))
		}
		panic(fmt.Sprintf("Catalog has %d validation errors", len(errs)))
	}
}
