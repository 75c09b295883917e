// Package planner computes split plans: it slices a shuffled sequence of
// units into named subsets according to ratio fractions or fixed counts.
package planner

import "fmt"

// Subset name constants
const (
	SubsetTrain = "train"
	SubsetVal   = "val"
	SubsetTest  = "test"
)

// Subset is one named segment of a split plan.
type Subset struct {
	// Name is one of "train", "val", "test"
	Name string

	// Units is the slice of the shuffled sequence assigned to this
	// subset, in shuffled order
	Units []Unit
}

// FileCount returns the total number of files across the subset's units.
func (s Subset) FileCount() int {
	n := 0
	for _, u := range s.Units {
		n += u.Len()
	}
	return n
}

// SplitPlan partitions one class's units into ordered, disjoint subsets
// whose union is the full unit sequence.
type SplitPlan struct {
	// Subsets is the ordered list of subsets: train, val, then test
	// when present
	Subsets []Subset
}

// Subset returns the subset with the given name, or nil.
func (p *SplitPlan) Subset(name string) *Subset {
	for i := range p.Subsets {
		if p.Subsets[i].Name == name {
			return &p.Subsets[i]
		}
	}
	return nil
}

// TotalUnits returns the number of units across all subsets.
func (p *SplitPlan) TotalUnits() int {
	n := 0
	for _, s := range p.Subsets {
		n += len(s.Units)
	}
	return n
}

// TotalFiles returns the number of files across all subsets.
func (p *SplitPlan) TotalFiles() int {
	n := 0
	for _, s := range p.Subsets {
		n += s.FileCount()
	}
	return n
}

// InsufficientSamplesError reports a class with fewer units than a fixed
// split requires.
type InsufficientSamplesError struct {
	// Class is the class label
	Class string

	// Available is the number of units the class has
	Available int

	// Required is the minimum the fixed counts demand
	Required int
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf(
		"class %q has too few samples: %d available, but the fixed counts require more than %d; consider splitting by ratio",
		e.Class, e.Available, e.Required,
	)
}

// BuildRatioPlan slices units at floor-rounded ratio boundaries. With a
// 3-element ratio the plan has train/val/test subsets; with 2 elements
// the val subset extends to the end. Remainder units from floor rounding
// land in the last populated subset.
//
// The ratio's shape and sum must have been validated beforehand; given a
// valid ratio this cannot fail.
func BuildRatioPlan(units []Unit, ratio []float64) *SplitPlan {
	n := len(units)
	trainEnd := int(ratio[0] * float64(n))
	valEnd := trainEnd + int(ratio[1]*float64(n))

	return buildPlan(units, trainEnd, valEnd, len(ratio) == 3)
}

// BuildFixedPlan reserves the fixed counts for val (and test, when a
// second count is given) from the end of the sequence; everything before
// them is train. Fails when the class does not have strictly more units
// than the fixed counts consume.
func BuildFixedPlan(units []Unit, fixed []int, class string) (*SplitPlan, error) {
	n := len(units)
	required := 0
	for _, c := range fixed {
		required += c
	}
	if n <= required {
		return nil, &InsufficientSamplesError{Class: class, Available: n, Required: required}
	}

	trainEnd := n - required
	valEnd := trainEnd + fixed[0]

	return buildPlan(units, trainEnd, valEnd, len(fixed) == 2), nil
}

func buildPlan(units []Unit, trainEnd, valEnd int, useTest bool) *SplitPlan {
	// a ratio sum just inside the validation tolerance can floor past
	// the end of the sequence for large n
	n := len(units)
	if trainEnd > n {
		trainEnd = n
	}
	if valEnd > n {
		valEnd = n
	}

	plan := &SplitPlan{
		Subsets: []Subset{
			{Name: SubsetTrain, Units: units[:trainEnd]},
		},
	}

	if useTest {
		plan.Subsets = append(plan.Subsets,
			Subset{Name: SubsetVal, Units: units[trainEnd:valEnd]},
			Subset{Name: SubsetTest, Units: units[valEnd:]},
		)
	} else {
		plan.Subsets = append(plan.Subsets,
			Subset{Name: SubsetVal, Units: units[trainEnd:]},
		)
	}
	return plan
}
