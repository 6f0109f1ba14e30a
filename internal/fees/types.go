// Package fees models the per-month fee and budget override configuration and
// the bulk apply engine that propagates a base configuration across a range of
// months.
package fees

// RateBasis is how a configured amount scales into a monthly dollar figure.
type RateBasis string

const (
	BasisPMPM    RateBasis = "PMPM"
	BasisPEPM    RateBasis = "PEPM"
	BasisMonthly RateBasis = "Monthly"
	BasisAnnual  RateBasis = "Annual"
)

// Valid reports whether b is one of the known bases.
func (b RateBasis) Valid() bool {
	switch b {
	case BasisPMPM, BasisPEPM, BasisMonthly, BasisAnnual:
		return true
	}
	return false
}

// NeedsEnrollment reports whether the basis scales by headcount.
func (b RateBasis) NeedsEnrollment() bool {
	return b == BasisPMPM || b == BasisPEPM
}

// ConflictPolicy governs how a source value merges into an existing month.
type ConflictPolicy string

const (
	PolicyOverwrite      ConflictPolicy = "OVERWRITE"
	PolicyFillBlanksOnly ConflictPolicy = "FILL_BLANKS_ONLY"
	PolicyAdditive       ConflictPolicy = "ADDITIVE"
)

func (p ConflictPolicy) Valid() bool {
	switch p {
	case PolicyOverwrite, PolicyFillBlanksOnly, PolicyAdditive:
		return true
	}
	return false
}

// MissingMonthStrategy decides what happens to a target month that has no
// enrollment data. The empty value behaves as CREATE.
type MissingMonthStrategy string

const (
	MissingCreate MissingMonthStrategy = "CREATE"
	MissingSkip   MissingMonthStrategy = "SKIP"
	MissingBlock  MissingMonthStrategy = "BLOCK"
)

func (s MissingMonthStrategy) Valid() bool {
	switch s {
	case "", MissingCreate, MissingSkip, MissingBlock:
		return true
	}
	return false
}

// Component is one independently selectable part of a month override.
type Component string

const (
	ComponentFees          Component = "fees"
	ComponentBudget        Component = "budget"
	ComponentStopLossReimb Component = "stopLossReimb"
	ComponentRebates       Component = "rebates"
)

// ParseComponent maps a component name to its constant.
func ParseComponent(s string) (Component, bool) {
	switch c := Component(s); c {
	case ComponentFees, ComponentBudget, ComponentStopLossReimb, ComponentRebates:
		return c, true
	}
	return "", false
}

// FeeItem is one fixed cost line such as an admin or stop-loss premium fee.
type FeeItem struct {
	ID     string    `json:"id" yaml:"id"`
	Label  string    `json:"label" yaml:"label"`
	Amount float64   `json:"amount" yaml:"amount"`
	Basis  RateBasis `json:"basis" yaml:"basis"`
}

// FeeList is an ordered list of fee items.
type FeeList []FeeItem

// ByID returns the first fee with the given id.
func (l FeeList) ByID(id string) (FeeItem, bool) {
	for _, f := range l {
		if f.ID == id {
			return f, true
		}
	}
	return FeeItem{}, false
}

// ByLabel returns the first fee with the given label.
func (l FeeList) ByLabel(label string) (FeeItem, bool) {
	for _, f := range l {
		if f.Label == label {
			return f, true
		}
	}
	return FeeItem{}, false
}

// Clone returns an independent copy. A nil list stays nil.
func (l FeeList) Clone() FeeList {
	if l == nil {
		return nil
	}
	return append(FeeList{}, l...)
}

// BudgetOverride replaces the uploaded budget figure for a month.
type BudgetOverride struct {
	Amount float64   `json:"amount" yaml:"amount"`
	Basis  RateBasis `json:"basis" yaml:"basis"`
}

func (b *BudgetOverride) Clone() *BudgetOverride {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// MonthOverride is the override state scoped to one month. A nil Fees list
// means fees are not overridden for the month.
type MonthOverride struct {
	Fees           FeeList         `json:"fees" yaml:"fees"`
	BudgetOverride *BudgetOverride `json:"budgetOverride,omitempty" yaml:"budgetOverride,omitempty"`
	StopLossReimb  *float64        `json:"stopLossReimb,omitempty" yaml:"stopLossReimb,omitempty"`
	Rebates        *float64        `json:"rebates,omitempty" yaml:"rebates,omitempty"`
}

func (m MonthOverride) Clone() MonthOverride {
	return MonthOverride{
		Fees:           m.Fees.Clone(),
		BudgetOverride: m.BudgetOverride.Clone(),
		StopLossReimb:  cloneFloat(m.StopLossReimb),
		Rebates:        cloneFloat(m.Rebates),
	}
}

// Equal compares by value. Nil and empty fee lists are equal.
func (m MonthOverride) Equal(o MonthOverride) bool {
	if len(m.Fees) != len(o.Fees) {
		return false
	}
	for i := range m.Fees {
		if m.Fees[i] != o.Fees[i] {
			return false
		}
	}
	switch {
	case (m.BudgetOverride == nil) != (o.BudgetOverride == nil):
		return false
	case m.BudgetOverride != nil && *m.BudgetOverride != *o.BudgetOverride:
		return false
	}
	return floatEqual(m.StopLossReimb, o.StopLossReimb) && floatEqual(m.Rebates, o.Rebates)
}

// FeesConfig is the user-editable fee model: base values plus lazily created
// per-month overrides keyed by YYYY-MM.
type FeesConfig struct {
	Fees           FeeList                  `json:"fees" yaml:"fees"`
	BudgetOverride *BudgetOverride          `json:"budgetOverride,omitempty" yaml:"budgetOverride,omitempty"`
	StopLossReimb  *float64                 `json:"stopLossReimb,omitempty" yaml:"stopLossReimb,omitempty"`
	Rebates        *float64                 `json:"rebates,omitempty" yaml:"rebates,omitempty"`
	PerMonth       map[string]MonthOverride `json:"perMonth,omitempty" yaml:"perMonth,omitempty"`
}

// Clone returns a deep copy.
func (c FeesConfig) Clone() FeesConfig {
	out := FeesConfig{
		Fees:           c.Fees.Clone(),
		BudgetOverride: c.BudgetOverride.Clone(),
		StopLossReimb:  cloneFloat(c.StopLossReimb),
		Rebates:        cloneFloat(c.Rebates),
	}
	if c.PerMonth != nil {
		out.PerMonth = make(map[string]MonthOverride, len(c.PerMonth))
		for k, v := range c.PerMonth {
			out.PerMonth[k] = v.Clone()
		}
	}
	return out
}

// Base returns the top-level values as a month override, the usual source of
// a bulk apply.
func (c FeesConfig) Base() MonthOverride {
	return MonthOverride{
		Fees:           c.Fees.Clone(),
		BudgetOverride: c.BudgetOverride.Clone(),
		StopLossReimb:  cloneFloat(c.StopLossReimb),
		Rebates:        cloneFloat(c.Rebates),
	}
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func floatEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
