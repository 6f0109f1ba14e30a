package fees

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxRangeMonths bounds a single bulk apply to ten years.
const DefaultMaxRangeMonths = 120

// Components selects which parts of a month override a bulk apply touches.
type Components struct {
	Fees          bool `json:"fees" yaml:"fees"`
	Budget        bool `json:"budget" yaml:"budget"`
	StopLossReimb bool `json:"stopLossReimb" yaml:"stopLossReimb"`
	Rebates       bool `json:"rebates" yaml:"rebates"`
}

// Enabled lists the selected components in a fixed order.
func (c Components) Enabled() []Component {
	var out []Component
	if c.Fees {
		out = append(out, ComponentFees)
	}
	if c.Budget {
		out = append(out, ComponentBudget)
	}
	if c.StopLossReimb {
		out = append(out, ComponentStopLossReimb)
	}
	if c.Rebates {
		out = append(out, ComponentRebates)
	}
	return out
}

// Enable turns on the named component.
func (c *Components) Enable(comp Component) {
	switch comp {
	case ComponentFees:
		c.Fees = true
	case ComponentBudget:
		c.Budget = true
	case ComponentStopLossReimb:
		c.StopLossReimb = true
	case ComponentRebates:
		c.Rebates = true
	}
}

// BulkApplyConfig is one request to propagate Source across a month range.
// Duration and EndMonth are mutually exclusive.
type BulkApplyConfig struct {
	StartMonth           string               `json:"startMonth" yaml:"startMonth"`
	Duration             *int                 `json:"duration,omitempty" yaml:"duration,omitempty"`
	EndMonth             string               `json:"endMonth,omitempty" yaml:"endMonth,omitempty"`
	Components           Components           `json:"components" yaml:"components"`
	ConflictPolicy       ConflictPolicy       `json:"conflictPolicy" yaml:"conflictPolicy"`
	MissingMonthStrategy MissingMonthStrategy `json:"missingMonthStrategy" yaml:"missingMonthStrategy"`
	Source               MonthOverride        `json:"source" yaml:"source"`
}

// Months expands the requested range.
func (c BulkApplyConfig) Months() []string {
	return ExpandMonths(c.StartMonth, c.Duration, c.EndMonth)
}

// needsEnrollment reports whether any enabled source value scales by headcount.
func (c BulkApplyConfig) needsEnrollment() bool {
	if c.Components.Fees {
		for _, f := range c.Source.Fees {
			if f.Basis.NeedsEnrollment() {
				return true
			}
		}
	}
	return c.Components.Budget && c.Source.BudgetOverride != nil && c.Source.BudgetOverride.Basis.NeedsEnrollment()
}

// Validation is the outcome of checking a bulk apply request.
type Validation struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// MonthlySnapshot is the dry-run view of one target month.
type MonthlySnapshot struct {
	Month             string             `json:"month"`
	Current           MonthOverride      `json:"current"`
	Next              MonthOverride      `json:"next"`
	Enrollment        *MonthlyEnrollment `json:"enrollment,omitempty"`
	CurrentTotalFixed float64            `json:"currentTotalFixed"`
	NewTotalFixed     float64            `json:"newTotalFixed"`
	HasChanges        bool               `json:"hasChanges"`
	Warnings          []string           `json:"warnings,omitempty"`
}

// PriorState is a month's override before a bulk apply touched it.
type PriorState struct {
	Existed  bool          `json:"existed"`
	Override MonthOverride `json:"override"`
}

// AuditEntry records one executed bulk apply with enough state to undo it.
type AuditEntry struct {
	ID                   string                `json:"id"`
	AppliedAt            time.Time             `json:"appliedAt"`
	StartMonth           string                `json:"startMonth"`
	EndMonth             string                `json:"endMonth"`
	Months               []string              `json:"months"`
	MonthsUpdated        []string              `json:"monthsUpdated"`
	ConflictPolicy       ConflictPolicy        `json:"conflictPolicy"`
	MissingMonthStrategy MissingMonthStrategy  `json:"missingMonthStrategy"`
	Components           []Component           `json:"components"`
	Previous             map[string]PriorState `json:"previous"`
}

// BulkApplyResult is the outcome of Execute. Success is true when no month
// was blocked; skipped months do not count as failures.
type BulkApplyResult struct {
	Success       bool       `json:"success"`
	MonthsUpdated []string   `json:"monthsUpdated"`
	MonthsSkipped []string   `json:"monthsSkipped"`
	Errors        []string   `json:"errors"`
	AuditLog      AuditEntry `json:"auditLog"`
	UpdatedConfig FeesConfig `json:"updatedConfig"`
}

// Applier validates, previews and executes bulk applies. None of its methods
// mutate their arguments.
type Applier struct {
	NewID          func() string
	Now            func() time.Time
	MaxRangeMonths int
}

// NewApplier returns an Applier using random UUIDs and the wall clock.
func NewApplier() *Applier {
	return &Applier{
		NewID:          uuid.NewString,
		Now:            time.Now,
		MaxRangeMonths: DefaultMaxRangeMonths,
	}
}

// Validate checks cfg before a preview or execute.
func (a *Applier) Validate(cfg BulkApplyConfig, enrollment []MonthlyEnrollment) Validation {
	var v Validation

	start, startErr := ParseMonth(cfg.StartMonth)
	switch {
	case cfg.StartMonth == "":
		v.Errors = append(v.Errors, "start month is required")
	case startErr != nil:
		v.Errors = append(v.Errors, fmt.Sprintf("start month: %v", startErr))
	}

	if cfg.Duration != nil && cfg.EndMonth != "" {
		v.Errors = append(v.Errors, "specify a duration or an end month, not both")
	}
	if cfg.Duration != nil && *cfg.Duration < 1 {
		v.Errors = append(v.Errors, "duration must be at least 1 month")
	}
	if cfg.EndMonth != "" {
		end, err := ParseMonth(cfg.EndMonth)
		switch {
		case err != nil:
			v.Errors = append(v.Errors, fmt.Sprintf("end month: %v", err))
		case startErr == nil && CompareMonths(end, start) < 0:
			v.Errors = append(v.Errors, fmt.Sprintf("end month %s is before start month %s", cfg.EndMonth, cfg.StartMonth))
		}
	}
	if len(cfg.Components.Enabled()) == 0 {
		v.Errors = append(v.Errors, "select at least one component to apply")
	}
	if !cfg.ConflictPolicy.Valid() {
		v.Errors = append(v.Errors, fmt.Sprintf("unknown conflict policy %q", cfg.ConflictPolicy))
	}
	if !cfg.MissingMonthStrategy.Valid() {
		v.Errors = append(v.Errors, fmt.Sprintf("unknown missing month strategy %q", cfg.MissingMonthStrategy))
	}
	if cfg.Components.Fees {
		for _, f := range cfg.Source.Fees {
			if !f.Basis.Valid() {
				v.Errors = append(v.Errors, fmt.Sprintf("fee %q has unknown basis %q", f.Label, f.Basis))
			}
		}
	}
	if cfg.Components.Budget && cfg.Source.BudgetOverride != nil && !cfg.Source.BudgetOverride.Basis.Valid() {
		v.Errors = append(v.Errors, fmt.Sprintf("budget override has unknown basis %q", cfg.Source.BudgetOverride.Basis))
	}

	var months []string
	if n := MonthCount(cfg.StartMonth, cfg.Duration, cfg.EndMonth); a.exceedsLimit(n) {
		v.Errors = append(v.Errors, fmt.Sprintf("range covers %d months; the limit is %d", n, a.MaxRangeMonths))
	} else {
		months = cfg.Months()
	}

	if cfg.Duration == nil && cfg.EndMonth == "" && startErr == nil {
		v.Warnings = append(v.Warnings, fmt.Sprintf("no duration or end month given; applying to %s only", cfg.StartMonth))
	}
	if cfg.needsEnrollment() {
		idx := IndexEnrollment(enrollment)
		var missing []string
		for _, m := range months {
			if _, ok := idx[m]; !ok {
				missing = append(missing, m)
			}
		}
		if len(missing) > 0 {
			v.Warnings = append(v.Warnings, fmt.Sprintf("no enrollment data for %s; PMPM and PEPM amounts will use zero headcount", strings.Join(missing, ", ")))
		}
	}

	v.IsValid = len(v.Errors) == 0
	return v
}

func (a *Applier) exceedsLimit(n int) bool {
	return a.MaxRangeMonths > 0 && n > a.MaxRangeMonths
}

// Preview computes the before and after state of every target month without
// changing current.
func (a *Applier) Preview(current FeesConfig, cfg BulkApplyConfig, enrollment []MonthlyEnrollment) []MonthlySnapshot {
	if a.exceedsLimit(MonthCount(cfg.StartMonth, cfg.Duration, cfg.EndMonth)) {
		return nil
	}
	idx := IndexEnrollment(enrollment)
	months := cfg.Months()
	out := make([]MonthlySnapshot, 0, len(months))
	for _, m := range months {
		before := current.PerMonth[m].Clone()
		after := a.applyMonth(before, cfg)

		snap := MonthlySnapshot{
			Month:      m,
			Current:    before,
			Next:       after,
			HasChanges: !before.Equal(after),
		}
		if e, ok := idx[m]; ok {
			snap.Enrollment = &e
		} else if usesHeadcount(after) {
			snap.Warnings = append(snap.Warnings, fmt.Sprintf("no enrollment data for %s; PMPM and PEPM amounts use zero headcount", m))
		}
		snap.CurrentTotalFixed = FixedTotal(before.Fees, snap.Enrollment)
		snap.NewTotalFixed = FixedTotal(after.Fees, snap.Enrollment)
		out = append(out, snap)
	}
	return out
}

// Execute applies cfg to a copy of current. An invalid request returns the
// validation errors and an unchanged copy.
func (a *Applier) Execute(current FeesConfig, cfg BulkApplyConfig, enrollment []MonthlyEnrollment) BulkApplyResult {
	res := BulkApplyResult{UpdatedConfig: current.Clone()}

	if v := a.Validate(cfg, enrollment); !v.IsValid {
		res.Errors = v.Errors
		return res
	}

	months := cfg.Months()
	idx := IndexEnrollment(enrollment)
	entry := AuditEntry{
		ID:                   a.NewID(),
		AppliedAt:            a.Now().UTC(),
		StartMonth:           months[0],
		EndMonth:             months[len(months)-1],
		Months:               months,
		ConflictPolicy:       cfg.ConflictPolicy,
		MissingMonthStrategy: cfg.MissingMonthStrategy,
		Components:           cfg.Components.Enabled(),
		Previous:             make(map[string]PriorState, len(months)),
	}

	updated := &res.UpdatedConfig
	if updated.PerMonth == nil {
		updated.PerMonth = make(map[string]MonthOverride)
	}

	for _, m := range months {
		prior, existed := updated.PerMonth[m]
		entry.Previous[m] = PriorState{Existed: existed, Override: prior.Clone()}

		if _, ok := idx[m]; !ok {
			switch cfg.MissingMonthStrategy {
			case MissingSkip:
				res.MonthsSkipped = append(res.MonthsSkipped, m)
				continue
			case MissingBlock:
				res.Errors = append(res.Errors, fmt.Sprintf("%s: no enrollment data", m))
				continue
			}
		}

		updated.PerMonth[m] = a.applyMonth(prior, cfg)
		res.MonthsUpdated = append(res.MonthsUpdated, m)
	}

	entry.MonthsUpdated = res.MonthsUpdated
	res.AuditLog = entry
	res.Success = len(res.Errors) == 0
	return res
}

// Rollback restores every month an audited apply updated to its prior state,
// removing entries the apply created.
func Rollback(cfg FeesConfig, entry AuditEntry) FeesConfig {
	out := cfg.Clone()
	for _, m := range entry.MonthsUpdated {
		prior, ok := entry.Previous[m]
		if !ok {
			continue
		}
		if !prior.Existed {
			delete(out.PerMonth, m)
			continue
		}
		if out.PerMonth == nil {
			out.PerMonth = make(map[string]MonthOverride)
		}
		out.PerMonth[m] = prior.Override.Clone()
	}
	return out
}

func (a *Applier) applyMonth(current MonthOverride, cfg BulkApplyConfig) MonthOverride {
	next := current.Clone()
	src := cfg.Source
	if cfg.Components.Fees {
		next.Fees = MergeFees(current.Fees, src.Fees, cfg.ConflictPolicy, a.NewID)
	}
	if cfg.Components.Budget {
		next.BudgetOverride = MergeBudget(current.BudgetOverride, src.BudgetOverride, cfg.ConflictPolicy)
	}
	if cfg.Components.StopLossReimb {
		next.StopLossReimb = MergeScalar(current.StopLossReimb, src.StopLossReimb, cfg.ConflictPolicy)
	}
	if cfg.Components.Rebates {
		next.Rebates = MergeScalar(current.Rebates, src.Rebates, cfg.ConflictPolicy)
	}
	return next
}

func usesHeadcount(m MonthOverride) bool {
	for _, f := range m.Fees {
		if f.Basis.NeedsEnrollment() {
			return true
		}
	}
	return m.BudgetOverride != nil && m.BudgetOverride.Basis.NeedsEnrollment()
}
