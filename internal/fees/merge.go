package fees

import (
	"github.com/shopspring/decimal"
)

// MergeFees merges source into current under policy. ADDITIVE matches fees by
// label; unmatched source fees are appended with an id from newID.
func MergeFees(current, source FeeList, policy ConflictPolicy, newID func() string) FeeList {
	switch policy {
	case PolicyOverwrite:
		return source.Clone()
	case PolicyFillBlanksOnly:
		if len(current) == 0 {
			return source.Clone()
		}
		return current.Clone()
	case PolicyAdditive:
		out := current.Clone()
		for _, s := range source {
			matched := false
			for i := range out {
				if out[i].Label == s.Label {
					out[i].Amount = addFloat(out[i].Amount, s.Amount)
					matched = true
					break
				}
			}
			if !matched {
				s.ID = newID()
				out = append(out, s)
			}
		}
		return out
	}
	return current.Clone()
}

// MergeScalar merges one optional amount. A nil source leaves current as is.
// FILL_BLANKS_ONLY treats zero as blank.
func MergeScalar(current, source *float64, policy ConflictPolicy) *float64 {
	if source == nil {
		return cloneFloat(current)
	}
	switch policy {
	case PolicyOverwrite:
		return cloneFloat(source)
	case PolicyFillBlanksOnly:
		if current == nil || *current == 0 {
			return cloneFloat(source)
		}
		return cloneFloat(current)
	case PolicyAdditive:
		var base float64
		if current != nil {
			base = *current
		}
		v := addFloat(base, *source)
		return &v
	}
	return cloneFloat(current)
}

// MergeBudget applies scalar semantics to the override amount. ADDITIVE keeps
// the current basis.
func MergeBudget(current, source *BudgetOverride, policy ConflictPolicy) *BudgetOverride {
	if source == nil {
		return current.Clone()
	}
	switch policy {
	case PolicyOverwrite:
		return source.Clone()
	case PolicyFillBlanksOnly:
		if current == nil || current.Amount == 0 {
			return source.Clone()
		}
		return current.Clone()
	case PolicyAdditive:
		if current == nil {
			return source.Clone()
		}
		return &BudgetOverride{Amount: addFloat(current.Amount, source.Amount), Basis: current.Basis}
	}
	return current.Clone()
}

func addFloat(a, b float64) float64 {
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).InexactFloat64()
}
