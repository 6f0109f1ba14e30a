package normalize

import (
	"github.com/becastil/costdash/internal/model"
)

// Kind selects the coercer applied to a field.
type Kind int

const (
	KindNumber Kind = iota
	KindInteger
	KindMonth
	KindDate
	KindBoolean
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindMonth:
		return "month"
	case KindDate:
		return "date"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	}
	return "unknown"
}

// IssueType is the issue reported when a value of this kind fails to coerce.
func (k Kind) IssueType() model.IssueType {
	switch k {
	case KindNumber, KindInteger:
		return model.IssueInvalidNumber
	case KindMonth, KindDate:
		return model.IssueInvalidDate
	case KindBoolean:
		return model.IssueInvalidBoolean
	}
	return model.IssueInvalidString
}

// cell is what assigning one raw value into a row produced.
type cell struct {
	present  bool
	resolved bool
	err      error
}

func cellOf[T any](c Coerced[T]) cell {
	return cell{present: c.Present, resolved: c.Value != nil, err: c.Err}
}

// Field is one canonical column of row type R.
type Field[R any] struct {
	FieldSpec
	Kind    Kind
	Primary bool
	assign  func(r *R, raw any) cell
}

// Table describes every canonical field of row type R. Derive runs after the
// primary fields resolve.
type Table[R any] struct {
	Name   string
	Fields []Field[R]
	Derive func(r *R)
}

// Specs returns the header-resolution view of the table.
func (t *Table[R]) Specs() []FieldSpec {
	specs := make([]FieldSpec, len(t.Fields))
	for i, f := range t.Fields {
		specs[i] = f.FieldSpec
	}
	return specs
}

// Field returns the named field.
func (t *Table[R]) Field(name string) (Field[R], bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field[R]{}, false
}

func numberField[R any](name string, dst func(*R) **float64, aliases ...string) Field[R] {
	return Field[R]{
		FieldSpec: FieldSpec{Name: name, Aliases: aliases},
		Kind:      KindNumber,
		assign: func(r *R, raw any) cell {
			c := CoerceNumber(raw)
			*dst(r) = c.Value
			return cellOf(c)
		},
	}
}

func integerField[R any](name string, dst func(*R) **int64, aliases ...string) Field[R] {
	return Field[R]{
		FieldSpec: FieldSpec{Name: name, Aliases: aliases},
		Kind:      KindInteger,
		assign: func(r *R, raw any) cell {
			c := CoerceInteger(raw)
			*dst(r) = c.Value
			return cellOf(c)
		},
	}
}

func dateField[R any](name string, dst func(*R) **string, aliases ...string) Field[R] {
	return Field[R]{
		FieldSpec: FieldSpec{Name: name, Aliases: aliases},
		Kind:      KindDate,
		assign: func(r *R, raw any) cell {
			c := CoerceDate(raw)
			*dst(r) = c.Value
			return cellOf(c)
		},
	}
}

func stringField[R any](name string, dst func(*R) **string, aliases ...string) Field[R] {
	return Field[R]{
		FieldSpec: FieldSpec{Name: name, Aliases: aliases},
		Kind:      KindString,
		assign: func(r *R, raw any) cell {
			c := CoerceString(raw)
			*dst(r) = c.Value
			return cellOf(c)
		},
	}
}

func booleanField[R any](name string, dst func(*R) **bool, aliases ...string) Field[R] {
	return Field[R]{
		FieldSpec: FieldSpec{Name: name, Aliases: aliases},
		Kind:      KindBoolean,
		assign: func(r *R, raw any) cell {
			c := CoerceBoolean(raw)
			*dst(r) = c.Value
			return cellOf(c)
		},
	}
}

// BudgetTable is the canonical budget/enrollment layout.
var BudgetTable = mustTable(&Table[model.BudgetRow]{
	Name: "budget",
	Fields: []Field[model.BudgetRow]{
		{
			FieldSpec: FieldSpec{Name: "month", Required: true, Aliases: []string{
				"Month", "Period", "Reporting Month", "Month Year", "Plan Month", "Billing Month", "Service Month", "Incurred Month",
			}},
			Kind:    KindMonth,
			Primary: true,
			assign: func(r *model.BudgetRow, raw any) cell {
				c := CoerceMonth(raw)
				if c.Value != nil {
					r.Month = *c.Value
					r.SourceMonthLabel = c.Label
				}
				return cellOf(c.Coerced)
			},
		},
		numberField("budget", func(r *model.BudgetRow) **float64 { return &r.Budget },
			"Budget", "Monthly Budget", "Budget Amount", "Budgeted", "Target Budget"),
		numberField("medicalClaims", func(r *model.BudgetRow) **float64 { return &r.MedicalClaims },
			"Medical Claims", "Medical", "Medical Paid", "Total Medical Claims", "Med Claims"),
		numberField("pharmacyClaims", func(r *model.BudgetRow) **float64 { return &r.PharmacyClaims },
			"Pharmacy Claims", "Rx Claims", "Pharmacy", "Rx", "Prescription Claims", "Rx Paid"),
		numberField("adminFees", func(r *model.BudgetRow) **float64 { return &r.AdminFees },
			"Admin Fees", "Administrative Fees", "Admin Fee", "Admin", "ASO Fees"),
		numberField("stopLossPremium", func(r *model.BudgetRow) **float64 { return &r.StopLossPremium },
			"Stop Loss Premium", "Stop-Loss Premium", "SL Premium", "Stop Loss Fees"),
		numberField("stopLossReimbursements", func(r *model.BudgetRow) **float64 { return &r.StopLossReimbursements },
			"Stop Loss Reimbursements", "Stop Loss Reimbursement", "Stop Loss Reimb", "SL Reimb", "Stop Loss Credits"),
		numberField("rxRebates", func(r *model.BudgetRow) **float64 { return &r.RxRebates },
			"Rx Rebates", "Rx Rebate", "Pharmacy Rebates", "Rebates"),
		numberField("inpatientClaims", func(r *model.BudgetRow) **float64 { return &r.InpatientClaims },
			"Inpatient", "Inpatient Claims", "IP Claims"),
		numberField("outpatientClaims", func(r *model.BudgetRow) **float64 { return &r.OutpatientClaims },
			"Outpatient", "Outpatient Claims", "OP Claims"),
		numberField("professionalClaims", func(r *model.BudgetRow) **float64 { return &r.ProfessionalClaims },
			"Professional", "Professional Claims", "Physician Claims"),
		numberField("emergencyClaims", func(r *model.BudgetRow) **float64 { return &r.EmergencyClaims },
			"Emergency", "Emergency Claims", "ER Claims", "ER"),
		numberField("domesticClaims", func(r *model.BudgetRow) **float64 { return &r.DomesticClaims },
			"Domestic Claims", "Domestic"),
		numberField("nonDomesticClaims", func(r *model.BudgetRow) **float64 { return &r.NonDomesticClaims },
			"Non Domestic Claims", "Non-Domestic Claims", "Non Domestic", "International Claims"),
		numberField("netPaid", func(r *model.BudgetRow) **float64 { return &r.NetPaid },
			"Net Paid", "Net Paid Claims", "Total Paid"),
		numberField("netCost", func(r *model.BudgetRow) **float64 { return &r.NetCost },
			"Net Cost", "Total Net Cost", "Net Plan Cost"),
		numberField("variance", func(r *model.BudgetRow) **float64 { return &r.Variance },
			"Variance", "Budget Variance", "Surplus Deficit"),
		numberField("variancePercent", func(r *model.BudgetRow) **float64 { return &r.VariancePercent },
			"Variance Percent", "Variance Pct", "Variance Percentage", "Pct Variance"),
		numberField("lossRatio", func(r *model.BudgetRow) **float64 { return &r.LossRatio },
			"Loss Ratio", "Medical Loss Ratio", "MLR"),
		integerField("employeeCount", func(r *model.BudgetRow) **int64 { return &r.EmployeeCount },
			"Employee Count", "Employees", "EE Count", "Enrolled Employees", "Subscribers", "Subscriber Count"),
		integerField("memberCount", func(r *model.BudgetRow) **int64 { return &r.MemberCount },
			"Member Count", "Members", "Covered Lives", "Enrolled Members", "Member Months"),
		integerField("totalEnrollment", func(r *model.BudgetRow) **int64 { return &r.TotalEnrollment },
			"Total Enrollment", "Enrollment", "Total Enrolled", "Total Lives"),
		dateField("createdAt", func(r *model.BudgetRow) **string { return &r.CreatedAt },
			"Created At", "Created", "Created Date"),
		dateField("updatedAt", func(r *model.BudgetRow) **string { return &r.UpdatedAt },
			"Updated At", "Updated", "Last Updated", "Modified At"),
	},
})

// ClaimsTable is the canonical claim-line layout.
var ClaimsTable = mustTable(&Table[model.ClaimsRow]{
	Name: "claims",
	Fields: []Field[model.ClaimsRow]{
		{
			FieldSpec: FieldSpec{Name: "claimId", Required: true, Aliases: []string{
				"Claim ID", "Claim Number", "Claim No", "Claim #", "Claim",
			}},
			Kind:    KindString,
			Primary: true,
			assign: func(r *model.ClaimsRow, raw any) cell {
				c := CoerceString(raw)
				if c.Value != nil {
					r.ClaimID = *c.Value
				}
				return cellOf(c)
			},
		},
		{
			FieldSpec: FieldSpec{Name: "serviceDate", Required: true, Aliases: []string{
				"Service Date", "Date of Service", "DOS", "Incurred Date", "Service Start Date", "From Date",
			}},
			Kind:    KindDate,
			Primary: true,
			assign: func(r *model.ClaimsRow, raw any) cell {
				c := CoerceDate(raw)
				if c.Value != nil {
					r.ServiceDate = *c.Value
				}
				return cellOf(c)
			},
		},
		stringField("claimantNumber", func(r *model.ClaimsRow) **string { return &r.ClaimantNumber },
			"Claimant Number", "Claimant ID", "Claimant"),
		stringField("memberId", func(r *model.ClaimsRow) **string { return &r.MemberID },
			"Member ID", "Member Number", "Member", "Subscriber ID"),
		stringField("providerId", func(r *model.ClaimsRow) **string { return &r.ProviderID },
			"Provider ID", "Provider", "Provider Number", "NPI"),
		stringField("status", func(r *model.ClaimsRow) **string { return &r.Status },
			"Status", "Claim Status", "Payment Status"),
		stringField("serviceType", func(r *model.ClaimsRow) **string { return &r.ServiceType },
			"Service Type", "Type of Service", "Claim Type", "Service Category"),
		stringField("diagnosisCode", func(r *model.ClaimsRow) **string { return &r.DiagnosisCode },
			"ICD-10-CM Code", "ICD-10 Code", "ICD Code", "Diagnosis Code", "Dx Code", "Primary Diagnosis"),
		stringField("diagnosisDescription", func(r *model.ClaimsRow) **string { return &r.DiagnosisDescription },
			"Medical Description", "Diagnosis Description", "Diagnosis", "Dx Description"),
		stringField("laymanTerm", func(r *model.ClaimsRow) **string { return &r.LaymanTerm },
			"Layman's Term", "Layman Term", "Plain Language Description"),
		numberField("medicalAmount", func(r *model.ClaimsRow) **float64 { return &r.MedicalAmount },
			"Medical", "Medical Amount", "Medical Paid", "Med Amount"),
		numberField("pharmacyAmount", func(r *model.ClaimsRow) **float64 { return &r.PharmacyAmount },
			"Rx", "Pharmacy", "Pharmacy Amount", "Rx Amount", "Rx Paid"),
		numberField("totalAmount", func(r *model.ClaimsRow) **float64 { return &r.TotalAmount },
			"Total", "Total Amount", "Total Paid", "Paid Amount", "Amount"),
		booleanField("domesticFlag", func(r *model.ClaimsRow) **bool { return &r.DomesticFlag },
			"Domestic Flag", "Domestic", "Is Domestic"),
		stringField("planType", func(r *model.ClaimsRow) **string { return &r.PlanType },
			"Plan Type", "Plan Type ID", "Plan", "Plan Name"),
		stringField("diagnosisCategory", func(r *model.ClaimsRow) **string { return &r.DiagnosisCategory },
			"Diagnosis Category", "Condition Category", "Category"),
		stringField("hccCode", func(r *model.ClaimsRow) **string { return &r.HCCCode },
			"HCC Code", "HCC", "Hierarchical Condition Category"),
		numberField("riskScore", func(r *model.ClaimsRow) **float64 { return &r.RiskScore },
			"Risk Score", "Risk", "RAF Score"),
		dateField("paidDate", func(r *model.ClaimsRow) **string { return &r.PaidDate },
			"Paid Date", "Payment Date", "Date Paid"),
		dateField("createdAt", func(r *model.ClaimsRow) **string { return &r.CreatedAt },
			"Created At", "Created", "Created Date"),
		dateField("updatedAt", func(r *model.ClaimsRow) **string { return &r.UpdatedAt },
			"Updated At", "Updated", "Last Updated", "Modified At"),
	},
	Derive: func(r *model.ClaimsRow) {
		if len(r.ServiceDate) >= 7 {
			r.ServiceMonth = r.ServiceDate[:7]
		}
	},
})

// mustTable panics when two fields share an alias.
func mustTable[R any](t *Table[R]) *Table[R] {
	if _, err := buildAliasIndex(t.Specs()); err != nil {
		panic("normalize: " + t.Name + " table: " + err.Error())
	}
	return t
}
