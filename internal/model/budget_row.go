package model

// BudgetRow is one canonical month of plan financials.
// Month is always YYYY-MM; monetary fields are finite or nil.
type BudgetRow struct {
	Month            string `json:"month" parquet:"month"`
	SourceMonthLabel string `json:"sourceMonthLabel" parquet:"source_month_label"`

	Budget                 *float64 `json:"budget" parquet:"budget,optional"`
	MedicalClaims          *float64 `json:"medicalClaims" parquet:"medical_claims,optional"`
	PharmacyClaims         *float64 `json:"pharmacyClaims" parquet:"pharmacy_claims,optional"`
	AdminFees              *float64 `json:"adminFees" parquet:"admin_fees,optional"`
	StopLossPremium        *float64 `json:"stopLossPremium" parquet:"stop_loss_premium,optional"`
	StopLossReimbursements *float64 `json:"stopLossReimbursements" parquet:"stop_loss_reimbursements,optional"`
	RxRebates              *float64 `json:"rxRebates" parquet:"rx_rebates,optional"`

	// Medical claims breakdown
	InpatientClaims    *float64 `json:"inpatientClaims" parquet:"inpatient_claims,optional"`
	OutpatientClaims   *float64 `json:"outpatientClaims" parquet:"outpatient_claims,optional"`
	ProfessionalClaims *float64 `json:"professionalClaims" parquet:"professional_claims,optional"`
	EmergencyClaims    *float64 `json:"emergencyClaims" parquet:"emergency_claims,optional"`

	DomesticClaims    *float64 `json:"domesticClaims" parquet:"domestic_claims,optional"`
	NonDomesticClaims *float64 `json:"nonDomesticClaims" parquet:"non_domestic_claims,optional"`

	NetPaid         *float64 `json:"netPaid" parquet:"net_paid,optional"`
	NetCost         *float64 `json:"netCost" parquet:"net_cost,optional"`
	Variance        *float64 `json:"variance" parquet:"variance,optional"`
	VariancePercent *float64 `json:"variancePercent" parquet:"variance_percent,optional"`
	LossRatio       *float64 `json:"lossRatio" parquet:"loss_ratio,optional"`

	// Enrollment
	EmployeeCount   *int64 `json:"employeeCount" parquet:"employee_count,optional"`
	MemberCount     *int64 `json:"memberCount" parquet:"member_count,optional"`
	TotalEnrollment *int64 `json:"totalEnrollment" parquet:"total_enrollment,optional"`

	CreatedAt *string `json:"createdAt" parquet:"created_at,optional"`
	UpdatedAt *string `json:"updatedAt" parquet:"updated_at,optional"`
}

// MonetaryFields returns the nullable money-like values keyed by canonical name.
func (r *BudgetRow) MonetaryFields() map[string]*float64 {
	return map[string]*float64{
		"budget":                 r.Budget,
		"medicalClaims":          r.MedicalClaims,
		"pharmacyClaims":         r.PharmacyClaims,
		"adminFees":              r.AdminFees,
		"stopLossPremium":        r.StopLossPremium,
		"stopLossReimbursements": r.StopLossReimbursements,
		"rxRebates":              r.RxRebates,
		"inpatientClaims":        r.InpatientClaims,
		"outpatientClaims":       r.OutpatientClaims,
		"professionalClaims":     r.ProfessionalClaims,
		"emergencyClaims":        r.EmergencyClaims,
		"domesticClaims":         r.DomesticClaims,
		"nonDomesticClaims":      r.NonDomesticClaims,
		"netPaid":                r.NetPaid,
		"netCost":                r.NetCost,
		"variance":               r.Variance,
		"variancePercent":        r.VariancePercent,
		"lossRatio":              r.LossRatio,
	}
}

// DateFields returns the nullable date values keyed by canonical name.
func (r *BudgetRow) DateFields() map[string]*string {
	return map[string]*string{
		"createdAt": r.CreatedAt,
		"updatedAt": r.UpdatedAt,
	}
}
