package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StagedBudgetRow is a validated BudgetRow tagged with its upload for COPY.
type StagedBudgetRow struct {
	UploadID  uuid.UUID
	RowNumber int64
	Row       *BudgetRow
}

// BudgetColumns returns the ordered column names for COPY into costs.budget_rows.
func BudgetColumns() []string {
	return []string{
		"upload_id",
		"row_number",
		"month",
		"source_month_label",
		"budget",
		"medical_claims",
		"pharmacy_claims",
		"admin_fees",
		"stop_loss_premium",
		"stop_loss_reimbursements",
		"rx_rebates",
		"inpatient_claims",
		"outpatient_claims",
		"professional_claims",
		"emergency_claims",
		"domestic_claims",
		"non_domestic_claims",
		"net_paid",
		"net_cost",
		"variance",
		"variance_percent",
		"loss_ratio",
		"employee_count",
		"member_count",
		"total_enrollment",
		"created_at",
		"updated_at",
	}
}

// CopyValues returns the row values in the same order as BudgetColumns().
func (s *StagedBudgetRow) CopyValues() []any {
	r := s.Row
	return []any{
		s.UploadID,
		s.RowNumber,
		r.Month,
		r.SourceMonthLabel,
		r.Budget,
		r.MedicalClaims,
		r.PharmacyClaims,
		r.AdminFees,
		r.StopLossPremium,
		r.StopLossReimbursements,
		r.RxRebates,
		r.InpatientClaims,
		r.OutpatientClaims,
		r.ProfessionalClaims,
		r.EmergencyClaims,
		r.DomesticClaims,
		r.NonDomesticClaims,
		r.NetPaid,
		r.NetCost,
		r.Variance,
		r.VariancePercent,
		r.LossRatio,
		r.EmployeeCount,
		r.MemberCount,
		r.TotalEnrollment,
		isoDate(r.CreatedAt),
		isoDate(r.UpdatedAt),
	}
}

// StagedClaimsRow is a validated ClaimsRow tagged with its upload for COPY.
type StagedClaimsRow struct {
	UploadID  uuid.UUID
	RowNumber int64
	Row       *ClaimsRow
}

// ClaimsColumns returns the ordered column names for COPY into costs.claims_rows.
func ClaimsColumns() []string {
	return []string{
		"upload_id",
		"row_number",
		"claim_id",
		"service_date",
		"service_month",
		"claimant_number",
		"member_id",
		"provider_id",
		"status",
		"service_type",
		"diagnosis_code",
		"diagnosis_description",
		"layman_term",
		"medical_amount",
		"pharmacy_amount",
		"total_amount",
		"domestic_flag",
		"plan_type",
		"diagnosis_category",
		"hcc_code",
		"risk_score",
		"paid_date",
		"created_at",
		"updated_at",
	}
}

// CopyValues returns the row values in the same order as ClaimsColumns().
func (s *StagedClaimsRow) CopyValues() []any {
	r := s.Row
	return []any{
		s.UploadID,
		s.RowNumber,
		r.ClaimID,
		isoDate(&r.ServiceDate),
		r.ServiceMonth,
		r.ClaimantNumber,
		r.MemberID,
		r.ProviderID,
		r.Status,
		r.ServiceType,
		r.DiagnosisCode,
		r.DiagnosisDescription,
		r.LaymanTerm,
		r.MedicalAmount,
		r.PharmacyAmount,
		r.TotalAmount,
		r.DomesticFlag,
		r.PlanType,
		r.DiagnosisCategory,
		r.HCCCode,
		r.RiskScore,
		isoDate(r.PaidDate),
		isoDate(r.CreatedAt),
		isoDate(r.UpdatedAt),
	}
}

// StagedIssue is a normalization issue tagged with its upload for COPY.
type StagedIssue struct {
	UploadID uuid.UUID
	Issue    *Issue
}

// IssueColumns returns the ordered column names for COPY into costs.issues.
func IssueColumns() []string {
	return []string{
		"upload_id",
		"issue_type",
		"severity",
		"message",
		"column_name",
		"row_index",
		"raw_value",
	}
}

// CopyValues returns the issue values in the same order as IssueColumns().
// The raw value is stored as JSON text so mixed cell types survive.
func (s *StagedIssue) CopyValues() []any {
	is := s.Issue
	var col *string
	if is.Column != "" {
		col = &is.Column
	}
	var rowIndex *int32
	if is.RowIndex != nil {
		v := int32(*is.RowIndex)
		rowIndex = &v
	}
	var raw *string
	if is.RawValue != nil {
		if b, err := json.Marshal(is.RawValue); err == nil {
			txt := string(b)
			raw = &txt
		}
	}
	return []any{
		s.UploadID,
		string(is.Type),
		string(is.Severity),
		is.Message,
		col,
		rowIndex,
		raw,
	}
}

// isoDate converts a validated YYYY-MM-DD string to a time.Time for date
// columns. Unparseable or nil values become NULL.
func isoDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil
	}
	return &t
}
