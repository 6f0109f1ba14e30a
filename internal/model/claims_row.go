package model

// ClaimsRow is one canonical claim line. ClaimID and ServiceDate are always set;
// ServiceMonth is the first seven characters of ServiceDate.
type ClaimsRow struct {
	ClaimID      string `json:"claimId" parquet:"claim_id"`
	ServiceDate  string `json:"serviceDate" parquet:"service_date"`
	ServiceMonth string `json:"serviceMonth" parquet:"service_month"`

	ClaimantNumber *string `json:"claimantNumber" parquet:"claimant_number,optional"`
	MemberID       *string `json:"memberId" parquet:"member_id,optional"`
	ProviderID     *string `json:"providerId" parquet:"provider_id,optional"`
	Status         *string `json:"status" parquet:"status,optional"`
	ServiceType    *string `json:"serviceType" parquet:"service_type,optional"`

	DiagnosisCode        *string `json:"diagnosisCode" parquet:"diagnosis_code,optional"`
	DiagnosisDescription *string `json:"diagnosisDescription" parquet:"diagnosis_description,optional"`
	LaymanTerm           *string `json:"laymanTerm" parquet:"layman_term,optional"`

	MedicalAmount  *float64 `json:"medicalAmount" parquet:"medical_amount,optional"`
	PharmacyAmount *float64 `json:"pharmacyAmount" parquet:"pharmacy_amount,optional"`
	TotalAmount    *float64 `json:"totalAmount" parquet:"total_amount,optional"`
	DomesticFlag   *bool    `json:"domesticFlag" parquet:"domestic_flag,optional"`

	PlanType          *string  `json:"planType" parquet:"plan_type,optional"`
	DiagnosisCategory *string  `json:"diagnosisCategory" parquet:"diagnosis_category,optional"`
	HCCCode           *string  `json:"hccCode" parquet:"hcc_code,optional"`
	RiskScore         *float64 `json:"riskScore" parquet:"risk_score,optional"`

	PaidDate  *string `json:"paidDate" parquet:"paid_date,optional"`
	CreatedAt *string `json:"createdAt" parquet:"created_at,optional"`
	UpdatedAt *string `json:"updatedAt" parquet:"updated_at,optional"`
}

// NumericFields returns nullable numeric values keyed by canonical name.
func (r *ClaimsRow) NumericFields() map[string]*float64 {
	return map[string]*float64{
		"medicalAmount":  r.MedicalAmount,
		"pharmacyAmount": r.PharmacyAmount,
		"totalAmount":    r.TotalAmount,
		"riskScore":      r.RiskScore,
	}
}

// DateFields returns nullable date values keyed by canonical name.
func (r *ClaimsRow) DateFields() map[string]*string {
	return map[string]*string{
		"paidDate":  r.PaidDate,
		"createdAt": r.CreatedAt,
		"updatedAt": r.UpdatedAt,
	}
}
