// mksample writes a deterministic pair of sample inputs, budget_data.csv and
// claims_data.csv, shaped like the exports costload is meant to ingest.
// Usage: go run ./cmd/mksample --out testdata/sample --claims 5000 --months 24
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type member struct {
	claimant string
	id       string
	kind     string // Employee, Dependent or Retiree
	planType string
	risk     float64
	chronic  bool
	enrolled time.Time
	termed   *time.Time
}

type claim struct {
	id          string
	member      *member
	serviceDate time.Time
	serviceType string
	provider    string
	icd         string
	description string
	layman      string
	medical     float64
	rx          float64
	domestic    bool
	hcc         string
	status      string
	paid        *time.Time
}

type costRange struct{ min, max float64 }

var serviceCosts = map[string]costRange{
	"Professional": {80, 400}, "Outpatient": {300, 2500}, "Inpatient": {5000, 40000},
	"Emergency": {800, 6000}, "Pharmacy": {0, 0}, "Lab": {40, 300},
	"Radiology": {200, 1500}, "Surgery": {3000, 25000}, "Therapy": {90, 250},
	"Preventive": {100, 350}, "Specialty": {200, 900}, "Mental Health": {120, 300},
	"Dental": {80, 600}, "Vision": {60, 300}, "DME": {150, 2000}, "Home Health": {150, 800},
}

var serviceTypes = []string{
	"Professional", "Outpatient", "Inpatient", "Emergency", "Pharmacy",
	"Lab", "Radiology", "Surgery", "Therapy", "Preventive", "Specialty",
	"Mental Health", "Dental", "Vision", "DME", "Home Health",
}

var icd10 = [][3]string{
	{"E11.9", "Type 2 diabetes mellitus without complications", "Diabetes"},
	{"I10", "Essential (primary) hypertension", "High blood pressure"},
	{"E78.5", "Hyperlipidemia, unspecified", "High cholesterol"},
	{"K21.9", "Gastro-esophageal reflux disease without esophagitis", "GERD"},
	{"F41.9", "Anxiety disorder, unspecified", "Anxiety"},
	{"J44.0", "COPD with acute lower respiratory infection", "COPD"},
	{"N39.0", "Urinary tract infection", "UTI"},
	{"M54.5", "Low back pain", "Back pain"},
	{"J06.9", "Acute upper respiratory infection", "Common cold"},
	{"Z00.00", "General adult medical examination", "Check-up"},
	{"I25.10", "Atherosclerotic heart disease", "Heart disease"},
	{"F32.9", "Major depressive disorder", "Depression"},
}

var drugs = []struct {
	name, use string
	cost      costRange
}{
	{"Lisinopril", "Blood pressure", costRange{30, 150}},
	{"Metformin", "Diabetes", costRange{25, 100}},
	{"Atorvastatin", "Cholesterol", costRange{35, 180}},
	{"Albuterol", "Asthma", costRange{45, 250}},
	{"Sertraline", "Depression", costRange{40, 200}},
	{"Insulin Glargine", "Diabetes", costRange{250, 1200}},
	{"Adalimumab", "Autoimmune", costRange{5000, 8000}},
	{"Apixaban", "Blood thinner", costRange{400, 600}},
}

func main() {
	out := flag.String("out", "testdata/sample", "output directory")
	seed := flag.Int64("seed", 42, "random seed")
	numMembers := flag.Int("members", 1200, "number of members")
	numClaims := flag.Int("claims", 5000, "number of claims")
	numProviders := flag.Int("providers", 250, "number of providers")
	months := flag.Int("months", 24, "months of budget data")
	asOf := flag.String("as-of", "2025-06-30", "last day covered by the data (YYYY-MM-DD)")
	flag.Parse()

	end, err := time.Parse(time.DateOnly, *asOf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse --as-of: %v\n", err)
		os.Exit(1)
	}
	if *months < 1 || *numMembers < 1 || *numClaims < 0 || *numProviders < 1 {
		fmt.Fprintln(os.Stderr, "--months, --members and --providers must be positive")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	firstMonth := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(*months - 1), 0)

	members := genMembers(rng, *numMembers, firstMonth.AddDate(-1, 0, 0), end)
	claims := genClaims(rng, members, *numClaims, *numProviders, end)

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}
	if err := writeCSV(filepath.Join(*out, "claims_data.csv"), claimsRecords(claims, end)); err != nil {
		fmt.Fprintf(os.Stderr, "write claims: %v\n", err)
		os.Exit(1)
	}
	if err := writeCSV(filepath.Join(*out, "budget_data.csv"), budgetRecords(rng, claims, members, firstMonth, *months, end)); err != nil {
		fmt.Fprintf(os.Stderr, "write budget: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s: %d months, %d claims, %d members\n", *out, *months, len(claims), len(members))
}

func genMembers(rng *rand.Rand, n int, from, to time.Time) []*member {
	plans := []string{"PPO", "HMO", "HDHP", "EPO"}
	span := int(to.Sub(from).Hours() / 24)
	out := make([]*member, n)
	for i := range out {
		kind := "Employee"
		switch r := rng.Float64(); {
		case r < 0.35:
			kind = "Dependent"
		case r < 0.45:
			kind = "Retiree"
		}
		m := &member{
			claimant: fmt.Sprintf("CL%06d", 100000+i),
			id:       fmt.Sprintf("MBR%06d", i+1),
			kind:     kind,
			planType: plans[rng.Intn(len(plans))],
			risk:     round2(0.5 + rng.ExpFloat64()*0.8),
			chronic:  rng.Float64() < 0.3,
			enrolled: from.AddDate(0, 0, rng.Intn(span/2+1)),
		}
		if rng.Float64() < 0.1 {
			t := m.enrolled.AddDate(0, 0, 90+rng.Intn(span/2+1))
			if t.Before(to) {
				m.termed = &t
			}
		}
		out[i] = m
	}
	return out
}

// pickWeighted selects a member with probability proportional to risk score.
func pickWeighted(rng *rand.Rand, members []*member, total float64) *member {
	target := rng.Float64() * total
	for _, m := range members {
		target -= m.risk
		if target <= 0 {
			return m
		}
	}
	return members[len(members)-1]
}

func genClaims(rng *rand.Rand, members []*member, n, providers int, end time.Time) []claim {
	var totalRisk float64
	for _, m := range members {
		totalRisk += m.risk
	}

	out := make([]claim, 0, n)
	for i := 0; i < n; i++ {
		m := pickWeighted(rng, members, totalRisk)
		last := end
		if m.termed != nil {
			last = *m.termed
		}
		days := int(last.Sub(m.enrolled).Hours() / 24)
		if days < 1 {
			days = 1
		}

		c := claim{
			id:          fmt.Sprintf("CLM%07d", 1000000+i),
			member:      m,
			serviceDate: m.enrolled.AddDate(0, 0, rng.Intn(days)),
			serviceType: serviceTypes[rng.Intn(len(serviceTypes))],
			provider:    fmt.Sprintf("PRV%05d", 1+rng.Intn(providers)),
			domestic:    rng.Float64() < 0.85,
		}
		if c.serviceType == "Pharmacy" {
			d := drugs[rng.Intn(len(drugs))]
			c.rx = round2(between(rng, d.cost))
			c.icd = "Z79.899"
			c.description = "Prescription: " + d.name
			c.layman = d.use
		} else {
			c.medical = between(rng, serviceCosts[c.serviceType])
			if rng.Float64() < 0.05 {
				c.medical *= 5 + rng.Float64()*15
			}
			c.medical = round2(c.medical)
			code := icd10[rng.Intn(len(icd10))]
			c.icd, c.description, c.layman = code[0], code[1], code[2]
		}
		if rng.Float64() > 0.6 {
			c.hcc = fmt.Sprintf("HCC%d", 1+rng.Intn(200))
		}
		switch r := rng.Float64(); {
		case r < 0.85:
			c.status = "Paid"
			p := c.serviceDate.AddDate(0, 0, 15+rng.Intn(31))
			c.paid = &p
		case r < 0.95:
			c.status = "Pending"
		default:
			c.status = "Denied"
		}
		out = append(out, c)
	}
	return out
}

// claimsRecords carries the mixed header casing of real carrier exports,
// including both claimant_number and Claimant Number.
func claimsRecords(claims []claim, now time.Time) [][]string {
	records := [][]string{{
		"claim_id", "claimant_number", "member_id", "service_date", "Service Type",
		"provider_id", "ICD-10-CM Code", "Medical Description", "Layman's Term",
		"Medical", "Rx", "Total", "domestic_flag", "plan_type", "diagnosis_category",
		"hcc_code", "risk_score", "paid_date", "status", "created_at", "updated_at",
		"Claimant Number",
	}}
	stamp := now.Format(time.DateTime)
	for _, c := range claims {
		category := "Acute"
		if c.member.chronic {
			category = "Chronic"
		}
		paid := ""
		if c.paid != nil {
			paid = c.paid.Format(time.DateOnly)
		}
		records = append(records, []string{
			c.id, c.member.claimant, c.member.id, c.serviceDate.Format(time.DateOnly), c.serviceType,
			c.provider, c.icd, c.description, c.layman,
			money(c.medical), money(c.rx), money(c.medical + c.rx),
			strconv.FormatBool(c.domestic), c.member.planType, category,
			c.hcc, money(c.member.risk), paid, c.status, c.serviceDate.Format(time.DateTime), stamp,
			c.member.claimant,
		})
	}
	return records
}

func budgetRecords(rng *rand.Rand, claims []claim, members []*member, first time.Time, months int, now time.Time) [][]string {
	records := [][]string{{
		"month", "budget", "medical_claims", "rx_claims", "inpatient", "outpatient",
		"professional", "emergency", "admin_fees", "stop_loss_premium", "stop_loss_reimb",
		"rx_rebates", "wellness_programs", "domestic_claims", "non_domestic_claims",
		"employee_count", "dependent_count", "retiree_count", "total_enrollment",
		"loss_ratio", "net_cost", "variance", "variance_percent", "created_at", "updated_at",
	}}
	stamp := now.Format(time.DateTime)

	for i := 0; i < months; i++ {
		start := first.AddDate(0, i, 0)
		end := start.AddDate(0, 1, -1)

		var medical, rx, inpatient, outpatient, professional, emergency, domestic, nonDomestic float64
		for _, c := range claims {
			if c.serviceDate.Before(start) || c.serviceDate.After(end) {
				continue
			}
			if c.serviceType == "Pharmacy" {
				rx += c.rx
			} else {
				medical += c.medical
			}
			switch c.serviceType {
			case "Inpatient":
				inpatient += c.medical
			case "Outpatient":
				outpatient += c.medical
			case "Professional":
				professional += c.medical
			case "Emergency":
				emergency += c.medical
			}
			if c.domestic {
				domestic += c.medical + c.rx
			} else {
				nonDomestic += c.medical + c.rx
			}
		}

		counts := map[string]int{}
		total := 0
		for _, m := range members {
			if m.enrolled.After(end) || (m.termed != nil && m.termed.Before(start)) {
				continue
			}
			counts[m.kind]++
			total++
		}

		enrolled := float64(total)
		admin := enrolled * between(rng, costRange{25, 35})
		stopLossPremium := enrolled * between(rng, costRange{40, 50})
		wellness := enrolled * between(rng, costRange{5, 10})
		stopLossReimb := 0.0
		if medical > 500000 {
			stopLossReimb = (medical - 500000) * 0.9
		}
		rebates := rx * between(rng, costRange{0.15, 0.25})

		netCost := medical + rx + admin + stopLossPremium + wellness - stopLossReimb - rebates
		budget := netCost * between(rng, costRange{0.95, 1.08})
		variance := budget - netCost
		variancePct := 0.0
		if budget > 0 {
			variancePct = variance / budget * 100
		}
		lossRatio := 0.0
		if total > 0 {
			lossRatio = (medical + rx) / (enrolled * 750) * 100
		}

		records = append(records, []string{
			end.Format("Jan 2006"), money(budget), money(medical), money(rx),
			money(inpatient), money(outpatient), money(professional), money(emergency),
			money(admin), money(stopLossPremium), money(stopLossReimb), money(rebates),
			money(wellness), money(domestic), money(nonDomestic),
			strconv.Itoa(counts["Employee"]), strconv.Itoa(counts["Dependent"]),
			strconv.Itoa(counts["Retiree"]), strconv.Itoa(total),
			money(lossRatio), money(netCost), money(variance), money(variancePct),
			end.Format(time.DateTime), stamp,
		})
	}
	return records
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func between(rng *rand.Rand, r costRange) float64 {
	return r.min + rng.Float64()*(r.max-r.min)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func money(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', 2, 64)
}
