package ingest

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/medbill/medbill/internal/platform/tabular"
)

// Column conventions shared by the upload formats. Per-doctor (and
// per-provider) rate columns are named "<Name> Rate", optionally with a
// currency suffix, e.g. "Kelvin Rate" or "Doctor Kelvin Nkansa Rate ($)".
var rateColPattern = regexp.MustCompile(`^(.+?) Rate(?: \(\$\))?$`)

const (
	colDiseaseName   = "Disease Name"
	colICDCode       = "ICD Code"
	colInsuranceRate = "Insurance Rate"

	colPatientName   = "Patient Name"
	colPatientID     = "Patient ID"
	colEmail         = "Email"
	colPhone         = "Phone"
	colDisease       = "Disease"
	colAssignedDoc   = "Assigned Doctor"
	colInsuranceComp = "Insurance Company"
)

// RateEntry is one (diagnosis, rate) pair from a rate schedule upload.
type RateEntry struct {
	ICDCode string
	Disease string
	Rate    decimal.Decimal
}

// DoctorRateSheet is the mapped form of one "<Name> Rate" column: the
// doctor's name plus their full rate schedule.
type DoctorRateSheet struct {
	DoctorName string
	Rates      []RateEntry
}

// InsuranceRateRow is one mapped insurance reimbursement record.
type InsuranceRateRow struct {
	Provider string
	ICDCode  string
	Disease  string
	Rate     decimal.Decimal
}

// PatientRow is one mapped patient assignment. Either PatientID or the
// (Name, Email, Phone) identity attributes carry the identity.
type PatientRow struct {
	PatientID         string
	Name              string
	Email             string
	Phone             string
	Disease           string
	ICDCode           string
	DoctorName        string
	InsuranceProvider string
}

func missingColumns(t *tabular.Table, required ...string) []string {
	var missing []string
	for _, col := range required {
		if !t.HasHeader(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

func parseMoney(cell string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(cell)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// MapDoctorRates maps a doctor charge schedule. Every column matching
// "<Name> Rate" registers that doctor; the sheet order of rate columns is
// preserved.
func MapDoctorRates(t *tabular.Table) ([]DoctorRateSheet, error) {
	if missing := missingColumns(t, colDiseaseName, colICDCode); len(missing) > 0 {
		return nil, &SchemaMismatchError{Source: t.Source, Kind: KindDoctorRates, Missing: missing}
	}

	type rateCol struct {
		header string
		name   string
	}
	var rateCols []rateCol
	for _, h := range t.Headers {
		if h == colDiseaseName || h == colICDCode {
			continue
		}
		if m := rateColPattern.FindStringSubmatch(h); m != nil {
			rateCols = append(rateCols, rateCol{header: h, name: m[1]})
		}
	}
	if len(rateCols) == 0 {
		return nil, &SchemaMismatchError{Source: t.Source, Kind: KindDoctorRates,
			Missing: []string{"<Doctor Name> Rate"}}
	}

	sheets := make([]DoctorRateSheet, len(rateCols))
	for i, rc := range rateCols {
		sheets[i].DoctorName = rc.name
	}

	for i, rec := range t.Records {
		for j, rc := range rateCols {
			rate, ok := parseMoney(rec[rc.header])
			if !ok {
				return nil, &InvalidRateError{Source: t.Source, Row: i + 1,
					Column: rc.header, Value: rec[rc.header]}
			}
			sheets[j].Rates = append(sheets[j].Rates, RateEntry{
				ICDCode: rec[colICDCode],
				Disease: rec[colDiseaseName],
				Rate:    rate,
			})
		}
	}

	return sheets, nil
}

// MapInsuranceRates maps an insurer reimbursement schedule. The rate column
// is either the generic "Insurance Rate" (provider supplied by the caller)
// or a provider-named "<Provider> Rate" column.
func MapInsuranceRates(t *tabular.Table, provider string) ([]InsuranceRateRow, error) {
	if missing := missingColumns(t, colDiseaseName, colICDCode); len(missing) > 0 {
		return nil, &SchemaMismatchError{Source: t.Source, Kind: KindInsuranceRates, Missing: missing}
	}

	rateCol := ""
	if t.HasHeader(colInsuranceRate) {
		rateCol = colInsuranceRate
	} else {
		for _, h := range t.Headers {
			if h == colDiseaseName || h == colICDCode {
				continue
			}
			if m := rateColPattern.FindStringSubmatch(h); m != nil {
				rateCol = h
				if provider == "" {
					provider = m[1]
				}
				break
			}
		}
	}
	if rateCol == "" {
		return nil, &SchemaMismatchError{Source: t.Source, Kind: KindInsuranceRates,
			Missing: []string{colInsuranceRate}}
	}
	if provider == "" {
		return nil, &SchemaMismatchError{Source: t.Source, Kind: KindInsuranceRates,
			Missing: []string{"provider (query parameter or \"<Provider> Rate\" column)"}}
	}

	rows := make([]InsuranceRateRow, 0, len(t.Records))
	for i, rec := range t.Records {
		rate, ok := parseMoney(rec[rateCol])
		if !ok {
			return nil, &InvalidRateError{Source: t.Source, Row: i + 1,
				Column: rateCol, Value: rec[rateCol]}
		}
		rows = append(rows, InsuranceRateRow{
			Provider: provider,
			ICDCode:  rec[colICDCode],
			Disease:  rec[colDiseaseName],
			Rate:     rate,
		})
	}

	return rows, nil
}

// MapPatientAssignments maps a patient roster. Identity comes from an
// explicit "Patient ID" column or from the Email/Phone identity attributes,
// whichever the sheet carries.
func MapPatientAssignments(t *tabular.Table) ([]PatientRow, error) {
	missing := missingColumns(t, colPatientName, colDisease, colICDCode, colAssignedDoc, colInsuranceComp)

	hasID := t.HasHeader(colPatientID)
	hasIdentity := t.HasHeader(colEmail) && t.HasHeader(colPhone)
	if !hasID && !hasIdentity {
		missing = append(missing, colPatientID+" (or "+colEmail+" and "+colPhone+")")
	}
	if len(missing) > 0 {
		return nil, &SchemaMismatchError{Source: t.Source, Kind: KindPatientAssignments, Missing: missing}
	}

	rows := make([]PatientRow, 0, len(t.Records))
	for _, rec := range t.Records {
		row := PatientRow{
			Name:              rec[colPatientName],
			Disease:           rec[colDisease],
			ICDCode:           rec[colICDCode],
			DoctorName:        rec[colAssignedDoc],
			InsuranceProvider: rec[colInsuranceComp],
		}
		if hasID {
			row.PatientID = rec[colPatientID]
		}
		if hasIdentity {
			row.Email = rec[colEmail]
			row.Phone = rec[colPhone]
		}
		rows = append(rows, row)
	}

	return rows, nil
}
