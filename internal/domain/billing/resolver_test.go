package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medbill/medbill/internal/domain/doctor"
	"github.com/medbill/medbill/internal/domain/insurance"
	"github.com/medbill/medbill/internal/domain/patient"
)

var (
	drKelvin = uuid.New()
	drNana   = uuid.New()
)

func testSnapshot() *Snapshot {
	return NewSnapshot(
		[]*doctor.Doctor{
			{ID: drKelvin, Name: "Kelvin"},
			{ID: drNana, Name: "Nana"},
		},
		[]doctor.Rate{
			{DoctorID: drKelvin, ICDCode: "B54", Disease: "Malaria", DefaultRate: decimal.RequireFromString("150")},
			{DoctorID: drKelvin, ICDCode: "A01.0", Disease: "Typhoid", DefaultRate: decimal.RequireFromString("200")},
			{DoctorID: drNana, ICDCode: "B54", Disease: "Malaria", DefaultRate: decimal.RequireFromString("140")},
		},
		[]insurance.Rate{
			{Provider: "Medicaid", ICDCode: "B54", Disease: "Malaria", Amount: decimal.RequireFromString("120")},
			{Provider: "Acme Health", ICDCode: "A01.0", Disease: "Typhoid", Amount: decimal.RequireFromString("250")},
		},
		nil,
	)
}

func testPatient(name, icd string, doctorID uuid.UUID, provider string) *patient.Patient {
	return &patient.Patient{
		ID:                patient.DeriveID(name, name+"@example.com", "0244000000"),
		Name:              name,
		ICDCode:           icd,
		AssignedDoctorID:  doctorID,
		InsuranceProvider: provider,
	}
}

func TestResolveDefaultRate(t *testing.T) {
	snap := testSnapshot()
	p := testPatient("Alice", "B54", drKelvin, "Medicaid")

	res := Resolve(p, snap)
	if !res.DoctorCharge.Equal(decimal.RequireFromString("150")) {
		t.Errorf("DoctorCharge = %s, want 150", res.DoctorCharge)
	}
	if !res.InsurancePays.Equal(decimal.RequireFromString("120")) {
		t.Errorf("InsurancePays = %s, want 120", res.InsurancePays)
	}
	if !res.PatientPays.Equal(decimal.RequireFromString("30")) {
		t.Errorf("PatientPays = %s, want 30", res.PatientPays)
	}
	if len(res.Unresolved) != 0 {
		t.Errorf("Unresolved = %v, want none", res.Unresolved)
	}
}

func TestResolveOverridePrecedence(t *testing.T) {
	snap := testSnapshot()
	p := testPatient("Alice", "B54", drKelvin, "Medicaid")
	snap.Overrides[OverrideKey{PatientID: p.ID, DoctorID: drKelvin, ICDCode: "B54"}] =
		decimal.RequireFromString("200")

	res := Resolve(p, snap)
	if !res.DoctorCharge.Equal(decimal.RequireFromString("200")) {
		t.Errorf("DoctorCharge = %s, want the override 200", res.DoctorCharge)
	}
	if !res.PatientPays.Equal(decimal.RequireFromString("80")) {
		t.Errorf("PatientPays = %s, want 80", res.PatientPays)
	}
}

func TestResolveOverrideScopedToKey(t *testing.T) {
	snap := testSnapshot()
	alice := testPatient("Alice", "B54", drKelvin, "Medicaid")
	snap.Overrides[OverrideKey{PatientID: alice.ID, DoctorID: drKelvin, ICDCode: "B54"}] =
		decimal.RequireFromString("200")

	// Another patient with the same doctor and diagnosis keeps the default.
	bob := testPatient("Bob", "B54", drKelvin, "Medicaid")
	res := Resolve(bob, snap)
	if !res.DoctorCharge.Equal(decimal.RequireFromString("150")) {
		t.Errorf("DoctorCharge = %s, want the default 150", res.DoctorCharge)
	}
}

func TestResolveUnresolvedDoctorRate(t *testing.T) {
	snap := testSnapshot()
	p := testPatient("Alice", "A01.0", drNana, "Acme Health") // Nana has no Typhoid rate

	res := Resolve(p, snap)
	if !res.DoctorCharge.IsZero() {
		t.Errorf("DoctorCharge = %s, want 0", res.DoctorCharge)
	}
	if len(res.Unresolved) != 1 || res.Unresolved[0] != UnresolvedDoctorRate {
		t.Errorf("Unresolved = %v", res.Unresolved)
	}
	// Insurer pays more than the zero charge: the balance goes negative and
	// stays negative.
	if !res.PatientPays.Equal(decimal.RequireFromString("-250")) {
		t.Errorf("PatientPays = %s, want -250", res.PatientPays)
	}
}

func TestResolveUnresolvedInsuranceRate(t *testing.T) {
	snap := testSnapshot()
	p := testPatient("Alice", "B54", drKelvin, "Unknown Mutual")

	res := Resolve(p, snap)
	if !res.InsurancePays.IsZero() {
		t.Errorf("InsurancePays = %s, want 0", res.InsurancePays)
	}
	if len(res.Unresolved) != 1 || res.Unresolved[0] != UnresolvedInsuranceRate {
		t.Errorf("Unresolved = %v", res.Unresolved)
	}
	if !res.PatientPays.Equal(decimal.RequireFromString("150")) {
		t.Errorf("PatientPays = %s, want 150", res.PatientPays)
	}
}

func TestResolveBothUnresolved(t *testing.T) {
	snap := testSnapshot()
	p := testPatient("Alice", "J10", drKelvin, "Unknown Mutual")

	res := Resolve(p, snap)
	if len(res.Unresolved) != 2 {
		t.Fatalf("Unresolved = %v, want both flags", res.Unresolved)
	}
	if !res.PatientPays.IsZero() {
		t.Errorf("PatientPays = %s, want 0", res.PatientPays)
	}
}
