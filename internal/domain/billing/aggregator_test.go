package billing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/medbill/medbill/internal/domain/patient"
)

func testPatients() []*patient.Patient {
	return []*patient.Patient{
		testPatient("Alice", "B54", drKelvin, "Medicaid"),
		testPatient("Bob", "A01.0", drKelvin, "Acme Health"),
		testPatient("Cara", "B54", drNana, "Medicaid"),
	}
}

func TestAggregatePreservesOrder(t *testing.T) {
	ledger := Aggregate(testPatients(), testSnapshot(), Filter{})

	if len(ledger.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(ledger.Rows))
	}
	for i, want := range []string{"Alice", "Bob", "Cara"} {
		if ledger.Rows[i].PatientName != want {
			t.Errorf("row %d = %q, want %q", i, ledger.Rows[i].PatientName, want)
		}
	}
	if ledger.Rows[0].Doctor != "Kelvin" || ledger.Rows[2].Doctor != "Nana" {
		t.Errorf("doctor names = %q, %q", ledger.Rows[0].Doctor, ledger.Rows[2].Doctor)
	}
}

func TestAggregateTotals(t *testing.T) {
	ledger := Aggregate(testPatients(), testSnapshot(), Filter{})

	// Charges 150 + 200 + 140; insurance 120 + 250 + 120.
	if !ledger.Totals.DoctorCharge.Equal(decimal.RequireFromString("490")) {
		t.Errorf("DoctorCharge total = %s, want 490", ledger.Totals.DoctorCharge)
	}
	if !ledger.Totals.InsurancePays.Equal(decimal.RequireFromString("490")) {
		t.Errorf("InsurancePays total = %s, want 490", ledger.Totals.InsurancePays)
	}
	if !ledger.Totals.PatientPays.IsZero() {
		t.Errorf("PatientPays total = %s, want 0", ledger.Totals.PatientPays)
	}

	// Totals always equal the column sums of the kept rows.
	var charge decimal.Decimal
	for _, row := range ledger.Rows {
		charge = charge.Add(row.DoctorCharge)
	}
	if !charge.Equal(ledger.Totals.DoctorCharge) {
		t.Errorf("row sum %s != total %s", charge, ledger.Totals.DoctorCharge)
	}
}

func TestAggregateFilters(t *testing.T) {
	patients := testPatients()
	snap := testSnapshot()

	t.Run("ByDoctor", func(t *testing.T) {
		ledger := Aggregate(patients, snap, Filter{Doctor: "Kelvin"})
		if len(ledger.Rows) != 2 {
			t.Fatalf("got %d rows, want 2", len(ledger.Rows))
		}
		if !ledger.Totals.DoctorCharge.Equal(decimal.RequireFromString("350")) {
			t.Errorf("DoctorCharge total = %s, want 350", ledger.Totals.DoctorCharge)
		}
	})

	t.Run("ByInsurer", func(t *testing.T) {
		ledger := Aggregate(patients, snap, Filter{Insurer: "Medicaid"})
		if len(ledger.Rows) != 2 {
			t.Fatalf("got %d rows, want 2", len(ledger.Rows))
		}
	})

	t.Run("ByPatient", func(t *testing.T) {
		ledger := Aggregate(patients, snap, Filter{Patient: "Bob"})
		if len(ledger.Rows) != 1 || ledger.Rows[0].PatientName != "Bob" {
			t.Fatalf("rows = %+v", ledger.Rows)
		}
	})

	t.Run("Combined", func(t *testing.T) {
		ledger := Aggregate(patients, snap, Filter{Doctor: "Kelvin", Insurer: "Medicaid"})
		if len(ledger.Rows) != 1 || ledger.Rows[0].PatientName != "Alice" {
			t.Fatalf("rows = %+v", ledger.Rows)
		}
	})

	t.Run("AllMeansUnfiltered", func(t *testing.T) {
		ledger := Aggregate(patients, snap, Filter{Doctor: FilterAll, Patient: FilterAll, Insurer: FilterAll})
		if len(ledger.Rows) != 3 {
			t.Fatalf("got %d rows, want 3", len(ledger.Rows))
		}
	})

	t.Run("NoMatch", func(t *testing.T) {
		ledger := Aggregate(patients, snap, Filter{Doctor: "Nobody"})
		if len(ledger.Rows) != 0 {
			t.Fatalf("got %d rows, want 0", len(ledger.Rows))
		}
		if !ledger.Totals.DoctorCharge.IsZero() {
			t.Errorf("DoctorCharge total = %s, want 0", ledger.Totals.DoctorCharge)
		}
	})
}

func TestAggregateUnknownDoctorName(t *testing.T) {
	patients := testPatients()
	snap := testSnapshot()
	delete(snap.DoctorNames, drNana)

	ledger := Aggregate(patients, snap, Filter{})
	if ledger.Rows[2].Doctor != "Unknown" {
		t.Errorf("Doctor = %q, want Unknown", ledger.Rows[2].Doctor)
	}
}
