package insurance

import "github.com/shopspring/decimal"

// Rate is an insurer's reimbursement for one diagnosis code. At most one Rate
// exists per (provider, icd_code); writes replace.
type Rate struct {
	Provider string          `db:"provider" json:"provider"`
	ICDCode  string          `db:"icd_code" json:"icd_code"`
	Disease  string          `db:"disease" json:"disease"`
	Amount   decimal.Decimal `db:"rate" json:"rate"`
}
