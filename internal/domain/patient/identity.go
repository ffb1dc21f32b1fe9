package patient

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// idLen is the number of hex characters kept from the hash. 10 hex chars is
// 40 bits, which keeps ids short enough to read aloud but means birthday
// collisions become likely around a million patients. Register guards
// against a collision mapping two different identity triples to one id.
const idLen = 10

// DeriveID computes the stable patient identifier from the identity triple.
// Name and email are case-insensitive; phone is taken as given. The same
// triple always yields the same id.
func DeriveID(name, email, phone string) string {
	raw := fmt.Sprintf("%s-%s-%s", strings.ToLower(name), strings.ToLower(email), phone)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])[:idLen]
}

// sameIdentity reports whether the stored patient was produced by the given
// identity triple, under the same case rules as DeriveID.
func sameIdentity(p *Patient, name, email, phone string) bool {
	return strings.EqualFold(p.Name, name) &&
		strings.EqualFold(p.Email, email) &&
		p.Phone == phone
}
