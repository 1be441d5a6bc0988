package models

// Patient represents a clinic patient record. Date of birth is kept as the
// ISO string the client submitted; the store does not validate field formats,
// so a round trip through persistence preserves values byte for byte.
type Patient struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DOB        string `json:"dob"`
	Contact    string `json:"contact"`
	Email      string `json:"email"`
	HealthInfo string `json:"healthInfo"`
	Address    string `json:"address"`
}

// PatientPatch is a partial update of a Patient. Nil fields are left
// unchanged; a non-nil field overwrites, including to the empty string.
type PatientPatch struct {
	Name       *string `json:"name"`
	DOB        *string `json:"dob"`
	Contact    *string `json:"contact"`
	Email      *string `json:"email"`
	HealthInfo *string `json:"healthInfo"`
	Address    *string `json:"address"`
}

// Apply merges the patch onto the patient in place.
func (p PatientPatch) Apply(target *Patient) {
	if p.Name != nil {
		target.Name = *p.Name
	}
	if p.DOB != nil {
		target.DOB = *p.DOB
	}
	if p.Contact != nil {
		target.Contact = *p.Contact
	}
	if p.Email != nil {
		target.Email = *p.Email
	}
	if p.HealthInfo != nil {
		target.HealthInfo = *p.HealthInfo
	}
	if p.Address != nil {
		target.Address = *p.Address
	}
}
