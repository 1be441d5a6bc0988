package models

// IncidentStatus represents the status of an incident
type IncidentStatus string

const (
	StatusScheduled IncidentStatus = "Scheduled"
	StatusCompleted IncidentStatus = "Completed"
	StatusCancelled IncidentStatus = "Cancelled"
	StatusPending   IncidentStatus = "Pending"
)

// FileAttachment is a file embedded directly in an incident record. URL is a
// self-contained data URL (data:<mime>;base64,...), so no blob storage exists
// outside the incident collection itself.
type FileAttachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Incident represents a single appointment / treatment episode tied to one
// patient. AppointmentDate and NextAppointmentDate are ISO datetime strings.
// PatientID is not checked against the patient collection at write time; the
// cascade on patient deletion is the only referential cleanup.
type Incident struct {
	ID                  string           `json:"id"`
	PatientID           string           `json:"patientId"`
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	Comments            string           `json:"comments"`
	AppointmentDate     string           `json:"appointmentDate"`
	Cost                *float64         `json:"cost,omitempty"`
	Treatment           string           `json:"treatment,omitempty"`
	Status              IncidentStatus   `json:"status"`
	NextAppointmentDate string           `json:"nextAppointmentDate,omitempty"`
	Files               []FileAttachment `json:"files"`
}

// CostValue returns the cost, or zero when none was recorded.
func (i *Incident) CostValue() float64 {
	if i.Cost == nil {
		return 0
	}
	return *i.Cost
}

// IncidentPatch is a partial update of an Incident. Nil fields are left
// unchanged. Files replaces the whole attachment list when set; the
// append/remove-by-index operations live on the record store.
type IncidentPatch struct {
	PatientID           *string           `json:"patientId"`
	Title               *string           `json:"title"`
	Description         *string           `json:"description"`
	Comments            *string           `json:"comments"`
	AppointmentDate     *string           `json:"appointmentDate"`
	Cost                *float64          `json:"cost"`
	Treatment           *string           `json:"treatment"`
	Status              *IncidentStatus   `json:"status"`
	NextAppointmentDate *string           `json:"nextAppointmentDate"`
	Files               *[]FileAttachment `json:"files"`
}

// Apply merges the patch onto the incident in place.
func (p IncidentPatch) Apply(target *Incident) {
	if p.PatientID != nil {
		target.PatientID = *p.PatientID
	}
	if p.Title != nil {
		target.Title = *p.Title
	}
	if p.Description != nil {
		target.Description = *p.Description
	}
	if p.Comments != nil {
		target.Comments = *p.Comments
	}
	if p.AppointmentDate != nil {
		target.AppointmentDate = *p.AppointmentDate
	}
	if p.Cost != nil {
		cost := *p.Cost
		target.Cost = &cost
	}
	if p.Treatment != nil {
		target.Treatment = *p.Treatment
	}
	if p.Status != nil {
		target.Status = *p.Status
	}
	if p.NextAppointmentDate != nil {
		target.NextAppointmentDate = *p.NextAppointmentDate
	}
	if p.Files != nil {
		target.Files = append([]FileAttachment{}, (*p.Files)...)
	}
}
