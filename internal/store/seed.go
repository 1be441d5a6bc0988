package store

import "dental-clinic-server/internal/models"

// Demo dataset written on first start (or after a corrupted collection is
// reset). Returned as fresh slices so callers can never mutate a shared copy.

func demoPatients() []models.Patient {
	return []models.Patient{
		{
			ID:         "p1",
			Name:       "AnilReddy",
			DOB:        "2001-05-10",
			Contact:    "8767854321",
			Email:      "anil@entnt.in",
			HealthInfo: "No allergies",
			Address:    "btm, bangalore",
		},
		{
			ID:         "p2",
			Name:       "reshu",
			DOB:        "1985-08-15",
			Contact:    "9877865091",
			Email:      "reshu@entnt.in",
			HealthInfo: "Allergic to penicillin",
			Address:    "nagavara, bangalore",
		},
	}
}

func demoIncidents() []models.Incident {
	cleaningCost := 120.0
	rootCanalCost := 280.0
	return []models.Incident{
		{
			ID:              "i1",
			PatientID:       "p1",
			Title:           "Routine Cleaning",
			Description:     "Regular dental cleaning and checkup",
			Comments:        "Good oral hygiene",
			AppointmentDate: "2025-07-08T10:00:00",
			Cost:            &cleaningCost,
			Treatment:       "Professional cleaning, fluoride treatment",
			Status:          models.StatusScheduled,
			Files:           []models.FileAttachment{},
		},
		{
			ID:                  "i2",
			PatientID:           "p1",
			Title:               "Toothache Treatment",
			Description:         "Upper molar pain treatment",
			Comments:            "Sensitive to cold",
			AppointmentDate:     "2025-07-01T10:00:00",
			Cost:                &rootCanalCost,
			Treatment:           "Root canal therapy",
			Status:              models.StatusCompleted,
			NextAppointmentDate: "2025-07-15T14:00:00",
			Files:               []models.FileAttachment{},
		},
		{
			ID:              "i3",
			PatientID:       "p2",
			Title:           "Dental Implant Consultation",
			Description:     "Consultation for dental implant",
			Comments:        "Missing tooth replacement",
			AppointmentDate: "2025-07-10T15:00:00",
			Status:          models.StatusScheduled,
			Files:           []models.FileAttachment{},
		},
	}
}

func demoUsers() []models.User {
	return []models.User{
		{ID: "1", Role: models.RoleAdmin, Email: "admin@entnt.in", Password: "admin123"},
		{ID: "2", Role: models.RolePatient, Email: "john@entnt.in", Password: "patient123", PatientID: "p1"},
		{ID: "3", Role: models.RolePatient, Email: "jane@entnt.in", Password: "patient123", PatientID: "p2"},
	}
}
