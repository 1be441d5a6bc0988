package handlers

import (
	"github.com/gin-gonic/gin"

	"dental-clinic-server/internal/middleware"
	"dental-clinic-server/internal/models"
	"dental-clinic-server/internal/store"
	"dental-clinic-server/internal/utils"
)

// PatientHandler handles patient record requests.
type PatientHandler struct {
	Records *store.RecordStore
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(records *store.RecordStore) *PatientHandler {
	return &PatientHandler{Records: records}
}

// CreatePatientRequest represents the request body for creating a patient.
// The store accepts free-form values for everything beyond the name; date and
// phone formats are a client concern.
type CreatePatientRequest struct {
	Name       string `json:"name" binding:"required"`
	DOB        string `json:"dob"`
	Contact    string `json:"contact"`
	Email      string `json:"email"`
	HealthInfo string `json:"healthInfo"`
	Address    string `json:"address"`
}

// canAccessPatient reports whether the requesting identity may read the given
// patient record: admins always, patients only their own.
func canAccessPatient(c *gin.Context, patientID string) bool {
	role, _ := middleware.GetUserRoleFromContext(c)
	if role == models.RoleAdmin {
		return true
	}
	ownID, _ := middleware.GetPatientIDFromContext(c)
	return ownID != "" && ownID == patientID
}

// ListPatients returns the full patient collection (admin only by route).
func (h *PatientHandler) ListPatients(c *gin.Context) {
	utils.Success(c, "Patients fetched successfully", h.Records.Patients())
}

// GetPatientByID returns a single patient record.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patientID := c.Param("id")

	if !canAccessPatient(c, patientID) {
		utils.Forbidden(c, "You are not authorized to view this patient record")
		return
	}

	patient, ok := h.Records.Patient(patientID)
	if !ok {
		utils.NotFound(c, "Patient not found")
		return
	}

	utils.Success(c, "Patient fetched successfully", patient)
}

// CreatePatient adds a new patient record; the store assigns the id.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, err := h.Records.AddPatient(models.Patient{
		Name:       req.Name,
		DOB:        req.DOB,
		Contact:    req.Contact,
		Email:      req.Email,
		HealthInfo: req.HealthInfo,
		Address:    req.Address,
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create patient: "+err.Error())
		return
	}

	utils.Created(c, "Patient created successfully", patient)
}

// UpdatePatient merges a partial update onto an existing patient.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	patientID := c.Param("id")

	var patch models.PatientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	found, err := h.Records.UpdatePatient(patientID, patch)
	if err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}
	if !found {
		utils.NotFound(c, "Patient not found")
		return
	}

	patient, _ := h.Records.Patient(patientID)
	utils.Success(c, "Patient updated successfully", patient)
}

// DeletePatient removes a patient and, by cascade, all their incidents.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	patientID := c.Param("id")

	found, err := h.Records.DeletePatient(patientID)
	if err != nil {
		utils.InternalServerError(c, "Failed to delete patient: "+err.Error())
		return
	}
	if !found {
		utils.NotFound(c, "Patient not found")
		return
	}

	utils.Success(c, "Patient and related incidents deleted successfully", nil)
}

// GetPatientIncidents returns every incident referencing the patient, in
// collection order.
func (h *PatientHandler) GetPatientIncidents(c *gin.Context) {
	patientID := c.Param("id")

	if !canAccessPatient(c, patientID) {
		utils.Forbidden(c, "You are not authorized to view this patient's incidents")
		return
	}

	utils.Success(c, "Incidents fetched successfully", h.Records.PatientIncidents(patientID))
}
