package handlers

import (
	"encoding/base64"
	"strconv"

	"github.com/gin-gonic/gin"

	"dental-clinic-server/internal/middleware"
	"dental-clinic-server/internal/models"
	"dental-clinic-server/internal/store"
	"dental-clinic-server/internal/utils"
)

// IncidentHandler handles incident (appointment / treatment episode) requests.
type IncidentHandler struct {
	Records *store.RecordStore
}

// NewIncidentHandler creates a new IncidentHandler.
func NewIncidentHandler(records *store.RecordStore) *IncidentHandler {
	return &IncidentHandler{Records: records}
}

// CreateIncidentRequest represents the request body for creating an incident.
// The referenced patient is not checked for existence; the cascade on patient
// deletion is the only referential cleanup the store performs.
type CreateIncidentRequest struct {
	PatientID           string                  `json:"patientId" binding:"required"`
	Title               string                  `json:"title" binding:"required"`
	Description         string                  `json:"description"`
	Comments            string                  `json:"comments"`
	AppointmentDate     string                  `json:"appointmentDate" binding:"required"`
	Cost                *float64                `json:"cost"`
	Treatment           string                  `json:"treatment"`
	Status              models.IncidentStatus   `json:"status"`
	NextAppointmentDate string                  `json:"nextAppointmentDate"`
	Files               []models.FileAttachment `json:"files"`
}

// AttachFileRequest represents the request body for attaching a file to an
// incident. Data is the raw file content, base64-encoded by the client.
type AttachFileRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
	Data string `json:"data" binding:"required"`
}

// ListIncidents returns incidents visible to the requesting identity: all of
// them for admins, only their own for patients.
func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	role, _ := middleware.GetUserRoleFromContext(c)
	if role == models.RoleAdmin {
		utils.Success(c, "Incidents fetched successfully", h.Records.Incidents())
		return
	}

	patientID, _ := middleware.GetPatientIDFromContext(c)
	if patientID == "" {
		utils.Forbidden(c, "No patient record is linked to this identity")
		return
	}
	utils.Success(c, "Incidents fetched successfully", h.Records.PatientIncidents(patientID))
}

// GetIncidentByID returns a single incident.
func (h *IncidentHandler) GetIncidentByID(c *gin.Context) {
	incident, ok := h.Records.Incident(c.Param("id"))
	if !ok {
		utils.NotFound(c, "Incident not found")
		return
	}

	if !canAccessPatient(c, incident.PatientID) {
		utils.Forbidden(c, "You are not authorized to view this incident")
		return
	}

	utils.Success(c, "Incident fetched successfully", incident)
}

// CreateIncident adds a new incident; the store assigns the id. Status
// defaults to Scheduled when the client omits it.
func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	var req CreateIncidentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Status == "" {
		req.Status = models.StatusScheduled
	}

	incident, err := h.Records.AddIncident(models.Incident{
		PatientID:           req.PatientID,
		Title:               req.Title,
		Description:         req.Description,
		Comments:            req.Comments,
		AppointmentDate:     req.AppointmentDate,
		Cost:                req.Cost,
		Treatment:           req.Treatment,
		Status:              req.Status,
		NextAppointmentDate: req.NextAppointmentDate,
		Files:               req.Files,
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create incident: "+err.Error())
		return
	}

	utils.Created(c, "Incident created successfully", incident)
}

// UpdateIncident merges a partial update onto an existing incident. Any
// status value may be set directly; there is no transition graph.
func (h *IncidentHandler) UpdateIncident(c *gin.Context) {
	incidentID := c.Param("id")

	var patch models.IncidentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	found, err := h.Records.UpdateIncident(incidentID, patch)
	if err != nil {
		utils.InternalServerError(c, "Failed to update incident: "+err.Error())
		return
	}
	if !found {
		utils.NotFound(c, "Incident not found")
		return
	}

	incident, _ := h.Records.Incident(incidentID)
	utils.Success(c, "Incident updated successfully", incident)
}

// DeleteIncident removes a single incident.
func (h *IncidentHandler) DeleteIncident(c *gin.Context) {
	found, err := h.Records.DeleteIncident(c.Param("id"))
	if err != nil {
		utils.InternalServerError(c, "Failed to delete incident: "+err.Error())
		return
	}
	if !found {
		utils.NotFound(c, "Incident not found")
		return
	}

	utils.Success(c, "Incident deleted successfully", nil)
}

// AttachFile embeds an uploaded file in the incident as a data URL, appended
// to the end of the attachment list.
func (h *IncidentHandler) AttachFile(c *gin.Context) {
	var req AttachFileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		utils.BadRequest(c, "Invalid base64 file content: "+err.Error())
		return
	}

	attachment := models.FileAttachment{
		Name: req.Name,
		URL:  utils.EncodeDataURL(req.Type, content),
		Type: req.Type,
	}

	incident, found, err := h.Records.AddIncidentFile(c.Param("id"), attachment)
	if err != nil {
		utils.InternalServerError(c, "Failed to attach file: "+err.Error())
		return
	}
	if !found {
		utils.NotFound(c, "Incident not found")
		return
	}

	utils.Created(c, "File attached successfully", incident)
}

// RemoveFile deletes the attachment at the given position in the incident's
// file list.
func (h *IncidentHandler) RemoveFile(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.BadRequest(c, "Invalid attachment index")
		return
	}

	incident, found, err := h.Records.RemoveIncidentFile(c.Param("id"), index)
	if err != nil {
		utils.InternalServerError(c, "Failed to remove file: "+err.Error())
		return
	}
	if !found {
		utils.NotFound(c, "Incident or attachment not found")
		return
	}

	utils.Success(c, "File removed successfully", incident)
}
