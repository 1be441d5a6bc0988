package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"dental-clinic-server/internal/models"
	"dental-clinic-server/internal/store"
	"dental-clinic-server/internal/utils"
)

// DashboardHandler serves the derived views over the record store: KPI
// aggregation, upcoming appointments, top patients and the monthly calendar.
// Everything is recomputed from a fresh snapshot per request.
type DashboardHandler struct {
	Records *store.RecordStore
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(records *store.RecordStore) *DashboardHandler {
	return &DashboardHandler{Records: records}
}

// GetStats returns the KPI aggregation.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats := store.ComputeStats(h.Records.Patients(), h.Records.Incidents())
	utils.Success(c, "Stats fetched successfully", stats)
}

// GetUpcoming returns the next scheduled appointments, soonest first.
// Defaults to the dashboard's top 10.
func (h *DashboardHandler) GetUpcoming(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 0 {
		utils.BadRequest(c, "Invalid limit")
		return
	}

	upcoming := store.UpcomingAppointments(h.Records.Incidents(), time.Now(), limit)
	utils.Success(c, "Upcoming appointments fetched successfully", upcoming)
}

// GetTopPatients returns patients ranked by visit count. Defaults to the
// dashboard's top 5.
func (h *DashboardHandler) GetTopPatients(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 0 {
		utils.BadRequest(c, "Invalid limit")
		return
	}

	ranked := store.TopPatients(h.Records.Patients(), h.Records.Incidents(), limit)
	utils.Success(c, "Top patients fetched successfully", ranked)
}

// CalendarResponse represents one month of bucketed appointments.
type CalendarResponse struct {
	Year      int                             `json:"year"`
	Month     int                             `json:"month"`
	Incidents []models.Incident               `json:"incidents"`
	Days      map[int][]models.Incident       `json:"days"`
}

// GetCalendar buckets the viewed month's incidents by calendar day. Year and
// month default to the current month.
func (h *DashboardHandler) GetCalendar(c *gin.Context) {
	now := time.Now()

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		utils.BadRequest(c, "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		utils.BadRequest(c, "Invalid month")
		return
	}

	incidents := h.Records.Incidents()
	utils.Success(c, "Calendar fetched successfully", CalendarResponse{
		Year:      year,
		Month:     month,
		Incidents: store.MonthIncidents(incidents, year, time.Month(month)),
		Days:      store.CalendarDays(incidents, year, time.Month(month)),
	})
}
