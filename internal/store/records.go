// Package store implements the clinic's data layer: the patient/incident
// record store, the login session store, and the derived dashboard views.
//
// Both stores hold their collections in memory and rewrite the whole affected
// collection to the injected storage.Store after every mutation. Reads are
// in-memory lookups returning copies, so callers can never mutate store state
// behind its back.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"dental-clinic-server/internal/models"
	"dental-clinic-server/internal/storage"
)

// Persisted entry names. Collections are JSON arrays, the session entry is a
// single JSON object.
const (
	KeyPatients  = "patients"
	KeyIncidents = "incidents"
	KeyUsers     = "users"
	KeySession   = "currentUser"
)

// RecordStore is the sole authority for the patient and incident collections.
// Constructed once at process start and shared by reference; safe for
// concurrent handlers within this process. Nothing locks the persistence
// medium across processes (last writer wins).
type RecordStore struct {
	mu        sync.RWMutex
	storage   storage.Store
	patients  []models.Patient
	incidents []models.Incident
}

// NewRecordStore hydrates both collections from st. A missing entry is seeded
// with the demo dataset and written back immediately; a malformed entry is
// logged and reseeded rather than failing startup.
func NewRecordStore(st storage.Store) (*RecordStore, error) {
	s := &RecordStore{storage: st}

	patients, err := hydrate(st, KeyPatients, demoPatients)
	if err != nil {
		return nil, err
	}
	incidents, err := hydrate(st, KeyIncidents, demoIncidents)
	if err != nil {
		return nil, err
	}

	s.patients = patients
	s.incidents = incidents
	return s, nil
}

// hydrate reads one collection entry, seeding it when absent or unreadable.
func hydrate[T any](st storage.Store, key string, seed func() []T) ([]T, error) {
	raw, err := st.Read(key)
	if err == storage.ErrKeyNotFound {
		return reseed(st, key, seed)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("store: malformed %s entry, resetting to demo data: %v", key, err)
		return reseed(st, key, seed)
	}
	return items, nil
}

func reseed[T any](st storage.Store, key string, seed func() []T) ([]T, error) {
	items := seed()
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s seed: %w", key, err)
	}
	if err := st.Write(key, raw); err != nil {
		return nil, fmt.Errorf("failed to seed %s: %w", key, err)
	}
	return items, nil
}

// newID returns a store-generated identifier. UUIDs stay unique even for
// back-to-back calls within the same millisecond.
func newID() string {
	return uuid.New().String()
}

// Patients returns a copy of the patient collection in insertion order.
func (s *RecordStore) Patients() []models.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Patient{}, s.patients...)
}

// Incidents returns a copy of the incident collection in insertion order.
func (s *RecordStore) Incidents() []models.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyIncidents(s.incidents)
}

// Patient looks up a single patient by id.
func (s *RecordStore) Patient(id string) (models.Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.patients {
		if p.ID == id {
			return p, true
		}
	}
	return models.Patient{}, false
}

// Incident looks up a single incident by id.
func (s *RecordStore) Incident(id string) (models.Incident, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, in := range s.incidents {
		if in.ID == id {
			return copyIncident(in), true
		}
	}
	return models.Incident{}, false
}

// AddPatient assigns a new id, appends the patient and persists the
// collection. The stored record is returned.
func (s *RecordStore) AddPatient(p models.Patient) (models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = newID()
	s.patients = append(s.patients, p)
	if err := s.persistPatients(); err != nil {
		return models.Patient{}, err
	}
	return p, nil
}

// UpdatePatient merges the patch onto an existing patient. Returns false
// without touching anything when the id is absent.
func (s *RecordStore) UpdatePatient(id string, patch models.PatientPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.patients {
		if s.patients[i].ID == id {
			patch.Apply(&s.patients[i])
			if err := s.persistPatients(); err != nil {
				return true, err
			}
			return true, nil
		}
	}
	return false, nil
}

// DeletePatient removes the patient and every incident referencing it.
// Returns false when the id is absent. The two collections are persisted one
// after the other; there is no transaction spanning both.
func (s *RecordStore) DeletePatient(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	kept := s.patients[:0]
	for _, p := range s.patients {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return false, nil
	}
	s.patients = kept

	remaining := make([]models.Incident, 0, len(s.incidents))
	for _, in := range s.incidents {
		if in.PatientID != id {
			remaining = append(remaining, in)
		}
	}
	s.incidents = remaining

	if err := s.persistPatients(); err != nil {
		return true, err
	}
	if err := s.persistIncidents(); err != nil {
		return true, err
	}
	return true, nil
}

// AddIncident assigns a new id, appends the incident and persists the
// collection. A nil attachment list is normalized to an empty one so the
// persisted JSON always carries a files array.
func (s *RecordStore) AddIncident(in models.Incident) (models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ID = newID()
	if in.Files == nil {
		in.Files = []models.FileAttachment{}
	}
	s.incidents = append(s.incidents, in)
	if err := s.persistIncidents(); err != nil {
		return models.Incident{}, err
	}
	return copyIncident(in), nil
}

// UpdateIncident merges the patch onto an existing incident. Returns false
// without touching anything when the id is absent.
func (s *RecordStore) UpdateIncident(id string, patch models.IncidentPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.incidents {
		if s.incidents[i].ID == id {
			patch.Apply(&s.incidents[i])
			if err := s.persistIncidents(); err != nil {
				return true, err
			}
			return true, nil
		}
	}
	return false, nil
}

// DeleteIncident removes a single incident. Returns false when the id is absent.
func (s *RecordStore) DeleteIncident(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, in := range s.incidents {
		if in.ID == id {
			s.incidents = append(s.incidents[:i], s.incidents[i+1:]...)
			if err := s.persistIncidents(); err != nil {
				return true, err
			}
			return true, nil
		}
	}
	return false, nil
}

// AddIncidentFile appends an attachment to an incident's file list,
// preserving order. Returns false when the incident is absent.
func (s *RecordStore) AddIncidentFile(id string, f models.FileAttachment) (models.Incident, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.incidents {
		if s.incidents[i].ID == id {
			s.incidents[i].Files = append(s.incidents[i].Files, f)
			if err := s.persistIncidents(); err != nil {
				return models.Incident{}, true, err
			}
			return copyIncident(s.incidents[i]), true, nil
		}
	}
	return models.Incident{}, false, nil
}

// RemoveIncidentFile removes the attachment at the given position. Returns
// false when the incident is absent or the index is out of range.
func (s *RecordStore) RemoveIncidentFile(id string, index int) (models.Incident, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.incidents {
		if s.incidents[i].ID == id {
			files := s.incidents[i].Files
			if index < 0 || index >= len(files) {
				return models.Incident{}, false, nil
			}
			s.incidents[i].Files = append(files[:index], files[index+1:]...)
			if err := s.persistIncidents(); err != nil {
				return models.Incident{}, true, err
			}
			return copyIncident(s.incidents[i]), true, nil
		}
	}
	return models.Incident{}, false, nil
}

// PatientIncidents returns all incidents referencing patientID in collection
// order. Recomputed on every call; never cached.
func (s *RecordStore) PatientIncidents(patientID string) []models.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []models.Incident{}
	for _, in := range s.incidents {
		if in.PatientID == patientID {
			matches = append(matches, copyIncident(in))
		}
	}
	return matches
}

func (s *RecordStore) persistPatients() error {
	raw, err := json.Marshal(s.patients)
	if err != nil {
		return fmt.Errorf("failed to encode patients: %w", err)
	}
	if err := s.storage.Write(KeyPatients, raw); err != nil {
		return fmt.Errorf("failed to persist patients: %w", err)
	}
	return nil
}

func (s *RecordStore) persistIncidents() error {
	raw, err := json.Marshal(s.incidents)
	if err != nil {
		return fmt.Errorf("failed to encode incidents: %w", err)
	}
	if err := s.storage.Write(KeyIncidents, raw); err != nil {
		return fmt.Errorf("failed to persist incidents: %w", err)
	}
	return nil
}

// copyIncident deep-copies the attachment slice and the cost pointer so
// callers cannot reach into the store's backing data.
func copyIncident(in models.Incident) models.Incident {
	out := in
	if in.Files != nil {
		out.Files = append([]models.FileAttachment{}, in.Files...)
	}
	if in.Cost != nil {
		cost := *in.Cost
		out.Cost = &cost
	}
	return out
}

func copyIncidents(incidents []models.Incident) []models.Incident {
	out := make([]models.Incident, len(incidents))
	for i, in := range incidents {
		out[i] = copyIncident(in)
	}
	return out
}
