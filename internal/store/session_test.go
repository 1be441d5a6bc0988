package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dental-clinic-server/internal/models"
	"dental-clinic-server/internal/storage"
)

func newTestSessionStore(t *testing.T) (*SessionStore, *storage.MemoryStore) {
	t.Helper()
	st := storage.NewMemoryStore()
	sessions, err := NewSessionStore(st)
	require.NoError(t, err)
	return sessions, st
}

func TestLoginWithSeededAdmin(t *testing.T) {
	sessions, st := newTestSessionStore(t)

	assert.True(t, sessions.Login("admin@entnt.in", "admin123"))

	user, ok := sessions.Current()
	require.True(t, ok)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, sessions.IsAdmin())
	assert.False(t, sessions.IsPatient())

	// The session is persisted for the next start.
	_, err := st.Read(KeySession)
	assert.NoError(t, err)
}

func TestLoginFailureLeavesSessionAnonymous(t *testing.T) {
	sessions, st := newTestSessionStore(t)

	assert.False(t, sessions.Login("admin@entnt.in", "wrong"))
	assert.False(t, sessions.Login("nobody@entnt.in", "admin123"))

	_, ok := sessions.Current()
	assert.False(t, ok)
	assert.False(t, sessions.IsAdmin())
	assert.False(t, sessions.IsPatient())

	_, err := st.Read(KeySession)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestPatientRoleLinksPatientRecord(t *testing.T) {
	sessions, _ := newTestSessionStore(t)

	require.True(t, sessions.Login("john@entnt.in", "patient123"))
	user, ok := sessions.Current()
	require.True(t, ok)
	assert.Equal(t, models.RolePatient, user.Role)
	assert.Equal(t, "p1", user.PatientID)
	assert.True(t, sessions.IsPatient())
	assert.False(t, sessions.IsAdmin())
}

func TestLogoutClearsSessionAndPersistedEntry(t *testing.T) {
	sessions, st := newTestSessionStore(t)

	require.True(t, sessions.Login("admin@entnt.in", "admin123"))
	sessions.Logout()

	_, ok := sessions.Current()
	assert.False(t, ok)
	_, err := st.Read(KeySession)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	// Logging out while anonymous is fine.
	sessions.Logout()
}

func TestSessionSurvivesRehydration(t *testing.T) {
	st := storage.NewMemoryStore()
	sessions, err := NewSessionStore(st)
	require.NoError(t, err)
	require.True(t, sessions.Login("jane@entnt.in", "patient123"))

	resumed, err := NewSessionStore(st)
	require.NoError(t, err)
	user, ok := resumed.Current()
	require.True(t, ok)
	assert.Equal(t, "jane@entnt.in", user.Email)
	assert.Equal(t, "p2", user.PatientID)
}

func TestMalformedSessionEntryStartsAnonymous(t *testing.T) {
	st := storage.NewMemoryStore()
	require.NoError(t, st.Write(KeySession, []byte("{broken")))

	sessions, err := NewSessionStore(st)
	require.NoError(t, err)
	_, ok := sessions.Current()
	assert.False(t, ok)

	// The broken entry is removed rather than left to fail again.
	_, err = st.Read(KeySession)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestLoginRequiresExactPasswordMatch(t *testing.T) {
	sessions, _ := newTestSessionStore(t)

	assert.False(t, sessions.Login("admin@entnt.in", "ADMIN123"))
	assert.False(t, sessions.Login("admin@entnt.in", "admin123 "))
	assert.True(t, sessions.Login("admin@entnt.in", "admin123"))
}
