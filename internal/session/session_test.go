package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memStore(t *testing.T, now time.Time) *badgerStore {
	t.Helper()
	st, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	bs := st.(*badgerStore)
	bs.now = func() time.Time { return now }
	return bs
}

func TestLoadWithoutSession(t *testing.T) {
	st := memStore(t, time.Now())
	_, err := st.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSaveLoadClear(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	st := memStore(t, now)

	in := Session{
		Token:        "tok",
		ExpiresAtUTC: "2026-05-02T12:00:00Z",
		User:         json.RawMessage(`{"idUsuario":"ana","nombreUsuario":"Ana"}`),
	}
	require.NoError(t, st.Save(in))

	out, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", out.Token)
	assert.Equal(t, in.ExpiresAtUTC, out.ExpiresAtUTC)
	assert.JSONEq(t, string(in.User), string(out.User))
	assert.Equal(t, "ana", out.UserID())

	require.NoError(t, st.Clear())
	_, err = st.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestExpiredSessionIsCleared(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	st := memStore(t, now)

	require.NoError(t, st.Save(Session{Token: "tok", ExpiresAtUTC: "2026-05-01T12:00:00Z"}))

	_, err := st.Load()
	assert.ErrorIs(t, err, ErrExpired)

	_, err = st.Load()
	assert.ErrorIs(t, err, ErrNoSession, "expired entries are removed")
}

func TestSessionWithoutExpiry(t *testing.T) {
	st := memStore(t, time.Now())
	require.NoError(t, st.Save(Session{Token: "tok"}))

	out, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, "", out.UserID())
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, st.Save(Session{Token: "disk", User: json.RawMessage(`{"idComprador":"b7"}`)}))
	require.NoError(t, st.Close())

	st, err = Open(dir)
	require.NoError(t, err)
	defer st.Close()
	out, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, "disk", out.Token)
	assert.Equal(t, "b7", out.UserID())
}

func TestExpiresAtFormats(t *testing.T) {
	at, ok := Session{ExpiresAtUTC: "2026-01-02T03:04:05.123Z"}.ExpiresAt()
	require.True(t, ok)
	assert.Equal(t, 2026, at.Year())

	at, ok = Session{ExpiresAtUTC: "2026-01-02T03:04:05"}.ExpiresAt()
	require.True(t, ok)
	assert.Equal(t, time.UTC, at.Location())

	_, ok = Session{ExpiresAtUTC: "mañana"}.ExpiresAt()
	assert.False(t, ok)
	assert.False(t, Session{ExpiresAtUTC: "mañana"}.Expired(time.Now()))
}

func TestUserIDResolution(t *testing.T) {
	cases := map[string]string{
		`{"user":{"idUsuario":"nested"},"idUsuario":"top"}`:  "nested",
		`{"user":{"idComprador":"nb"},"idUsuario":"top"}`:    "nb",
		`{"user":{"nombreUsuario":"Ana"},"idUsuario":"top"}`: "",
		`{"idUsuario":"top","idComprador":"b"}`:              "top",
		`{"idComprador":"b"}`:                                "b",
		`{"user":{"idComprador":"nb"}}`:                      "nb",
		`"not an object"`:                                    "",
		`null`:                                               "",
	}
	for raw, want := range cases {
		s := Session{User: json.RawMessage(raw)}
		assert.Equal(t, want, s.UserID(), raw)
	}
}

func TestProfileUnwrapsNestedUser(t *testing.T) {
	s := Session{User: json.RawMessage(`{"user":{"idUsuario":"ana","nombreUsuario":"Ana"}}`)}
	assert.Equal(t, "Ana", s.Profile().DisplayName())

	s = Session{User: json.RawMessage(`{"idUsuario":"leo"}`)}
	assert.Equal(t, "leo", s.Profile().DisplayName())
}
