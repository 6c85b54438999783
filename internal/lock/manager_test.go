package lock

import (
	"strings"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockUnlockRoundtrip(t *testing.T) {
	m := NewManager()

	info, err := m.Lock("/docs/report.txt", "alice", Request{Scope: ScopeExclusive}, "0", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(info.Token, "opaquelocktoken:"))
	assert.Equal(t, "alice", info.Owner)
	assert.Equal(t, "0", info.Depth)

	_, ok := m.Get("/docs/report.txt")
	assert.True(t, ok)

	require.NoError(t, m.Unlock("/docs/report.txt", info.Token, "alice"))
	_, ok = m.Get("/docs/report.txt")
	assert.False(t, ok)
}

func TestUnlockFabricatedToken(t *testing.T) {
	m := NewManager()
	_, err := m.Lock("/a", "alice", Request{}, "0", "")
	require.NoError(t, err)

	err = m.Unlock("/a", "opaquelocktoken:made-up", "alice")
	assert.ErrorIs(t, err, ErrTokenUnknown)
}

func TestUnlockWrongPrincipal(t *testing.T) {
	m := NewManager()
	info, err := m.Lock("/a", "alice", Request{}, "0", "")
	require.NoError(t, err)

	err = m.Unlock("/a", info.Token, "mallory")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRefreshUnknownToken(t *testing.T) {
	m := NewManager()
	_, err := m.Refresh("/nowhere", "opaquelocktoken:ghost", "Second-60")
	assert.ErrorIs(t, err, ErrTokenUnknown)
}

func TestRefreshExtendsExpiry(t *testing.T) {
	m := NewManager()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	info, err := m.Lock("/a", "alice", Request{}, "0", "Second-60")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Minute), info.Expires)

	now = now.Add(30 * time.Second)
	info, err = m.Refresh("/a", info.Token, "Second-60")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Minute), info.Expires)
}

func TestExpiredLockIsGone(t *testing.T) {
	m := NewManager()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	info, err := m.Lock("/a", "alice", Request{}, "0", "Second-10")
	require.NoError(t, err)

	now = now.Add(time.Hour)
	_, ok := m.Get("/a")
	assert.False(t, ok)
	assert.False(t, m.Conflict("/a", "bob", ""))
	assert.ErrorIs(t, m.Unlock("/a", info.Token, "alice"), ErrTokenUnknown)
}

func TestExclusiveConflict(t *testing.T) {
	m := NewManager()
	_, err := m.Lock("/a", "alice", Request{Scope: ScopeExclusive}, "0", "")
	require.NoError(t, err)

	_, err = m.Lock("/a", "bob", Request{Scope: ScopeExclusive}, "0", "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestConflictChecks(t *testing.T) {
	m := NewManager()
	info, err := m.Lock("/docs", "alice", Request{Owner: mo.Some("alice")}, "infinity", "")
	require.NoError(t, err)

	tests := []struct {
		name      string
		path      string
		principal string
		token     string
		want      bool
	}{
		{"other principal on locked path", "/docs", "bob", "", true},
		{"descendant under infinity lock", "/docs/sub/file.txt", "bob", "", true},
		{"sibling tree untouched", "/pics/cat.jpg", "bob", "", false},
		{"own token clears", "/docs/sub/file.txt", "bob", info.Token, false},
		{"same principal clears", "/docs", "alice", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.Conflict(tc.path, tc.principal, tc.token))
		})
	}
}

func TestDescendantLockBlocksCollection(t *testing.T) {
	m := NewManager()
	info, err := m.Lock("/docs/sub/file.txt", "alice", Request{}, "0", "")
	require.NoError(t, err)

	assert.True(t, m.Conflict("/docs", "bob", ""), "collection holds a foreign-locked member")
	assert.True(t, m.Conflict("/docs/sub", "bob", ""))
	assert.False(t, m.Conflict("/docs", "alice", ""), "same principal clears")
	assert.False(t, m.Conflict("/docs", "bob", info.Token), "presented token clears")
	assert.False(t, m.Conflict("/pics", "bob", ""), "sibling tree untouched")
}

func TestDepthZeroLockDoesNotCoverChildren(t *testing.T) {
	m := NewManager()
	_, err := m.Lock("/docs", "alice", Request{}, "0", "")
	require.NoError(t, err)

	assert.False(t, m.Conflict("/docs/file.txt", "bob", ""))
}

func TestParseLockInfo(t *testing.T) {
	body := `<?xml version="1.0" encoding="utf-8"?>
<D:lockinfo xmlns:D="DAV:">
  <D:lockscope><D:exclusive/></D:lockscope>
  <D:locktype><D:write/></D:locktype>
  <D:owner>mailto:alice@example.net</D:owner>
</D:lockinfo>`

	req, err := ParseLockInfo(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, ScopeExclusive, req.Scope)
	assert.Equal(t, mo.Some("mailto:alice@example.net"), req.Owner)
}

func TestParseLockInfoShared(t *testing.T) {
	body := `<D:lockinfo xmlns:D="DAV:"><D:lockscope><D:shared/></D:lockscope></D:lockinfo>`
	req, err := ParseLockInfo(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, ScopeShared, req.Scope)
	assert.True(t, req.Owner.IsAbsent())
}

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		value string
		want  mo.Option[time.Duration]
	}{
		{"Second-3600", mo.Some(time.Hour)},
		{"Infinite", mo.None[time.Duration]()},
		{"Second-0", mo.None[time.Duration]()},
		{"Second-abc", mo.None[time.Duration]()},
		{"", mo.None[time.Duration]()},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseTimeout(tc.value), tc.value)
	}
}
