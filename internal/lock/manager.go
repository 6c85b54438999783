package lock

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"
)

// Manager is the shared lock table. All durable protocol state lives here;
// every other protocol component is request-scoped. Safe for concurrent use.
type Manager struct {
	mu    sync.Mutex
	locks map[string]Info // keyed by resource path

	// now is a seam for expiry tests.
	now func() time.Time
}

// NewManager returns an empty lock table.
func NewManager() *Manager {
	return &Manager{
		locks: make(map[string]Info),
		now:   time.Now,
	}
}

// Lock issues a fresh token for path on behalf of principal. It fails with
// ErrConflict when another principal already holds a lock there, or when
// the existing lock (or the requested one) is exclusive.
func (m *Manager) Lock(path, principal string, req Request, depth, timeout string) (Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purge()

	owner := req.Owner.OrElse(principal)
	if existing, ok := m.locks[path]; ok {
		if existing.Owner != owner || existing.Scope == ScopeExclusive || req.Scope == ScopeExclusive {
			return Info{}, ErrConflict
		}
	}

	if depth != "0" {
		depth = "infinity"
	}
	info := Info{
		Token: "opaquelocktoken:" + uuid.NewString(),
		Path:  path,
		Owner: owner,
		Depth: depth,
		Scope: req.Scope,
	}
	if timeout != "" {
		info.Timeout = mo.Some(timeout)
	}
	if d, ok := ParseTimeout(timeout).Get(); ok {
		info.Expires = m.now().Add(d)
	}
	m.locks[path] = info
	return info, nil
}

// Refresh extends the lock identified by token on path. The token must
// exist and belong to that exact resource; otherwise ErrTokenUnknown.
func (m *Manager) Refresh(path, token, timeout string) (Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purge()

	info, ok := m.locks[path]
	if !ok || info.Token != token {
		return Info{}, ErrTokenUnknown
	}
	if timeout != "" {
		info.Timeout = mo.Some(timeout)
	}
	if d, ok := ParseTimeout(timeout).Get(); ok {
		info.Expires = m.now().Add(d)
	} else if timeout != "" {
		info.Expires = time.Time{}
	}
	m.locks[path] = info
	return info, nil
}

// Unlock removes the lock identified by token. The token must exist on
// path (ErrTokenUnknown otherwise) and, when the caller is known, belong
// to that principal (ErrConflict otherwise).
func (m *Manager) Unlock(path, token, principal string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purge()

	info, ok := m.locks[path]
	if !ok || info.Token != token {
		return ErrTokenUnknown
	}
	if principal != "" && info.Owner != principal {
		return ErrConflict
	}
	delete(m.locks, path)
	return nil
}

// Get returns the active lock on path, if any.
func (m *Manager) Get(path string) (Info, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purge()
	info, ok := m.locks[path]
	return info, ok
}

// Conflict reports whether a mutation of path by principal would violate a
// live lock. A lock on the path itself always counts; a depth-infinity
// lock on any ancestor covers the whole subtree; a lock anywhere below
// path blocks mutations of the containing collection, since deleting or
// moving it would take the locked resource with it. Presenting the lock's
// own token clears the conflict.
func (m *Manager) Conflict(path, principal, token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purge()

	if info, ok := m.locks[path]; ok && m.blocks(info, principal, token) {
		return true
	}
	for _, ancestor := range ancestors(path) {
		if info, ok := m.locks[ancestor]; ok && info.Depth == "infinity" && m.blocks(info, principal, token) {
			return true
		}
	}
	prefix := strings.TrimSuffix(path, "/") + "/"
	for _, info := range m.locks {
		if strings.HasPrefix(info.Path, prefix) && m.blocks(info, principal, token) {
			return true
		}
	}
	return false
}

func (m *Manager) blocks(info Info, principal, token string) bool {
	if token != "" && info.Token == token {
		return false
	}
	return principal == "" || info.Owner != principal
}

// purge drops expired locks. Callers hold mu.
func (m *Manager) purge() {
	now := m.now()
	for path, info := range m.locks {
		if !info.Expires.IsZero() && info.Expires.Before(now) {
			delete(m.locks, path)
		}
	}
}

// ancestors lists the parent paths of path, nearest first, excluding path
// itself. "/docs/a/b" yields "/docs/a", "/docs", "/".
func ancestors(path string) []string {
	path = strings.TrimSuffix(path, "/")
	var out []string
	for {
		idx := strings.LastIndex(path, "/")
		if idx < 0 {
			break
		}
		if idx == 0 {
			out = append(out, "/")
			break
		}
		path = path[:idx]
		out = append(out, path)
	}
	return out
}
