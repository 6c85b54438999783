// Package lock implements WebDAV write locks (RFC 4918 §6-§7): token
// issuance, refresh, release and conflict detection against a shared,
// in-process lock table.
package lock

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"

	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
)

// Scope of a lock. Only write locks exist; scope controls sharing.
type Scope int

const (
	ScopeExclusive Scope = iota
	ScopeShared
)

func (s Scope) String() string {
	if s == ScopeShared {
		return "shared"
	}
	return "exclusive"
}

var (
	// ErrTokenUnknown is returned when a refresh or unlock names a token
	// that does not exist or belongs to a different resource. Surfaced
	// as 412 Precondition Failed.
	ErrTokenUnknown = errors.New("lock token unknown for resource")
	// ErrConflict is returned when a resource is locked by another
	// principal. Surfaced as 423 Locked.
	ErrConflict = errors.New("resource locked by another principal")
)

// Info is one active lock. Depth is "0" or "infinity"; an infinity lock
// protects the whole subtree below Path. A zero Expires never expires.
type Info struct {
	Token   string
	Path    string
	Owner   string
	Depth   string
	Scope   Scope
	Timeout mo.Option[string]
	Expires time.Time
}

// Request is the parsed form of a <lockinfo> body.
type Request struct {
	Scope Scope
	Owner mo.Option[string]
}

// ParseLockInfo reads a <lockinfo> body. Scope defaults to exclusive, the
// only lock type is write, and the owner is optional free text.
func ParseLockInfo(r io.Reader) (Request, error) {
	sc := davxml.NewScanner(r)

	req := Request{Scope: ScopeExclusive}
	inOwner := false
	var owner strings.Builder

	for {
		tok, err := sc.Next()
		if err != nil {
			return Request{}, err
		}
		if tok.Kind == davxml.TokenEOF {
			break
		}
		switch tok.Kind {
		case davxml.TokenStart:
			switch tok.Name.Local {
			case davxml.TagShared:
				req.Scope = ScopeShared
			case davxml.TagOwner:
				inOwner = true
			}
		case davxml.TokenText:
			if inOwner {
				owner.WriteString(tok.Text)
			}
		case davxml.TokenEnd:
			if tok.Name.Local == davxml.TagOwner {
				inOwner = false
			}
		}
	}

	if owner.Len() > 0 {
		req.Owner = mo.Some(owner.String())
	}
	return req, nil
}

// ParseTimeout interprets a Timeout header or element value. "Infinite"
// yields None; "Second-N" yields N seconds; anything else yields None.
func ParseTimeout(value string) mo.Option[time.Duration] {
	value = strings.TrimSpace(value)
	if rest, ok := strings.CutPrefix(value, "Second-"); ok {
		secs, err := strconv.Atoi(rest)
		if err == nil && secs > 0 {
			return mo.Some(time.Duration(secs) * time.Second)
		}
	}
	return mo.None[time.Duration]()
}
