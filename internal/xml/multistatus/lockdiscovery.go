package multistatus

import (
	"github.com/beevik/etree"

	"github.com/inakimalerba/OxiCloud/internal/lock"
	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
)

// LockDiscovery builds the prop/lockdiscovery document returned by LOCK.
func LockDiscovery(info lock.Info) *etree.Document {
	doc := etree.NewDocument()
	prop := doc.CreateElement(davxml.TagProp)
	prop.Space = davxml.PrefixDAV
	davxml.AddNamespaces(doc)

	disco := prop.CreateElement(davxml.TagLockDiscovery)
	disco.Space = davxml.PrefixDAV
	active := disco.CreateElement(davxml.TagActiveLock)
	active.Space = davxml.PrefixDAV

	dav := func(parent *etree.Element, tag string) *etree.Element {
		elem := parent.CreateElement(tag)
		elem.Space = davxml.PrefixDAV
		return elem
	}

	scope := dav(active, davxml.TagLockScope)
	switch info.Scope {
	case lock.ScopeShared:
		dav(scope, davxml.TagShared)
	default:
		dav(scope, davxml.TagExclusive)
	}

	locktype := dav(active, davxml.TagLockType)
	dav(locktype, davxml.TagWrite)

	dav(active, davxml.TagDepth).SetText(info.Depth)
	if info.Owner != "" {
		dav(active, davxml.TagOwner).SetText(info.Owner)
	}
	if timeout, ok := info.Timeout.Get(); ok {
		dav(active, davxml.TagTimeout).SetText(timeout)
	}

	token := dav(active, davxml.TagLockToken)
	dav(token, davxml.TagHref).SetText(info.Token)

	return doc
}
