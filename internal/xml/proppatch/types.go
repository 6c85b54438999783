// Package proppatch parses PROPPATCH request bodies (RFC 4918 §9.2).
package proppatch

import (
	"github.com/samber/mo"

	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
)

// PropValue is one property assignment from a <set> block. Value is None
// for an empty property element.
type PropValue struct {
	Name  davxml.QualifiedName
	Value mo.Option[string]
}

// Update is the parsed form of a <propertyupdate> body. Set and Remove keep
// document order.
type Update struct {
	Set    []PropValue
	Remove []davxml.QualifiedName
}

// Names returns every property name touched by the update, sets first, in
// document order.
func (u Update) Names() []davxml.QualifiedName {
	names := make([]davxml.QualifiedName, 0, len(u.Set)+len(u.Remove))
	for _, pv := range u.Set {
		names = append(names, pv.Name)
	}
	names = append(names, u.Remove...)
	return names
}
