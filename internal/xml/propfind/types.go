// Package propfind parses PROPFIND request bodies (RFC 4918 §9.1) into a
// closed set of request variants.
package propfind

import (
	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
)

// Request is the parsed form of a PROPFIND body. Exactly one of the three
// variants below is produced for any body.
type Request interface {
	isRequest()
}

// AllProp asks for the standard property set of each resource. It is also
// the default for an empty body or a body naming neither prop, allprop nor
// propname.
type AllProp struct{}

// PropNameOnly asks for the names of the available properties, without
// values.
type PropNameOnly struct{}

// Prop asks for an explicit list of properties, in document order.
// Duplicates are preserved.
type Prop struct {
	Names []davxml.QualifiedName
}

func (AllProp) isRequest()      {}
func (PropNameOnly) isRequest() {}
func (Prop) isRequest()         {}
