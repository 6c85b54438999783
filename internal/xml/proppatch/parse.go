package proppatch

import (
	"io"
	"strings"

	"github.com/samber/mo"

	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
)

type section int

const (
	sectionNone section = iota
	sectionSet
	sectionRemove
)

// Parse consumes a <propertyupdate> body into an Update.
//
// Nesting tracked: propertyupdate → set|remove → prop → property element.
// Text inside a property element accumulates across text events. Closing a
// property element under <set> emits a PropValue whose value is None when
// no text was seen; under <remove> only the name is kept and any value text
// is discarded.
func Parse(r io.Reader) (Update, error) {
	sc := davxml.NewScanner(r)

	var upd Update
	sec := sectionNone
	inProp := false
	depth := 0 // nesting below the current property element

	var current davxml.QualifiedName
	var text strings.Builder
	open := false

	for {
		tok, err := sc.Next()
		if err != nil {
			return Update{}, err
		}
		if tok.Kind == davxml.TokenEOF {
			break
		}

		switch tok.Kind {
		case davxml.TokenStart:
			switch {
			case tok.Name.Local == davxml.TagSet && tok.Name.Namespace == davxml.DAV:
				sec = sectionSet
			case tok.Name.Local == davxml.TagRemove && tok.Name.Namespace == davxml.DAV:
				sec = sectionRemove
			case tok.Name.Local == davxml.TagProp && tok.Name.Namespace == davxml.DAV && sec != sectionNone && !open:
				inProp = true
			case inProp && !open:
				current = tok.Name
				text.Reset()
				open = true
				depth = 0
			case open:
				// Structured property values keep their text, the markup
				// around it is dropped.
				depth++
			}
		case davxml.TokenText:
			if open {
				text.WriteString(tok.Text)
			}
		case davxml.TokenEnd:
			switch {
			case open && depth > 0:
				depth--
			case open && tok.Name == current:
				if sec == sectionSet {
					value := mo.None[string]()
					if text.Len() > 0 {
						value = mo.Some(text.String())
					}
					upd.Set = append(upd.Set, PropValue{Name: current, Value: value})
				} else if sec == sectionRemove {
					upd.Remove = append(upd.Remove, current)
				}
				open = false
			case tok.Name.Local == davxml.TagProp && tok.Name.Namespace == davxml.DAV:
				inProp = false
			case tok.Name.Local == davxml.TagSet || tok.Name.Local == davxml.TagRemove:
				sec = sectionNone
			}
		}
	}

	return upd, nil
}
