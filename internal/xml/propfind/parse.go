package propfind

import (
	"io"

	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
)

type state int

const (
	stateOutside state = iota
	stateInsidePropfind
	stateInsideProp
	stateInsideAllProp
	stateInsidePropName
)

// Parse consumes a PROPFIND body and resolves it to one Request variant.
//
// Collection happens first: while inside <prop>, every element start is
// recorded in document order with no de-duplication. Resolution precedence
// is applied only after the whole document has been consumed: collected
// properties win over <allprop>, which wins over <propname>; a body naming
// none of them (including the empty body) defaults to AllProp.
func Parse(r io.Reader) (Request, error) {
	sc := davxml.NewScanner(r)

	st := stateOutside
	var names []davxml.QualifiedName
	sawAllProp := false
	sawPropName := false

	for {
		tok, err := sc.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == davxml.TokenEOF {
			break
		}

		switch tok.Kind {
		case davxml.TokenStart:
			switch {
			case tok.Name.Local == davxml.TagPropfind:
				st = stateInsidePropfind
			case st == stateInsideProp:
				names = append(names, tok.Name)
			case st == stateInsidePropfind:
				switch tok.Name.Local {
				case davxml.TagProp:
					st = stateInsideProp
				case davxml.TagAllprop:
					st = stateInsideAllProp
					sawAllProp = true
				case davxml.TagPropname:
					st = stateInsidePropName
					sawPropName = true
				}
			}
		case davxml.TokenEnd:
			switch {
			case tok.Name.Local == davxml.TagPropfind:
				st = stateOutside
			case st == stateInsideProp && tok.Name.Local == davxml.TagProp:
				st = stateInsidePropfind
			case st == stateInsideAllProp && tok.Name.Local == davxml.TagAllprop:
				st = stateInsidePropfind
			case st == stateInsidePropName && tok.Name.Local == davxml.TagPropname:
				st = stateInsidePropfind
			}
		}
	}

	switch {
	case len(names) > 0:
		return Prop{Names: names}, nil
	case sawAllProp:
		return AllProp{}, nil
	case sawPropName:
		return PropNameOnly{}, nil
	default:
		return AllProp{}, nil
	}
}
