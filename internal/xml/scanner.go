package xml

import (
	stdxml "encoding/xml"
	"errors"
	"io"
	"strings"
)

// ErrMalformedXML is returned when a request body cannot be parsed as XML.
var ErrMalformedXML = errors.New("malformed xml request body")

// TokenKind enumerates the events produced by Scanner. Self-closing
// elements surface as a Start immediately followed by the matching End, so
// state machines never need a separate empty-element case.
type TokenKind int

const (
	TokenStart TokenKind = iota
	TokenEnd
	TokenText
	TokenEOF
)

// Token is one parse event. Name is set for Start and End, Attr for Start,
// Text for Text.
type Token struct {
	Kind TokenKind
	Name QualifiedName
	Attr []Attr
	Text string
}

// Attr is an attribute on a Start token. Names keep their raw namespace;
// plain attributes like "start" have an empty one.
type Attr struct {
	Name  stdxml.Name
	Value string
}

// AttrValue returns the value of the named plain attribute, or "".
func (t Token) AttrValue(local string) string {
	for _, a := range t.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// Scanner is a pull iterator over an XML request body. Element namespaces
// are resolved against every xmlns declaration in scope, inherited from
// ancestors; unprefixed and undeclared names default to "DAV:".
// Whitespace-only character data is dropped.
type Scanner struct {
	dec *stdxml.Decoder
	err error
}

// NewScanner wraps r in a Scanner. The reader is consumed incrementally;
// nothing is buffered beyond the decoder's own window.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{dec: stdxml.NewDecoder(r)}
}

// Next returns the next token. After TokenEOF or an error it keeps
// returning the same result.
func (s *Scanner) Next() (Token, error) {
	if s.err != nil {
		return Token{}, s.err
	}
	for {
		tok, err := s.dec.Token()
		if err == io.EOF {
			return Token{Kind: TokenEOF}, nil
		}
		if err != nil {
			s.err = errors.Join(ErrMalformedXML, err)
			return Token{}, s.err
		}
		switch t := tok.(type) {
		case stdxml.StartElement:
			attrs := make([]Attr, 0, len(t.Attr))
			for _, a := range t.Attr {
				attrs = append(attrs, Attr{Name: a.Name, Value: a.Value})
			}
			return Token{
				Kind: TokenStart,
				Name: QName(t.Name.Space, t.Name.Local),
				Attr: attrs,
			}, nil
		case stdxml.EndElement:
			return Token{
				Kind: TokenEnd,
				Name: QName(t.Name.Space, t.Name.Local),
			}, nil
		case stdxml.CharData:
			// Surrounding whitespace comes from document indentation, not
			// from property values; it is trimmed the way the interpreters
			// expect.
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			return Token{Kind: TokenText, Text: text}, nil
		default:
			// Comments, directives and processing instructions are ignored.
		}
	}
}
