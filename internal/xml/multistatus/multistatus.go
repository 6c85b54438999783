// Package multistatus generates WebDAV/CalDAV response documents:
// multistatus bodies for PROPFIND and REPORT, PROPPATCH result bodies and
// lockdiscovery bodies.
package multistatus

import (
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/beevik/etree"

	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
	"github.com/inakimalerba/OxiCloud/internal/xml/propfind"
)

// Encoder renders response documents. Product is the vendor token used in
// synthesized iCalendar PRODID lines.
type Encoder struct {
	Product string
}

// NewDocument returns a fresh multistatus document and its root element,
// with the D/C/CS namespaces declared.
func NewDocument() (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	root := doc.CreateElement(davxml.TagMultistatus)
	root.Space = davxml.PrefixDAV
	davxml.AddNamespaces(doc)
	return doc, root
}

// response appends a <D:response> with its href to the multistatus root.
func response(ms *etree.Element, href string) *etree.Element {
	resp := ms.CreateElement(davxml.TagResponse)
	resp.Space = davxml.PrefixDAV
	h := resp.CreateElement(davxml.TagHref)
	h.Space = davxml.PrefixDAV
	h.SetText(href)
	return resp
}

// propstat appends a <D:propstat> and returns its <D:prop> container.
// closePropstat must be called after the props are filled in so the status
// element lands last.
func propstat(resp *etree.Element) (ps, prop *etree.Element) {
	ps = resp.CreateElement(davxml.TagPropstat)
	ps.Space = davxml.PrefixDAV
	prop = ps.CreateElement(davxml.TagProp)
	prop.Space = davxml.PrefixDAV
	return ps, prop
}

func closePropstat(ps *etree.Element, status string) {
	st := ps.CreateElement(davxml.TagStatus)
	st.Space = davxml.PrefixDAV
	st.SetText(status)
}

// propElement creates an element for a property name using the canonical
// prefix of its namespace. Names in foreign namespaces are emitted
// unprefixed with an inline xmlns declaration.
func propElement(name davxml.QualifiedName) *etree.Element {
	elem := etree.NewElement(name.Local)
	if prefix := davxml.PrefixFor(name.Namespace); prefix != "" {
		elem.Space = prefix
	} else if name.Namespace != "" {
		elem.CreateAttr("xmlns", name.Namespace)
	}
	return elem
}

func textProp(name davxml.QualifiedName, value string) *etree.Element {
	elem := propElement(name)
	elem.SetText(value)
	return elem
}

// kindProps is the rendering table of one resource kind: the ordered
// standard property set and a renderer for explicitly requested names.
type kindProps struct {
	// names of the standard ("allprop") set, in render order
	all []davxml.QualifiedName
	// render returns the element for a known property, or nil when the
	// name is not known for this kind.
	render func(name davxml.QualifiedName) *etree.Element
	// custom resolves a custom property value by local name.
	custom func(local string) (string, bool)
}

// write fills one response according to the request variant. Explicitly
// requested unknown names render as empty elements inside the same single
// 200 propstat; client compatibility is preferred over per-status
// propstat partitioning here.
func (k kindProps) write(ms *etree.Element, href string, req propfind.Request) {
	resp := response(ms, href)
	ps, prop := propstat(resp)

	switch r := req.(type) {
	case propfind.PropNameOnly:
		for _, name := range k.all {
			prop.AddChild(propElement(name))
		}
	case propfind.Prop:
		for _, name := range r.Names {
			if elem := k.render(name); elem != nil {
				prop.AddChild(elem)
				continue
			}
			if k.custom != nil {
				if value, ok := k.custom(name.Local); ok {
					prop.AddChild(textProp(name, value))
					continue
				}
			}
			prop.AddChild(propElement(name))
		}
	default: // AllProp
		for _, name := range k.all {
			if elem := k.render(name); elem != nil {
				prop.AddChild(elem)
			}
		}
	}

	closePropstat(ps, davxml.StatusOK)
}

// mapCustom adapts a resource's custom-property map to a lookup.
func mapCustom(props map[string]string) func(string) (string, bool) {
	return func(local string) (string, bool) {
		value, ok := props[local]
		return value, ok
	}
}

func lastModified(t time.Time) string { return t.UTC().Format(http.TimeFormat) }
func creationDate(t time.Time) string { return t.UTC().Format(time.RFC3339) }
func quoteETag(id string) string      { return `"` + id + `"` }

// mimeByName derives a MIME type from a file name's extension, falling
// back to application/octet-stream.
func mimeByName(name string) string {
	if mt := mime.TypeByExtension(path.Ext(name)); mt != "" {
		return mt
	}
	return "application/octet-stream"
}
