package multistatus

import (
	"strconv"

	"github.com/beevik/etree"

	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
	"github.com/inakimalerba/OxiCloud/internal/xml/propfind"
	"github.com/inakimalerba/OxiCloud/server/storage"
)

var fileAllProp = []davxml.QualifiedName{
	davxml.DAVName(davxml.TagResourcetype),
	davxml.DAVName("getcontentlength"),
	davxml.DAVName("getcontenttype"),
	davxml.DAVName("getetag"),
	davxml.DAVName("getlastmodified"),
	davxml.DAVName("creationdate"),
}

// WriteFile appends a response for a non-collection file resource.
func (e *Encoder) WriteFile(ms *etree.Element, href string, f *storage.File, req propfind.Request) {
	fileProps(f).write(ms, href, req)
}

func fileMimeType(f *storage.File) string {
	if f.MimeType != "" {
		return f.MimeType
	}
	return mimeByName(f.Name)
}

func fileProps(f *storage.File) kindProps {
	return kindProps{
		all:    fileAllProp,
		custom: mapCustom(f.Properties),
		render: func(name davxml.QualifiedName) *etree.Element {
			if name.Namespace != davxml.DAV {
				return nil
			}
			switch name.Local {
			case davxml.TagResourcetype:
				// empty for non-collections
				return propElement(name)
			case "getcontentlength":
				return textProp(name, strconv.FormatInt(f.Size, 10))
			case "getcontenttype":
				return textProp(name, fileMimeType(f))
			case "getetag":
				return textProp(name, quoteETag(f.ID))
			case "getlastmodified":
				return textProp(name, lastModified(f.Modified))
			case "creationdate":
				return textProp(name, creationDate(f.Created))
			case "displayname":
				return textProp(name, f.Name)
			}
			return nil
		},
	}
}
