package multistatus

import (
	"github.com/beevik/etree"

	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
	"github.com/inakimalerba/OxiCloud/internal/xml/propfind"
	"github.com/inakimalerba/OxiCloud/server/storage"
)

var folderAllProp = []davxml.QualifiedName{
	davxml.DAVName(davxml.TagResourcetype),
	davxml.DAVName("getcontentlength"),
	davxml.DAVName("getcontenttype"),
	davxml.DAVName("getetag"),
	davxml.DAVName("getlastmodified"),
	davxml.DAVName("creationdate"),
}

// WriteFolder appends a response for a plain collection.
func (e *Encoder) WriteFolder(ms *etree.Element, href string, f *storage.Folder, req propfind.Request) {
	folderProps(f).write(ms, href, req)
}

func collectionType() *etree.Element {
	elem := propElement(davxml.DAVName(davxml.TagResourcetype))
	coll := elem.CreateElement(davxml.TagCollection)
	coll.Space = davxml.PrefixDAV
	return elem
}

func folderProps(f *storage.Folder) kindProps {
	return kindProps{
		all:    folderAllProp,
		custom: mapCustom(f.Properties),
		render: func(name davxml.QualifiedName) *etree.Element {
			if name.Namespace != davxml.DAV {
				return nil
			}
			switch name.Local {
			case davxml.TagResourcetype:
				return collectionType()
			case "getcontentlength":
				return textProp(name, "0")
			case "getcontenttype":
				return textProp(name, "httpd/unix-directory")
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
