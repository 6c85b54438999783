package xml

import "strings"

// QualifiedName identifies an XML element or WebDAV property by its
// namespace URI and local name. Two names are equal when both fields are
// equal, case-sensitively; the serialized prefix form never matters.
type QualifiedName struct {
	Namespace string
	Local     string
}

// QName builds a QualifiedName. An empty or unresolvable namespace is
// normalized to "DAV:", matching how request bodies are interpreted.
func QName(namespace, local string) QualifiedName {
	return QualifiedName{Namespace: normalizeNamespace(namespace), Local: local}
}

// DAVName returns a name in the "DAV:" namespace.
func DAVName(local string) QualifiedName {
	return QualifiedName{Namespace: DAV, Local: local}
}

// CalDAVName returns a name in the CalDAV namespace.
func CalDAVName(local string) QualifiedName {
	return QualifiedName{Namespace: CalDAV, Local: local}
}

func (q QualifiedName) String() string {
	if q.Namespace == "" {
		return q.Local
	}
	return "{" + q.Namespace + "}" + q.Local
}

// normalizeNamespace applies the default-namespace rule: element names with
// no namespace, or whose prefix never resolved to a declaration (the decoder
// then reports the bare prefix, which is never a URI), belong to "DAV:".
func normalizeNamespace(ns string) string {
	if ns == "" || !strings.Contains(ns, ":") {
		return DAV
	}
	return ns
}
