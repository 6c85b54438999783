package multistatus

import (
	"github.com/beevik/etree"

	davxml "github.com/inakimalerba/OxiCloud/internal/xml"
)

// WriteProppatch appends the PROPPATCH result for a single resource. The
// response always carries exactly two propstat groups: accepted names under
// 200 first, rejected names under 403 second. A group that applies to no
// names keeps an empty prop container. Every name from the request appears
// exactly once.
func (e *Encoder) WriteProppatch(ms *etree.Element, href string, accepted, rejected []davxml.QualifiedName) {
	resp := response(ms, href)

	group := func(names []davxml.QualifiedName, status string) {
		ps, prop := propstat(resp)
		for _, name := range names {
			prop.AddChild(propElement(name))
		}
		closePropstat(ps, status)
	}

	group(accepted, davxml.StatusOK)
	group(rejected, davxml.StatusForbidden)
}

// WriteStatus appends a response carrying only a status line, used for
// multiget hrefs that resolve to nothing.
func WriteStatus(ms *etree.Element, href, status string) {
	resp := response(ms, href)
	st := resp.CreateElement(davxml.TagStatus)
	st.Space = davxml.PrefixDAV
	st.SetText(status)
}

// AddSyncToken appends the sync-token element of a sync-collection
// response to the multistatus root.
func AddSyncToken(ms *etree.Element, token string) {
	st := ms.CreateElement(davxml.TagSyncToken)
	st.Space = davxml.PrefixDAV
	st.SetText(token)
}
