package xml

// Common XML tag names used in WebDAV and CalDAV
const (
	TagPropfind       = "propfind"
	TagPropertyUpdate = "propertyupdate"
	TagSet            = "set"
	TagRemove         = "remove"
	TagProp           = "prop"
	TagPropname       = "propname"
	TagAllprop        = "allprop"
	TagMultistatus    = "multistatus"
	TagResponse       = "response"
	TagHref           = "href"
	TagPropstat       = "propstat"
	TagStatus         = "status"
	TagError          = "error"
	TagResourcetype   = "resourcetype"
	TagCollection     = "collection"
	TagCalendar       = "calendar"
	TagLockInfo       = "lockinfo"
	TagLockScope      = "lockscope"
	TagLockType       = "locktype"
	TagLockDiscovery  = "lockdiscovery"
	TagActiveLock     = "activelock"
	TagExclusive      = "exclusive"
	TagShared         = "shared"
	TagWrite          = "write"
	TagOwner          = "owner"
	TagDepth          = "depth"
	TagTimeout        = "timeout"
	TagLockToken      = "locktoken"
	TagSyncToken      = "sync-token"
)

// Status lines used in propstat blocks.
const (
	StatusOK        = "HTTP/1.1 200 OK"
	StatusForbidden = "HTTP/1.1 403 Forbidden"
	StatusNotFound  = "HTTP/1.1 404 Not Found"
)
