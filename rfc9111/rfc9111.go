// Package rfc9111 holds the parts of the HTTP caching grammar
// (RFC 9111, with the token and quoted-string rules of RFC 9110)
// needed to generate and read back response Cache-Control fields.
//
// Section text is quoted with a leading "§" next to the code implementing it.
package rfc9111

import "net/http"

// CacheControlHeader is the canonical name of the Cache-Control field.
const CacheControlHeader = "Cache-Control"

// ResponseCacheControl returns the parsed Cache-Control field of the given
// response headers, combining all field lines.
func ResponseCacheControl(header http.Header) CacheControl {
	return ParseCacheControl(header.Values(CacheControlHeader))
}
