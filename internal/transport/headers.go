package transport

import "net/http"

// Browser-like header values sent unless the client or request sets them.
const (
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
	DefaultAccept         = "application/json, text/plain, */*"
	DefaultAcceptLanguage = "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7"
	DefaultConnection     = "keep-alive"
)

// BrowserHeaders returns the synthesized browser header set.
func BrowserHeaders() http.Header {
	h := make(http.Header)
	h.Set("User-Agent", DefaultUserAgent)
	h.Set("Accept", DefaultAccept)
	h.Set("Accept-Language", DefaultAcceptLanguage)
	h.Set("Connection", DefaultConnection)
	return h
}

// MergeHeaders layers header maps from lowest to highest precedence. Keys are
// canonicalized, so "user-agent" and "User-Agent" name the same header and
// the later layer wins. Empty keys and values are ignored.
func MergeHeaders(base http.Header, layers ...map[string]string) http.Header {
	out := base.Clone()
	if out == nil {
		out = make(http.Header)
	}
	for _, layer := range layers {
		for k, v := range layer {
			if k == "" || v == "" {
				continue
			}
			out.Set(k, v)
		}
	}
	return out
}
