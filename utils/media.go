package utils

import (
	"net/http"
	"strings"
)

// MediaBase resolves media-relative paths ("hotel_images/x.webp") to absolute URLs.
type MediaBase string

// MediaBaseFromRequest builds "<scheme>://<host>/media/" for the inbound request,
// honouring X-Forwarded-Proto / X-Forwarded-Host from a reverse proxy.
func MediaBaseFromRequest(r *http.Request) MediaBase {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); p != "" {
		scheme = strings.ToLower(strings.Split(p, ",")[0])
	}
	host := r.Host
	if h := strings.TrimSpace(r.Header.Get("X-Forwarded-Host")); h != "" {
		host = strings.TrimSpace(strings.Split(h, ",")[0])
	}
	return MediaBase(scheme + "://" + host + "/media/")
}

// MediaBaseFromURL builds "<base>/media/" from a configured public URL.
func MediaBaseFromURL(publicBaseURL string) MediaBase {
	return MediaBase(strings.TrimRight(strings.TrimSpace(publicBaseURL), "/") + "/media/")
}

// URL returns the absolute URL for path. Paths that are already absolute are returned as is.
func (b MediaBase) URL(path string) string {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimPrefix(path, "media/")
	return string(b) + path
}

// OptionalURL is URL for nullable columns: nil or blank in, nil out.
func (b MediaBase) OptionalURL(path *string) *string {
	if path == nil || strings.TrimSpace(*path) == "" {
		return nil
	}
	u := b.URL(*path)
	return &u
}
