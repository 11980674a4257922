package service

import "strings"

// StorageResolver turns stored object paths into public URLs. Uploads go
// straight from the browser to the storage service; the API only ever sees
// the resulting path, so this is the whole integration.
type StorageResolver struct {
	publicBaseURL string
}

func NewStorageResolver(publicBaseURL string) *StorageResolver {
	return &StorageResolver{publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// PublicURL resolves a stored path. Absolute URLs (legacy records imported
// with full URLs) pass through untouched.
func (r *StorageResolver) PublicURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "data:") {
		return path
	}
	return r.publicBaseURL + "/" + strings.TrimLeft(path, "/")
}
