package domain

type UploadKind string

const (
	UploadImage UploadKind = "image"
	UploadPhoto UploadKind = "photo"
)

func (k UploadKind) Valid() bool {
	return k == UploadImage || k == UploadPhoto
}

// Upload is a stored file as served from the public bucket.
type Upload struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	ContentType  string `json:"content_type"`
	Size         int64  `json:"size"`
}
