package models

// GalleryImage is one entry of the fleet gallery. URL is either a remote
// reference or an embedded data URL produced by the ingest pipeline.
type GalleryImage struct {
	URL   string `json:"url" parquet:"url"`
	Title string `json:"title" parquet:"title"`
}

// ChatMessage is a single turn of the assistant conversation
type ChatMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// CloneImages returns a copy of images that shares no backing array with the input.
func CloneImages(images []GalleryImage) []GalleryImage {
	out := make([]GalleryImage, len(images))
	copy(out, images)
	return out
}
