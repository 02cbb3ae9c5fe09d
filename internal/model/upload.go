package model

// UploadedFile describes an upload that passed the gatekeeper and was written to storage.
// It is created once on acceptance and never mutated afterwards.
type UploadedFile struct {
	OriginalName string `json:"original_name"`
	MediaType    string `json:"media_type"`
	Size         int64  `json:"size"`
	StorageKey   string `json:"storage_key"`
}
