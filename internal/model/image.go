package model

// Image is a reference to a file held by the image host.
type Image struct {
	URL       string
	StorageID string
}
