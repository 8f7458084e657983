package model

import "time"

// Product is product metadata returned by a barcode lookup.
// Quantity is the free-text size string, e.g. "500 g".
type Product struct {
	Barcode       string    `json:"barcode"`
	Name          string    `json:"name"`
	Quantity      string    `json:"quantity,omitempty"`
	ImageSmallURL string    `json:"image_small_url,omitempty"`
	ImageFrontURL string    `json:"image_front_url,omitempty"`
	URL           string    `json:"url,omitempty"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// Image returns the best available image reference.
func (p Product) Image() string {
	if p.ImageSmallURL != "" {
		return p.ImageSmallURL
	}
	return p.ImageFrontURL
}
