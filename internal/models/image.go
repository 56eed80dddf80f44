package models

// ImageSet describes a piece of artwork ready for an <img> tag
type ImageSet struct {
	URL         string `json:"url,omitempty"`
	SrcSet      string `json:"srcset,omitempty"`
	Placeholder bool   `json:"placeholder"` // True when the title has no artwork for this slot
}
