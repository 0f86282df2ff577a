package models

import "time"

// Session correlates a batch of generated artifact files awaiting download.
type Session struct {
	ID            string      `json:"id"`
	BBox          BoundingBox `json:"bbox"`
	FeatureTypes  []string    `json:"feature_types"`
	Files         []string    `json:"files"`
	TotalElements int         `json:"total_elements"`
	CreatedAt     time.Time   `json:"created_at"`
}

// SessionFile describes one downloadable artifact.
type SessionFile struct {
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	DownloadURL string `json:"download_url"`
}
