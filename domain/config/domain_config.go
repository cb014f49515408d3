package config

import "time"

// DomainConfig holds the business rules the movie portal enforces
type DomainConfig struct {
	// Listing
	DefaultPageSize int
	MaxPageSize     int

	// Uploads
	UploadURLExpiry    time.Duration
	DefaultContentType string
	UploadKeyPrefix    string

	// Enrichment and notification contracts
	EnrichmentAction    string
	NotificationType    string
	NotificationSubject string
	MaxSubjectLength    int

	// Principals
	AnonymousUserID string
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		DefaultPageSize: 50,
		MaxPageSize:     1000,

		UploadURLExpiry:    5 * time.Minute,
		DefaultContentType: "image/jpeg",
		UploadKeyPrefix:    "uploads",

		EnrichmentAction:    "PROCESS_MOVIE",
		NotificationType:    "NEW_MOVIE_ADDED",
		NotificationSubject: "New Movie Added: ",
		MaxSubjectLength:    100, // SNS subject limit

		AnonymousUserID: "anonymous",
	}
}

// ClampPageSize applies the listing defaults to a caller-supplied limit.
func (c *DomainConfig) ClampPageSize(limit int) int {
	if limit <= 0 {
		return c.DefaultPageSize
	}
	if limit > c.MaxPageSize {
		return c.MaxPageSize
	}
	return limit
}
