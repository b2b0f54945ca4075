package models

// SiteSettings is the singleton configuration row. The synthesizer uses it
// as the fallback source for every metadata field, so accessors below never
// return an empty string for title/description.
type SiteSettings struct {
	ID              int64   `json:"id,omitempty"`
	SiteTitle       string  `json:"site_title"`
	SiteDescription string  `json:"site_description"`
	SiteKeywords    *string `json:"site_keywords,omitempty"`
	DefaultImage    *string `json:"default_image,omitempty"`
}

// DefaultSettings returns the compiled-in fallback used when the settings
// row is missing or unreadable.
func DefaultSettings() *SiteSettings {
	return &SiteSettings{
		SiteTitle:       "NatokGhor",
		SiteDescription: "Watch Bengali TV serial episodes online - daily updates from your favourite shows.",
	}
}

// Title returns the configured site title, never empty.
func (s *SiteSettings) Title() string {
	if s == nil || s.SiteTitle == "" {
		return DefaultSettings().SiteTitle
	}
	return s.SiteTitle
}

// Description returns the configured site description, never empty.
func (s *SiteSettings) Description() string {
	if s == nil || s.SiteDescription == "" {
		return DefaultSettings().SiteDescription
	}
	return s.SiteDescription
}

// Image returns the configured default share image, possibly empty.
func (s *SiteSettings) Image() string {
	if s == nil || s.DefaultImage == nil {
		return ""
	}
	return *s.DefaultImage
}
