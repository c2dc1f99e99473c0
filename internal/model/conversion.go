package model

import "time"

// SourceType says where article content comes from.
type SourceType string

const (
	SourceURL  SourceType = "url"
	SourceText SourceType = "text"
)

// OutputType is a generated marketing format.
type OutputType string

const (
	OutputNewsletter OutputType = "newsletter"
	OutputSocial     OutputType = "social"
	OutputEmail      OutputType = "email"
)

// OutputTypes lists every supported output type.
var OutputTypes = []OutputType{OutputNewsletter, OutputSocial, OutputEmail}

// Valid reports whether t is a supported output type.
func (t OutputType) Valid() bool {
	switch t {
	case OutputNewsletter, OutputSocial, OutputEmail:
		return true
	}
	return false
}

// Platform is a social network targeted by the social output.
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformInstagram Platform = "instagram"
)

// DefaultPlatforms is used when a social output is requested without platforms.
var DefaultPlatforms = []Platform{PlatformTwitter, PlatformLinkedIn, PlatformInstagram}

func (p Platform) Valid() bool {
	switch p {
	case PlatformTwitter, PlatformLinkedIn, PlatformInstagram:
		return true
	}
	return false
}

// Tone selects the voice of the generated copy. Empty means the default tone.
type Tone string

const (
	ToneConversational Tone = "conversational"
	ToneProfessional   Tone = "professional"
	TonePlayful        Tone = "playful"
)

func (t Tone) Valid() bool {
	switch t {
	case ToneConversational, ToneProfessional, TonePlayful:
		return true
	}
	return false
}

// ArticleMetadata describes the source article.
// WordCount is approximate: extracted character length divided by five.
type ArticleMetadata struct {
	Title        *string `json:"title,omitempty"`
	Author       *string `json:"author,omitempty"`
	CanonicalURL string  `json:"canonicalUrl"`
	WordCount    *int    `json:"wordCount,omitempty"`
	Excerpt      *string `json:"excerpt,omitempty"`
}

// ConversionResult is returned by one conversion.
type ConversionResult struct {
	Outputs    map[OutputType]string `json:"outputs"`
	Metadata   ArticleMetadata       `json:"metadata"`
	RawContent string                `json:"rawContent"`
}

// Conversion is the persisted, append-only snapshot of a request and its result.
type Conversion struct {
	ID              int64                 `json:"id,string"`
	SourceType      SourceType            `json:"sourceType"`
	Source          string                `json:"source"`
	OutputTypes     []OutputType          `json:"outputTypes"`
	SocialPlatforms []Platform            `json:"socialPlatforms"`
	Tone            Tone                  `json:"tone,omitempty"`
	CanonicalURL    string                `json:"canonicalUrl"`
	Title           *string               `json:"title,omitempty"`
	Author          *string               `json:"author,omitempty"`
	WordCount       *int                  `json:"wordCount,omitempty"`
	Excerpt         *string               `json:"excerpt,omitempty"`
	RawContent      string                `json:"rawContent"`
	Outputs         map[OutputType]string `json:"outputs"`
	Provider        string                `json:"provider"`
	Model           string                `json:"model"`
	CreatedAt       time.Time             `json:"createdAt"`
}
