// Package types defines the request and response payloads shared by the
// server, the CLI, and the generation pipeline.
package types

// Resume payload kinds. File payloads are opaque: the content is carried
// through as-is and never decoded; only the file name reaches the prompt.
const (
	ResumeTypeText = "text"
	ResumeTypeFile = "file"
)

// JobListing is one job posting supplied by the client. At least one of
// URL/Description is expected to be non-empty, but the server tolerates
// both being empty.
type JobListing struct {
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// ResumePayload is a tagged union over pasted text and uploaded files.
type ResumePayload struct {
	Type     string `json:"type" validate:"required,oneof=text file"`
	Content  string `json:"content,omitempty"`
	FileName string `json:"fileName,omitempty"`
	FileType string `json:"fileType,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`
	Data     []byte `json:"data,omitempty"`
}

// AdditionalInfo carries optional supplementary candidate information.
type AdditionalInfo struct {
	Content string `json:"content"`
}

// Usage is the upstream token accounting, passed through unmodified.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerationResult is the materialized output of one generation request.
// It exists only for the duration of the request; nothing is persisted.
type GenerationResult struct {
	TailoredResume string `json:"tailoredResume"`
	CoverLetter    string `json:"coverLetter"`
	Usage          Usage  `json:"usage"`
}
