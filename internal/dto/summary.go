package dto

// ── summary DTO ──

// SummarizeRequest JSON or multipart summarization input
type SummarizeRequest struct {
	Title   string `json:"title"   form:"title"   binding:"omitempty,max=255"`
	Content string `json:"content" form:"content"`
	Format  string `json:"format"  form:"format"  binding:"omitempty,oneof=bullet_points paragraphs"`
}

// SummaryResponse stored summary
type SummaryResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Format          string `json:"format"`
	OriginalContent string `json:"original_content"`
	Summary         string `json:"summary"`
	CreatedAt       string `json:"created_at"`
}
