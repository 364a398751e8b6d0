package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Format       string `json:"format"`
}

type ScreenRequest struct {
	JobDescription    string   `json:"job_description"`
	JDDocumentID      string   `json:"jd_document_id"`
	ResumeDocumentIDs []string `json:"resume_document_ids"`
}

type ScreenResponse struct {
	Results []ScoredCandidate `json:"results"`
	Count   int               `json:"count"`
}

type SearchResultItem struct {
	DocumentID string  `json:"document_id"`
	Name       string  `json:"name"`
	Score      float32 `json:"score"`
	Snippet    string  `json:"snippet"`
}

type SearchResponse struct {
	Query   string             `json:"query"`
	Results []SearchResultItem `json:"results"`
}
