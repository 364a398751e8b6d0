package models

// Resume is one candidate document handed to the screening pipeline. The raw
// bytes are kept in memory so the extractor can read them more than once
// (text layer first, then the OCR fallback).
type Resume struct {
	Name   string
	Format Format
	Data   []byte
}

// Profile holds the structured fields derived from a resume's plain text.
// Missing fields carry the sentinel values, not empty strings.
type Profile struct {
	Experience string `json:"experience"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// ScoredCandidate is one row of the final ranked result set.
type ScoredCandidate struct {
	Rank       int     `json:"rank"`
	Name       string  `json:"name"`
	Experience string  `json:"experience"`
	Email      string  `json:"email"`
	Contact    string  `json:"contact"`
	MatchScore float64 `json:"match_score"`
	FinalScore float64 `json:"final_score"`
}
