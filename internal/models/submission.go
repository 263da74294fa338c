package models

// Vitals holds the raw form values sent with a new entry. They are passed
// to the backend verbatim.
type Vitals struct {
	Sys   string `json:"sys"`
	Dia   string `json:"dia"`
	Pulse string `json:"pulse"`
	Temp  string `json:"temp"`
}

// Attachment is one file part of a submission.
type Attachment struct {
	Field       string
	FileName    string
	ContentType string
	Data        []byte
}
