package dto

// CodeRunRequest runs a snippet outside of the interview flow.
type CodeRunRequest struct {
	Language string `json:"language" validate:"required"`
	Code     string `json:"code" validate:"required,min=1"`
	Stdin    string `json:"stdin"`
}

// CodeRunResponse reports the execution outcome.
type CodeRunResponse struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
}
