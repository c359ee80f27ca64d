package domain

// Request and response bodies of the HTTP API

// GenerateRequest runs the pipeline without saving anything
type GenerateRequest struct {
	Inputs Inputs `json:"inputs"`
}

type GenerateResponse struct {
	Outputs Output `json:"outputs"`
}

// GenerateAndSaveRequest runs the pipeline and stores the result under a new id
type GenerateAndSaveRequest struct {
	Inputs   Inputs   `json:"inputs"`
	Customer Customer `json:"customer"`
}

type PricingPreviewRequest struct {
	Inputs Inputs `json:"inputs"`
}

// SaveEstimateRequest creates or replaces a stored estimate
type SaveEstimateRequest struct {
	ID       string   `json:"id" validate:"required,min=6,max=100"`
	Title    string   `json:"title" validate:"required,min=1,max=200"`
	Zip      string   `json:"zip" validate:"required,min=5,max=10"`
	Trade    Trade    `json:"trade" validate:"enum"`
	Customer Customer `json:"customer"`
	Inputs   Inputs   `json:"inputs"`
	Outputs  Output   `json:"outputs"`
}

type EstimateDTO struct {
	ID        string   `json:"id"`
	CreatedAt string   `json:"createdAt"` // ISO 8601
	UpdatedAt string   `json:"updatedAt"` // ISO 8601
	Title     string   `json:"title"`
	Zip       string   `json:"zip"`
	Trade     Trade    `json:"trade"`
	Customer  Customer `json:"customer"`
	Inputs    Inputs   `json:"inputs"`
	Outputs   Output   `json:"outputs"`
}

type EstimateSummaryDTO struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"` // ISO 8601
	UpdatedAt string `json:"updatedAt"` // ISO 8601
	Title     string `json:"title"`
	Zip       string `json:"zip"`
	Trade     Trade  `json:"trade"`
}

type EstimateListResponse struct {
	Items []EstimateSummaryDTO `json:"items"`
}

// DefaultsDTO is what the estimate wizard starts from
type DefaultsDTO struct {
	Inputs   Inputs   `json:"inputs"`
	Customer Customer `json:"customer"`
	Trades   []Trade  `json:"trades"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
