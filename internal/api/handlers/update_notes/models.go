package update_notes

// UpdateNotesRequest HTTP request model
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// UpdateNotesResponse HTTP response model
type UpdateNotesResponse struct {
	Message string `json:"message"`
}
