package teams

// RegisterTeamRequest represents the data needed to register a new team
type RegisterTeamRequest struct {
	Name         string  `json:"name"`
	Coach        string  `json:"coach"`
	ContactEmail string  `json:"contact_email"`
	ContactPhone string  `json:"contact_phone"`
	Description  *string `json:"description,omitempty"`
	Logo         *string `json:"logo,omitempty"`
}

// UpdateStatusRequest represents an admin approval decision
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// TeamStats represents aggregate team counts
type TeamStats struct {
	Total     int `json:"total"`
	Approved  int `json:"approved"`
	Pending   int `json:"pending"`
	Rejected  int `json:"rejected"`
	PaidTeams int `json:"paid_teams"`
}
