package models

// SiteFilter represents filter parameters for querying sites
type SiteFilter struct {
	Technology string `form:"technology"`
	Name       string `form:"name"`
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
}

// SessionFilter represents filter parameters for querying sessions
type SessionFilter struct {
	FileID   string `form:"fileId"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// SitesResponse represents a paginated response of sites
type SitesResponse struct {
	Data       []*Site `json:"data"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

// SessionsResponse represents a paginated response of sessions
type SessionsResponse struct {
	Data       []*Session `json:"data"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
}
