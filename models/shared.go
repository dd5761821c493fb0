package models

// Pagination mirrors the backend's paging metadata. It is always taken from
// the latest server response, never computed client-side.
type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
	Limit      int `json:"limit"`
}

// SearchPage is one fetched page of providers plus its paging metadata.
type SearchPage struct {
	Providers  []Provider `json:"providers"`
	Pagination Pagination `json:"pagination"`
}
