// Package api holds types shared by the HTTP handlers.
package api

// Pagination describes a page of a listing
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
	Total   int `json:"total"`
}
