// internal/core/domain/import.go
package domain

// ImportRowError is a spreadsheet row that was not imported
type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResult summarizes a spreadsheet import
type ImportResult struct {
	Created int              `json:"created"`
	Skipped []ImportRowError `json:"skipped"`
}
