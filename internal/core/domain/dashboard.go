// internal/core/domain/dashboard.go
package domain

import "github.com/shopspring/decimal"

// BrandShare counts stock per brand bucket
type BrandShare struct {
	Brand string `json:"brand"`
	Count int64  `json:"count"`
}

// DashboardStats summarizes the inventory for the admin home screen
type DashboardStats struct {
	Available     int64           `json:"available"`
	Sold          int64           `json:"sold"`
	StockValue    decimal.Decimal `json:"stockValue"`
	SoldValue     decimal.Decimal `json:"soldValue"`
	AverageTicket decimal.Decimal `json:"averageTicket"`
	Brands        []BrandShare    `json:"brands"`
}

// ComputeAverageTicket fills AverageTicket from SoldValue and Sold
func (s *DashboardStats) ComputeAverageTicket() {
	if s.Sold == 0 {
		s.AverageTicket = decimal.Zero
		return
	}
	s.AverageTicket = s.SoldValue.Div(decimal.NewFromInt(s.Sold)).Round(2)
}
