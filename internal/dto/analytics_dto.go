package dto

// ProductScore pairs a product with its investment score, rounded to two
// decimals for display only.
type ProductScore struct {
	ProductID string  `json:"product_id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Stock     int     `json:"stock"`
	Score     float64 `json:"score"`
}

// AnalyticsResponse is sorted descending by score and includes the parallel
// arrays the dashboard chart consumes.
type AnalyticsResponse struct {
	Products []ProductScore `json:"products"`
	Chart    ChartData      `json:"chart"`
}

type ChartData struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// DashboardResponse holds the landing counts for the authenticated user.
type DashboardResponse struct {
	ProductsCount   int64 `json:"products_count"`
	InvoicesCount   int64 `json:"invoices_count"`
	DetectionsCount int64 `json:"detections_count"`
}
