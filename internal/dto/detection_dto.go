package dto

// DetectionResponse is returned after an upload: the stored run plus the
// raw counts the stub produced.
type DetectionResponse struct {
	ID            string         `json:"id"`
	Filename      string         `json:"filename"`
	Result        map[string]int `json:"result"`
	BBoxImagePath string         `json:"bbox_image_path"`
	CreatedAt     string         `json:"created_at"`
}

// DetectedItem enriches one (class, qty) pair with catalog data for display.
// SKU and Product stay empty when the class is unknown or unmapped.
type DetectedItem struct {
	ClassName      string `json:"class_name"`
	Qty            int    `json:"qty"`
	SKU            string `json:"sku,omitempty"`
	ProductName    string `json:"product_name,omitempty"`
	AvailableStock int    `json:"available_stock"`
}

// DetectionDetailResponse is the detection result view: items in a stable
// order plus non-fatal warnings (unknown class, missing mapping or product).
type DetectionDetailResponse struct {
	Detection DetectionResponse `json:"detection"`
	Items     []DetectedItem    `json:"items"`
	Warnings  []string          `json:"warnings"`
}

type DetectionListResponse struct {
	Data  []DetectionResponse `json:"data"`
	Total int64               `json:"total"`
}
