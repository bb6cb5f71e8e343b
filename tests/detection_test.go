package tests

import (
	"context"
	"testing"

	"github.com/amirclear/shelf-inventory/internal/detection"
	"github.com/amirclear/shelf-inventory/internal/model"
	"github.com/amirclear/shelf-inventory/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_Shelf1(t *testing.T) {
	res := detection.Detect("shelf1_photo.jpg")
	assert.Equal(t, map[string]int{"coke": 14, "pepsi": 5}, res.Counts)
	assert.Equal(t, "bboxes/shelf1_bbox.jpg", res.BBox)
}

func TestDetect_Shelf2AltWinsOverShelf2(t *testing.T) {
	// "shelf2_alt" contains "shelf2" as a substring; the more specific rule
	// must win because it is evaluated first.
	res := detection.Detect("IMG_shelf2_alt_20240101.jpg")
	assert.Equal(t, map[string]int{"chips": 3}, res.Counts)
	assert.Equal(t, "bboxes/shelf2_alt_bbox.jpg", res.BBox)

	res = detection.Detect("shelf2.jpg")
	assert.Equal(t, map[string]int{"chips": 5, "coke": 1}, res.Counts)
}

func TestDetect_CaseInsensitive(t *testing.T) {
	res := detection.Detect("SHELF3_FRONT.JPG")
	assert.Equal(t, map[string]int{"water": 13, "chips": 3, "coke": 3}, res.Counts)
}

func TestDetect_NoMatch(t *testing.T) {
	for _, name := range []string{"random.jpg", "", "photo_of_cat.png"} {
		res := detection.Detect(name)
		assert.Equal(t, map[string]int{"unknown": 0}, res.Counts, "filename=%q", name)
		assert.Equal(t, "bboxes/unknown_bbox.jpg", res.BBox)
	}
}

func TestDetect_ReturnsCopy(t *testing.T) {
	a := detection.Detect("shelf1.jpg")
	a.Counts["coke"] = 999
	b := detection.Detect("shelf1.jpg")
	assert.Equal(t, 14, b.Counts["coke"])
}

func TestResolveSKU(t *testing.T) {
	sku, ok := detection.ResolveSKU("coke")
	require.True(t, ok)
	assert.Equal(t, "COKE-001", sku)

	sku, ok = detection.ResolveSKU("Chips") // case-insensitive
	require.True(t, ok)
	assert.Equal(t, "CHIPS-001", sku)

	_, ok = detection.ResolveSKU("unknown")
	assert.False(t, ok)
	_, ok = detection.ResolveSKU("sprite")
	assert.False(t, ok)
}

func TestIsUnknown(t *testing.T) {
	assert.True(t, detection.IsUnknown("unknown"))
	assert.True(t, detection.IsUnknown("Unknown"))
	assert.False(t, detection.IsUnknown("coke"))
}

// ── Detection result view ────────────────────────────────────────────────────

func TestDetectionGet_Warnings(t *testing.T) {
	userID := uuid.New()
	productRepo := newStubProductRepo()
	detectionRepo := newStubDetectionRepo()
	seedProduct(productRepo, "COKE-001", "Coca-Cola 330ml", 2.50, 100, 80, 0.25)
	// CHIPS-001 intentionally missing from the catalog.

	run := seedDetection(detectionRepo, userID, "mixed.jpg", model.DetectionResult{
		"coke":    2,
		"chips":   3,
		"unknown": 1,
		"sprite":  4,
	})

	svc := service.NewDetectionService(detectionRepo, productRepo, t.TempDir())
	resp, err := svc.Get(context.Background(), userID, run.ID)
	require.NoError(t, err)

	assert.Contains(t, resp.Warnings, "Unknown item detected (qty=1).")
	assert.Contains(t, resp.Warnings, "No SKU mapping found for detected class: sprite")
	assert.Contains(t, resp.Warnings, "Product not found for class: chips (expected SKU: CHIPS-001)")

	// The mapped-and-present class carries catalog data.
	var coke bool
	for _, it := range resp.Items {
		if it.ClassName == "coke" {
			coke = true
			assert.Equal(t, "COKE-001", it.SKU)
			assert.Equal(t, "Coca-Cola 330ml", it.ProductName)
			assert.Equal(t, 100, it.AvailableStock)
		}
	}
	assert.True(t, coke)
}

func TestDetectionGet_WrongUser(t *testing.T) {
	productRepo := newStubProductRepo()
	detectionRepo := newStubDetectionRepo()
	run := seedDetection(detectionRepo, uuid.New(), "shelf1.jpg", model.DetectionResult{"coke": 1})

	svc := service.NewDetectionService(detectionRepo, productRepo, t.TempDir())
	_, err := svc.Get(context.Background(), uuid.New(), run.ID)
	assert.Error(t, err)
}
