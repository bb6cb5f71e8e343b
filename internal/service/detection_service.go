package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/amirclear/shelf-inventory/internal/detection"
	"github.com/amirclear/shelf-inventory/internal/dto"
	"github.com/amirclear/shelf-inventory/internal/model"
	"github.com/amirclear/shelf-inventory/internal/repository"

	"github.com/google/uuid"
)

type DetectionService interface {
	// Upload persists the image, runs the filename rules against the
	// original upload name, and stores the resulting DetectionRun.
	Upload(ctx context.Context, userID uuid.UUID, filename string, src io.Reader) (*dto.DetectionResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.DetectionDetailResponse, error)
	List(ctx context.Context, userID uuid.UUID) (*dto.DetectionListResponse, error)
}

type detectionService struct {
	repo        repository.DetectionRepository
	productRepo repository.ProductRepository
	uploadPath  string
}

func NewDetectionService(repo repository.DetectionRepository, productRepo repository.ProductRepository, uploadPath string) DetectionService {
	return &detectionService{repo: repo, productRepo: productRepo, uploadPath: uploadPath}
}

func (s *detectionService) Upload(ctx context.Context, userID uuid.UUID, filename string, src io.Reader) (*dto.DetectionResponse, error) {
	if filepath.Base(filename) != filename {
		return nil, errors.New("invalid filename")
	}

	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	// UUID prefix avoids collisions between identical upload names.
	storedName := uuid.NewString() + "_" + filename
	imagePath := filepath.Join(s.uploadPath, storedName)
	dst, err := os.Create(imagePath)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, fmt.Errorf("store upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	// Matching runs on the original filename, not the uuid-prefixed one.
	result := detection.Detect(filename)

	run := &model.DetectionRun{
		UserID:        userID,
		ImagePath:     imagePath,
		Filename:      filename,
		Result:        result.Counts,
		BBoxImagePath: result.BBox,
	}
	if err := s.repo.Create(ctx, run); err != nil {
		return nil, err
	}
	return detectionToResponse(run), nil
}

// Get returns the stored run enriched with catalog data: each detected class
// resolved to its SKU and product where possible, plus warning strings for
// the non-fatal conditions (unknown class, missing mapping, missing product).
func (s *detectionService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.DetectionDetailResponse, error) {
	run, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, ErrDetectionNotFound
	}

	classes := make([]string, 0, len(run.Result))
	for class := range run.Result {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	resp := &dto.DetectionDetailResponse{Detection: *detectionToResponse(run)}
	for _, class := range classes {
		qty := run.Result[class]
		item := dto.DetectedItem{ClassName: class, Qty: qty}

		if detection.IsUnknown(class) {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("Unknown item detected (qty=%d).", qty))
			resp.Items = append(resp.Items, item)
			continue
		}

		sku, ok := detection.ResolveSKU(class)
		if !ok {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("No SKU mapping found for detected class: %s", class))
			resp.Items = append(resp.Items, item)
			continue
		}
		item.SKU = sku

		p, err := s.productRepo.FindBySKU(ctx, sku)
		if err != nil {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("Product not found for class: %s (expected SKU: %s)", class, sku))
			resp.Items = append(resp.Items, item)
			continue
		}
		item.ProductName = p.Name
		item.AvailableStock = p.Stock
		resp.Items = append(resp.Items, item)
	}
	return resp, nil
}

func (s *detectionService) List(ctx context.Context, userID uuid.UUID) (*dto.DetectionListResponse, error) {
	runs, total, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := &dto.DetectionListResponse{Total: total, Data: make([]dto.DetectionResponse, 0, len(runs))}
	for i := range runs {
		resp.Data = append(resp.Data, *detectionToResponse(&runs[i]))
	}
	return resp, nil
}

func detectionToResponse(run *model.DetectionRun) *dto.DetectionResponse {
	return &dto.DetectionResponse{
		ID:            run.ID.String(),
		Filename:      run.Filename,
		Result:        run.Result,
		BBoxImagePath: run.BBoxImagePath,
		CreatedAt:     run.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
