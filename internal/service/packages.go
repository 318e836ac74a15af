package service

import (
	"context"
	"fmt"

	"ceylontours/internal/cache"
	apperrors "ceylontours/internal/errors"
	"ceylontours/internal/logger"
	"ceylontours/internal/models"
	"ceylontours/internal/repository"
	"ceylontours/internal/search"
)

// PackageService owns the tour-package catalog. Postgres is the source
// of truth; Elasticsearch carries a derived search index and Valkey a
// short-lived cache of the public listing.
type PackageService struct {
	packageRepo *repository.PackageRepository
	search      *search.ElasticsearchClient
	cache       *cache.ValkeyClient
}

func NewPackageService(packageRepo *repository.PackageRepository, searchClient *search.ElasticsearchClient, cacheClient *cache.ValkeyClient) *PackageService {
	return &PackageService{
		packageRepo: packageRepo,
		search:      searchClient,
		cache:       cacheClient,
	}
}

// Create stores a new package and indexes it for search. Hotels arrive
// already structured and validated at the boundary; nothing here
// re-parses free-form JSON.
func (s *PackageService) Create(ctx context.Context, req *models.CreatePackageRequest) (*models.Package, error) {
	pkg := &models.Package{
		Title:       req.Title,
		Location:    req.Location,
		Price:       req.Price,
		Duration:    req.Duration,
		Description: req.Description,
		Included:    req.Included,
		Transport:   req.Transport,
		Food:        req.Food,
		Gallery:     req.Gallery,
		Hotels:      req.Hotels,
	}
	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	s.indexAndInvalidate(ctx, pkg)
	return pkg, nil
}

// GetByID returns one package.
func (s *PackageService) GetByID(ctx context.Context, id int64) (*models.Package, error) {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return nil, apperrors.ErrPackageNotFound
	}
	return pkg, nil
}

// List returns a page of the catalog.
func (s *PackageService) List(ctx context.Context, page, pageSize int) ([]models.Package, error) {
	packages, err := s.packageRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

// Search queries the Elasticsearch index. On index failure it falls
// back to the unfiltered catalog so the storefront still renders.
func (s *PackageService) Search(ctx context.Context, query, location string, maxPrice float64, page, pageSize int) ([]models.Package, error) {
	packages, err := s.search.Search(ctx, query, location, maxPrice, page, pageSize)
	if err != nil {
		logger.WithContext(ctx).Error("Package search failed, falling back to catalog listing",
			"error", err,
			"query", query)
		return s.List(ctx, page, pageSize)
	}
	return packages, nil
}

// Update rewrites a package and refreshes its search document.
func (s *PackageService) Update(ctx context.Context, id int64, req *models.CreatePackageRequest) (*models.Package, error) {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return nil, apperrors.ErrPackageNotFound
	}

	pkg.Title = req.Title
	pkg.Location = req.Location
	pkg.Price = req.Price
	pkg.Duration = req.Duration
	pkg.Description = req.Description
	pkg.Included = req.Included
	pkg.Transport = req.Transport
	pkg.Food = req.Food
	pkg.Gallery = req.Gallery
	pkg.Hotels = req.Hotels

	if err := s.packageRepo.Update(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}

	s.indexAndInvalidate(ctx, pkg)
	return pkg, nil
}

// Delete removes a package from the catalog and the search index.
func (s *PackageService) Delete(ctx context.Context, id int64) error {
	if err := s.packageRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	if err := s.search.DeletePackage(ctx, id); err != nil {
		logger.WithContext(ctx).Error("Failed to delete package from search index",
			"error", err,
			"package_id", id)
	}
	s.cache.InvalidatePackagesList(ctx)
	return nil
}

// Reindex rebuilds the whole search index from Postgres. Used by the
// reindex command after index loss or mapping changes.
func (s *PackageService) Reindex(ctx context.Context) (int, error) {
	packages, err := s.packageRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list packages: %w", err)
	}
	for i := range packages {
		if err := s.search.IndexPackage(ctx, &packages[i]); err != nil {
			return i, fmt.Errorf("failed to index package %d: %w", packages[i].ID, err)
		}
	}
	return len(packages), nil
}

// indexAndInvalidate refreshes the derived stores after a catalog
// write. Both are best effort: the next reindex or cache expiry heals a
// miss, the catalog row is already committed.
func (s *PackageService) indexAndInvalidate(ctx context.Context, pkg *models.Package) {
	if err := s.search.IndexPackage(ctx, pkg); err != nil {
		logger.WithContext(ctx).Error("Failed to index package",
			"error", err,
			"package_id", pkg.ID)
	}
	s.cache.InvalidatePackagesList(ctx)
}
