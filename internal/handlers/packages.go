package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ceylontours/internal/models"
)

// Packages handlers

// ListPackages - GET /api/packages
// Public catalog listing. The default first pages are served from the
// Valkey cache as raw JSON to skip re-marshaling under load.
func (h *Handlers) ListPackages(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	if page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 1"})
		return
	}
	if pageSize < 1 || pageSize > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be between 1 and 50"})
		return
	}

	if h.valkeyClient != nil {
		if rawJSON, err := h.valkeyClient.GetPackagesListRaw(c.Request.Context(), page, pageSize); err == nil {
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
	}

	packages, err := h.services.Packages.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.respondError(c, err, "Failed to list packages")
		return
	}

	if h.valkeyClient != nil {
		h.valkeyClient.SetPackagesList(c.Request.Context(), page, pageSize, packages)
	}

	c.JSON(http.StatusOK, packages)
}

// SearchPackages - GET /api/packages/search
func (h *Handlers) SearchPackages(c *gin.Context) {
	query := c.Query("query")
	location := c.Query("location")
	maxPrice, _ := strconv.ParseFloat(c.DefaultQuery("maxPrice", "0"), 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	if page < 1 || pageSize < 1 || pageSize > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination"})
		return
	}

	packages, err := h.services.Packages.Search(c.Request.Context(), query, location, maxPrice, page, pageSize)
	if err != nil {
		h.respondError(c, err, "Failed to search packages")
		return
	}

	c.JSON(http.StatusOK, packages)
}

// GetPackage - GET /api/packages/:id
func (h *Handlers) GetPackage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}

	pkg, err := h.services.Packages.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to get package")
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// CreatePackage - POST /api/admin/packages
func (h *Handlers) CreatePackage(c *gin.Context) {
	var req models.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pkg, err := h.services.Packages.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to create package")
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

// UpdatePackage - PUT /api/admin/packages/:id
func (h *Handlers) UpdatePackage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}

	var req models.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pkg, err := h.services.Packages.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err, "Failed to update package")
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// DeletePackage - DELETE /api/admin/packages/:id
func (h *Handlers) DeletePackage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}

	if err := h.services.Packages.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to delete package")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListPackageReviews - GET /api/packages/:id/reviews
func (h *Handlers) ListPackageReviews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}

	reviews, err := h.services.Content.ListReviews(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to list reviews")
		return
	}

	c.JSON(http.StatusOK, reviews)
}
