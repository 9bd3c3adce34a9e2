package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mywallet/internal/models"
	"mywallet/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name      string           `json:"name" binding:"required,min=1,max=100"`
	Type      models.EntryType `json:"type" binding:"required,ledger_type"`
	Subgroups []string         `json:"subgroups"`
	IsFixed   bool             `json:"is_fixed"`
	Color     string           `json:"color" binding:"omitempty,hex_color"`
}

// UpdateCategoryRequest represents the request body for updating a category
type UpdateCategoryRequest struct {
	Name      *string   `json:"name" binding:"omitempty,min=1,max=100"`
	Subgroups *[]string `json:"subgroups"`
	IsFixed   *bool     `json:"is_fixed"`
	Color     *string   `json:"color" binding:"omitempty,hex_color"`
}

// CreateCategory handles POST /categories.
// @Summary     Create a category
// @Description Revenue categories never keep subgroups or a color
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} CategoryResponse "Category created"
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     409 {object} middleware.ErrorResponse "Duplicate name for this type"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.categoryService.CreateCategory(req.Name, req.Type, req.Subgroups, req.IsFixed, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Category: category})
}

// GetCategories handles GET /categories with an optional ?type= filter.
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Param       type query string false "expense or revenue"
// @Success     200 {object} CategoryListResponse "Categories"
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categoryType, err := parseTypeQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.GetCategories(categoryType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Categories: categories})
}

// GetCategoryByID handles GET /categories/:id.
// @Summary     Get a category
// @Tags        categories
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {object} CategoryResponse "Category"
// @Failure     400 {object} middleware.ErrorResponse "Invalid category ID"
// @Failure     404 {object} middleware.ErrorResponse "Category not found"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Category: category})
}

// UpdateCategory handles PUT /categories/:id.
// @Summary     Update a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id path int true "Category ID"
// @Param       request body UpdateCategoryRequest true "Fields to change"
// @Success     200 {object} CategoryResponse "Category updated"
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     404 {object} middleware.ErrorResponse "Category not found"
// @Failure     409 {object} middleware.ErrorResponse "Duplicate name for this type"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.categoryService.UpdateCategory(categoryID, services.CategoryUpdate{
		Name:      req.Name,
		Subgroups: req.Subgroups,
		IsFixed:   req.IsFixed,
		Color:     req.Color,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Category: category})
}

// DeleteCategory handles DELETE /categories/:id.
// @Summary     Delete a category
// @Description Refused with CATEGORY_IN_USE while ledger rows reference it
// @Tags        categories
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {object} MessageResponse "Category deleted"
// @Failure     404 {object} middleware.ErrorResponse "Category not found"
// @Failure     409 {object} middleware.ErrorResponse "Category has linked transactions"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Category deleted successfully"})
}
