// products.go

package main

import (
	"strings"

	"github.com/gin-gonic/gin"
)

type productRequest struct {
	Name        string   `json:"name" binding:"required,min=2"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Stock       *int     `json:"stock" binding:"required,gte=0"`
	Category    string   `json:"category"`
	Description string   `json:"description" binding:"omitempty,max=500"`
	ImageURL    string   `json:"imageUrl"`
}

// Updates are partial: only fields present in the body are touched.
type productUpdateRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
	ImageURL    *string  `json:"imageUrl"`
}

func (s *server) listProducts(c *gin.Context) {
	products, err := s.products.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "Products fetched successfully", products, len(products))
}

func (s *server) getProduct(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	product, err := s.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "", product)
}

func (s *server) createProduct(c *gin.Context) {
	var req productRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	product := Product{
		Name:        strings.TrimSpace(req.Name),
		Price:       *req.Price,
		Stock:       *req.Stock,
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		ImageURL:    req.ImageURL,
	}
	if product.Category == "" {
		product.Category = defaultCategory
	}
	if product.ImageURL == "" {
		product.ImageURL = defaultImageURL
	}
	product.RefreshAvailability()
	if err := s.products.Insert(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 201, "Product created successfully", product)
}

func (s *server) updateProduct(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	var req productUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	product, err := s.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	product.RefreshAvailability()
	if err := s.products.Update(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "Product updated successfully", product)
}

func (s *server) deleteProduct(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "Product deleted successfully", nil)
}
