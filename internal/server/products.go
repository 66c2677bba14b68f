package server

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListProducts(c *gin.Context) {
	products, err := s.products.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "products fetched", products)
}

func (s *Server) handleSearchProducts(c *gin.Context) {
	keyword := c.Query("keyword")
	category := c.Query("category")

	var minPrice, maxPrice *float64
	if v := c.Query("minPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondBadRequest(c, "minPrice must be a number")
			return
		}
		minPrice = &f
	}
	if v := c.Query("maxPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondBadRequest(c, "maxPrice must be a number")
			return
		}
		maxPrice = &f
	}

	products, err := s.products.SearchProducts(c.Request.Context(), keyword, category, minPrice, maxPrice)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "products fetched", products)
}

func (s *Server) handleGetProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "product id must be a number")
		return
	}

	product, err := s.products.GetByProductID(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	if product == nil {
		respondNotFound(c, "product not found")
		return
	}
	respondOK(c, "product fetched", product)
}

func (s *Server) handleRecommendations(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondBadRequest(c, "limit must be a number")
			return
		}
		limit = n
	}

	products, err := s.products.Recommendations(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "recommendations fetched", products)
}

func (s *Server) handleUpdateProductImages(c *gin.Context) {
	var req updateImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "mappings is required")
		return
	}

	updated, err := s.products.UpdateImages(c.Request.Context(), req.Mappings)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "product images updated", gin.H{"updated": updated})
}
