package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/taskcart/taskcart/catalog"
)

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int    `json:"stock"`
}

func (req *productRequest) validate() (string, bool) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "product name is required", false
	}
	if req.PriceCents < 0 {
		return "price must not be negative", false
	}
	if req.Stock < 0 {
		return "stock must not be negative", false
	}
	return "", true
}

func (s *Server) ListProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Products.List(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) GetProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := s.repos.Products.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, product)
	}
}

func (s *Server) CreateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
			return
		}
		if reason, ok := req.validate(); !ok {
			writeError(w, http.StatusBadRequest, "invalid_input", reason)
			return
		}

		product := &catalog.Product{
			Name:        req.Name,
			Description: req.Description,
			PriceCents:  req.PriceCents,
			Stock:       req.Stock,
			CreatedAt:   time.Now(),
		}
		if err := s.repos.Products.Create(r.Context(), product); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, product)
	}
}

func (s *Server) UpdateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := s.repos.Products.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		var req productRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
			return
		}
		if reason, ok := req.validate(); !ok {
			writeError(w, http.StatusBadRequest, "invalid_input", reason)
			return
		}

		product.Name = req.Name
		product.Description = req.Description
		product.PriceCents = req.PriceCents
		product.Stock = req.Stock
		if err := s.repos.Products.Update(r.Context(), product); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, product)
	}
}

func (s *Server) DeleteProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.repos.Products.Delete(r.Context(), r.PathValue("id")); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusNoContent, nil)
	}
}
