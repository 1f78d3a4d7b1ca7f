package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/suhail1malik/EcommerceStore/internal/auth"
	"github.com/suhail1malik/EcommerceStore/internal/catalog"
	"github.com/suhail1malik/EcommerceStore/internal/domain"
	"github.com/suhail1malik/EcommerceStore/internal/review"
)

type ProductHandler struct {
	catalog *catalog.Service
	reviews *review.Service
	users   *auth.Service
}

func NewProductHandler(catalog *catalog.Service, reviews *review.Service, users *auth.Service) *ProductHandler {
	return &ProductHandler{catalog: catalog, reviews: reviews, users: users}
}

type ProductRequestDTO struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

type AddReviewRequestDTO struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// FilterProductsRequestDTO is the shop page filter: any of the categories,
// and an optional [min, max] price range.
type FilterProductsRequestDTO struct {
	Categories []string  `json:"categories"`
	PriceRange []float64 `json:"price_range"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	result, err := h.catalog.List(r.Context(), r.URL.Query().Get("keyword"), page)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *ProductHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var req FilterProductsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	var minPrice, maxPrice float64
	if len(req.PriceRange) == 2 {
		minPrice, maxPrice = req.PriceRange[0], req.PriceRange[1]
	} else if len(req.PriceRange) != 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "price_range must be [min, max]")
		return
	}

	products, err := h.catalog.Filter(r.Context(), req.Categories, minPrice, maxPrice)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListAdmin(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(r.Context(), chi.URLParam(r, "product_id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.TopRated(r.Context(), 4)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Newest(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Newest(r.Context(), 5)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	p := productFromDTO(req)
	id, err := h.catalog.Create(r.Context(), p)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	p.ID = id
	respondJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	p := productFromDTO(req)
	p.ID = chi.URLParam(r, "product_id")
	if err := h.catalog.Update(r.Context(), p); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), chi.URLParam(r, "product_id")); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromContext(r.Context())

	var req AddReviewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, err := h.users.Get(r.Context(), id.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	productID := chi.URLParam(r, "product_id")
	p, err := h.reviews.Add(r.Context(), productID, user, req.Rating, req.Comment)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// The cached copy predates the new review.
	h.catalog.Invalidate(productID)

	respondJSON(w, http.StatusCreated, p)
}

func productFromDTO(req ProductRequestDTO) *domain.Product {
	return &domain.Product{
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Stock:       req.Stock,
	}
}
