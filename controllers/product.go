package controllers

import (
	"net/http"

	"go-storefront/repository"
	"go-storefront/utils"
)

// ProductController handles the public catalogue
type ProductController struct {
	Store *repository.Store
}

func NewProductController(store *repository.Store) *ProductController {
	return &ProductController{Store: store}
}

// GetProducts retrieves all products
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	products, err := pc.Store.Products.FindAll(ctx)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": products})
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	product, err := pc.Store.Products.FindByID(ctx, id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": product})
}
