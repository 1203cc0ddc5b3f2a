package controllers

import (
	"errors"
	"net/http"

	"go-storefront/errs"
	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistController handles the saved-for-later list
type WishlistController struct {
	Store *repository.Store
}

func NewWishlistController(store *repository.Store) *WishlistController {
	return &WishlistController{Store: store}
}

type wishlistRequest struct {
	ID string `json:"id"`
}

func (wc *WishlistController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var req wishlistRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if req.ID == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "Product ID is required")
		return
	}
	productID, err := bodyID(req.ID)
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if _, err = wc.Store.Products.FindByID(ctx, productID); errors.Is(err, errs.ErrNotFound) {
		utils.WriteMessage(w, http.StatusNotFound, "Product not found")
		return
	} else if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	item := models.WishlistItem{User: middleware.UserID(ctx), Product: productID}
	if err = wc.Store.Wishlists.Add(ctx, &item); errors.Is(err, errs.ErrAlreadyExists) {
		utils.WriteMessage(w, http.StatusBadRequest, "Product Already in Wishlist")
		return
	} else if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": item})
}

// GetWishlist returns the products on the user's wishlist
func (wc *WishlistController) GetWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	items, err := wc.Store.Wishlists.FindByUser(ctx, middleware.UserID(ctx))
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.Product)
	}
	found, err := wc.Store.Products.FindByIDs(ctx, ids)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	// deleted products drop out of the list
	products := make([]models.Product, 0, len(items))
	for _, item := range items {
		if p, ok := found[item.Product]; ok {
			products = append(products, p)
		}
	}
	if len(products) == 0 {
		utils.WriteMessage(w, http.StatusNotFound, "No products found in wishlist")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (wc *WishlistController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	var req wishlistRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if req.ID == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "Product ID is required")
		return
	}
	productID, err := bodyID(req.ID)
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Item not found in wishlist")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err = wc.Store.Wishlists.Remove(ctx, middleware.UserID(ctx), productID); errors.Is(err, errs.ErrNotFound) {
		utils.WriteMessage(w, http.StatusNotFound, "Item not found in wishlist")
		return
	} else if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Product removed from wishlist")
}
