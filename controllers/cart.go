package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go-storefront/errs"
	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartController handles cart-related requests
type CartController struct {
	Store *repository.Store
}

func NewCartController(store *repository.Store) *CartController {
	return &CartController{Store: store}
}

type cartRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  *int   `json:"quantity"`
}

// AddToCart adds a product line to the user's cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	quantity := models.MinItemQuantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if !models.ValidQuantity(quantity) {
		utils.WriteMessage(w, http.StatusBadRequest, "Quantity must be between 1 and 100")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if _, err = cc.Store.Products.FindByID(ctx, productID); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	item := models.CartItem{
		User:     middleware.UserID(ctx),
		Product:  productID,
		Size:     req.Size,
		Quantity: quantity,
	}
	if err = cc.Store.Carts.Create(ctx, &item); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Product added to cart successfully",
		"data":    item,
	})
}

// GetCart retrieves the user's cart with products resolved
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	items, err := cc.Store.Carts.FindByUser(ctx, middleware.UserID(ctx))
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	views, err := cc.populate(ctx, items)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": views})
}

func (cc *CartController) GetCartItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	item, err := cc.ownItem(ctx, r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	views, err := cc.populate(ctx, []models.CartItem{item})
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product fetched successfully",
		"data":    views[0],
	})
}

// RemoveFromCart deletes one of the user's cart lines
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	item, err := cc.ownItem(ctx, r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err = cc.Store.Carts.Delete(ctx, item.ID); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Products Deleted successfully",
		"data":    item,
	})
}

// UpdateQuantity changes a line's quantity within limits and stock
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil || req.Quantity == nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Quantity must be a number")
		return
	}
	quantity := *req.Quantity
	if !models.ValidQuantity(quantity) {
		utils.WriteMessage(w, http.StatusBadRequest, "Quantity must be between 1 and 100")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	item, err := cc.ownItem(ctx, r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	product, err := cc.Store.Products.FindByID(ctx, item.Product)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		utils.WriteError(w, r, err)
		return
	}
	if err == nil && product.Stock < quantity {
		utils.WriteMessage(w, http.StatusBadRequest, fmt.Sprintf("Only %d items available in stock", product.Stock))
		return
	}

	item.Quantity = quantity
	if err = cc.Store.Carts.Update(ctx, item); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	views, err := cc.populate(ctx, []models.CartItem{item})
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Quantity updated successfully",
		"data":    views[0],
	})
}

// UpdateCartItem sets quantity and size of the line holding productId
func (cc *CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if req.ProductID == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "User or Product ID missing")
		return
	}
	productID, err := bodyID(req.ProductID)
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Cart item not found")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	item, err := cc.Store.Carts.FindByUserAndProduct(ctx, middleware.UserID(ctx), productID)
	if errors.Is(err, errs.ErrNotFound) {
		utils.WriteMessage(w, http.StatusNotFound, "Cart item not found")
		return
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if req.Quantity != nil {
		if !models.ValidQuantity(*req.Quantity) {
			utils.WriteMessage(w, http.StatusBadRequest, "Quantity must be between 1 and 100")
			return
		}
		item.Quantity = *req.Quantity
	}
	item.Size = req.Size

	if err = cc.Store.Carts.Update(ctx, item); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Cart item updated successfully",
		"data":    item,
	})
}

// ownItem loads the {id} cart line, hiding lines of other users
func (cc *CartController) ownItem(ctx context.Context, r *http.Request) (models.CartItem, error) {
	name := "id"
	if _, ok := muxVar(r, "cartItemId"); ok {
		name = "cartItemId"
	}
	id, err := pathID(r, name)
	if err != nil {
		return models.CartItem{}, errs.ErrNotFound
	}
	item, err := cc.Store.Carts.FindByID(ctx, id)
	if err != nil {
		return models.CartItem{}, err
	}
	if item.User != middleware.UserID(ctx) {
		return models.CartItem{}, errs.ErrNotFound
	}
	return item, nil
}

func (cc *CartController) populate(ctx context.Context, items []models.CartItem) ([]models.CartItemView, error) {
	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.Product)
	}
	products, err := cc.Store.Products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.CartItemView, 0, len(items))
	for _, item := range items {
		view := models.CartItemView{
			ID:        item.ID,
			User:      item.User,
			Size:      item.Size,
			Quantity:  item.Quantity,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		}
		if product, ok := products[item.Product]; ok {
			view.Product = &product
		}
		views = append(views, view)
	}
	return views, nil
}
