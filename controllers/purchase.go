package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go-storefront/errs"
	"go-storefront/metrics"
	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/utils"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PurchaseController handles order placement and the buyer's order list
type PurchaseController struct {
	Store        *repository.Store
	EmailService *utils.EmailService
}

func NewPurchaseController(store *repository.Store, emailService *utils.EmailService) *PurchaseController {
	return &PurchaseController{Store: store, EmailService: emailService}
}

type purchaseRequest struct {
	ProductID     string               `json:"productId"`
	Size          string               `json:"size"`
	Quantity      *int                 `json:"quantity"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	TransactionID string               `json:"transactionId"`
}

// CreatePurchase reserves stock and records a single-product order
func (pc *PurchaseController) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := currentUser(ctx, pc.Store.Users)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if strings.TrimSpace(user.Address) == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "Fill the Address First")
		return
	}
	if strings.TrimSpace(user.Phone) == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "Fill the Phone Number First")
		return
	}
	if !req.PaymentMethod.Valid() {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid payment method")
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
	productID, err := bodyID(req.ProductID)
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	product, err := pc.Store.Products.FindByID(ctx, productID)
	if errors.Is(err, errs.ErrNotFound) {
		utils.WriteMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	if err = pc.Store.Products.DecrementStock(ctx, productID, quantity); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	purchase := models.Purchase{
		User:           user.ID,
		Product:        productID,
		Size:           req.Size,
		Quantity:       quantity,
		TotalAmount:    product.Price * float64(quantity),
		ShippingStatus: models.ShippingPlaced,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  req.PaymentMethod.InitialStatus(),
	}
	if txn := strings.TrimSpace(req.TransactionID); txn != "" {
		purchase.TransactionID = &txn
	}
	if err = pc.Store.Purchases.Create(ctx, &purchase); err != nil {
		pc.restoreStock(ctx, productID, quantity)
		utils.WriteError(w, r, err)
		return
	}
	metrics.RecordPurchase(string(purchase.PaymentMethod))

	notify(r, "order-confirmation", func(ctx context.Context) error {
		return pc.EmailService.SendOrderConfirmation(ctx, user, purchase, product)
	})

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Product purchased successfully",
		"data":    purchase,
	})
}

// GetPurchases lists the caller's orders with product and buyer resolved
func (pc *PurchaseController) GetPurchases(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	purchases, err := pc.Store.Purchases.FindByUser(ctx, middleware.UserID(ctx))
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	views, err := populatePurchases(ctx, pc.Store, purchases, true)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": views})
}

func (pc *PurchaseController) GetPurchase(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	purchase, err := pc.ownPurchase(ctx, r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	views, err := populatePurchases(ctx, pc.Store, []models.Purchase{purchase}, false)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": views[0]})
}

// RemovePurchase deletes an order, giving back stock it still holds
func (pc *PurchaseController) RemovePurchase(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	purchase, err := pc.ownPurchase(ctx, r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err = pc.Store.Purchases.Delete(ctx, purchase.ID); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if purchase.HoldsStock() {
		pc.restoreStock(ctx, purchase.Product, purchase.Quantity)
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": purchase})
}

// UpdatePurchase changes quantity or size while the order is still placed
func (pc *PurchaseController) UpdatePurchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity *int   `json:"quantity"`
		Size     string `json:"size"`
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

	purchase, err := pc.ownPurchase(ctx, r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if purchase.ShippingStatus != models.ShippingPlaced {
		utils.WriteError(w, r, errs.ErrNotEditable)
		return
	}
	product, err := pc.Store.Products.FindByID(ctx, purchase.Product)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	delta := quantity - purchase.Quantity
	switch {
	case delta > 0:
		err = pc.Store.Products.DecrementStock(ctx, purchase.Product, delta)
	case delta < 0:
		err = pc.Store.Products.IncrementStock(ctx, purchase.Product, -delta)
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	purchase.Quantity = quantity
	purchase.TotalAmount = product.Price * float64(quantity)
	if req.Size != "" {
		purchase.Size = req.Size
	}
	if err = pc.Store.Purchases.Update(ctx, purchase); err != nil {
		if delta > 0 {
			pc.restoreStock(ctx, purchase.Product, delta)
		}
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Purchase updated successfully",
		"data":    purchase,
	})
}

// ReviewPurchase stores free text feedback on the caller's own order
func (pc *PurchaseController) ReviewPurchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PurchaseID string `json:"purchaseId"`
		Review     string `json:"review"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if req.PurchaseID == "" || strings.TrimSpace(req.Review) == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "Missing fields")
		return
	}
	id, err := bodyID(req.PurchaseID)
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Purchase not found")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	purchase, err := pc.Store.Purchases.FindByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) || (err == nil && purchase.User != middleware.UserID(ctx)) {
		utils.WriteMessage(w, http.StatusNotFound, "Purchase not found")
		return
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	updated, err := pc.Store.Purchases.SetReview(ctx, id, req.Review)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Review added successfully",
		"purchase": updated,
	})
}

func (pc *PurchaseController) ownPurchase(ctx context.Context, r *http.Request) (models.Purchase, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return models.Purchase{}, errs.ErrNotFound
	}
	purchase, err := pc.Store.Purchases.FindByID(ctx, id)
	if err != nil {
		return models.Purchase{}, err
	}
	if purchase.User != middleware.UserID(ctx) {
		return models.Purchase{}, errs.ErrNotFound
	}
	return purchase, nil
}

func (pc *PurchaseController) restoreStock(ctx context.Context, productID primitive.ObjectID, qty int) {
	restoreStock(ctx, pc.Store.Products, productID, qty)
}

// restoreStock gives units back; a deleted product has nothing to restore
func restoreStock(ctx context.Context, products repository.ProductRepository, productID primitive.ObjectID, qty int) {
	err := products.IncrementStock(ctx, productID, qty)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		log.Ctx(ctx).Error().Err(err).
			Str("component", "stock").
			Str("product_id", productID.Hex()).
			Int("quantity", qty).
			Msg("failed to restore stock")
	}
}
