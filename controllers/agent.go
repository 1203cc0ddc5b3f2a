package controllers

import (
	"context"
	"errors"
	"net/http"

	"go-storefront/errs"
	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/services"
	"go-storefront/utils"

	"github.com/rs/zerolog/log"
)

// AgentController handles fulfilment: listing orders and moving them
// through the shipping states.
type AgentController struct {
	Store        *repository.Store
	Auth         *services.AuthService
	EmailService *utils.EmailService
	AgentSecret  string
}

func NewAgentController(store *repository.Store, auth *services.AuthService, emailService *utils.EmailService, agentSecret string) *AgentController {
	return &AgentController{Store: store, Auth: auth, EmailService: emailService, AgentSecret: agentSecret}
}

func (ac *AgentController) RegisterAgent(w http.ResponseWriter, r *http.Request) {
	registerStaff(w, r, ac.Store, ac.Auth, models.RoleAgent, ac.AgentSecret)
}

func (ac *AgentController) GetPurchases(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	purchases, err := ac.Store.Purchases.FindAll(ctx)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	views, err := populatePurchases(ctx, ac.Store, purchases, true)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": views})
}

// UpdateStatus moves a purchase to a new shipping status. Cancelling
// returns stock, delivering a cash order marks it paid.
func (ac *AgentController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShippingStatus models.ShippingStatus `json:"shippingStatus"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	next := req.ShippingStatus
	if !next.Valid() {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid shipping status")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Purchase not found")
		return
	}
	current, err := ac.Store.Purchases.FindByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		utils.WriteMessage(w, http.StatusNotFound, "Purchase not found")
		return
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if !current.ShippingStatus.CanTransitionTo(next) {
		utils.WriteError(w, r, errs.ErrInvalidTransition)
		return
	}

	updated, err := ac.Store.Purchases.SetShippingStatus(ctx, id, current.ShippingStatus, next)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	switch {
	case next == models.ShippingCancelled:
		restoreStock(ctx, ac.Store.Products, updated.Product, updated.Quantity)
	case next == models.ShippingDelivered && updated.PaymentMethod == models.PaymentCOD && updated.PaymentStatus != models.PaymentPaid:
		if updated, err = ac.Store.Purchases.SetPaymentStatus(ctx, id, models.PaymentPaid); err != nil {
			utils.WriteError(w, r, err)
			return
		}
	}

	log.Ctx(ctx).Info().
		Str("component", "agent").
		Str("purchase_id", id.Hex()).
		Str("from", string(current.ShippingStatus)).
		Str("to", string(next)).
		Msg("shipping status changed")

	notifyCustomer(r, ac.Store, "shipping-status", updated, ac.EmailService.SendShippingUpdate)

	views, err := populatePurchases(ctx, ac.Store, []models.Purchase{updated}, true)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Status updated",
		"data":    views[0],
	})
}

type purchaseMail func(ctx context.Context, user models.User, purchase models.Purchase, product models.Product) error

// notifyCustomer looks up buyer and product and mails them in the background
func notifyCustomer(r *http.Request, store *repository.Store, what string, purchase models.Purchase, send purchaseMail) {
	notify(r, what, func(ctx context.Context) error {
		user, err := store.Users.FindByID(ctx, purchase.User)
		if err != nil {
			return err
		}
		product, err := store.Products.FindByID(ctx, purchase.Product)
		if errors.Is(err, errs.ErrNotFound) {
			product = models.Product{Title: "your item"}
		} else if err != nil {
			return err
		}
		return send(ctx, user, purchase, product)
	})
}
