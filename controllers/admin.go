package controllers

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"go-storefront/errs"
	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/services"
	"go-storefront/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminController handles the back-office routes
type AdminController struct {
	Store        *repository.Store
	Auth         *services.AuthService
	EmailService *utils.EmailService
	AdminSecret  string
}

func NewAdminController(store *repository.Store, auth *services.AuthService, emailService *utils.EmailService, adminSecret string) *AdminController {
	return &AdminController{Store: store, Auth: auth, EmailService: emailService, AdminSecret: adminSecret}
}

type staffRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Avatar      string `json:"avatar"`
	AdminSecret string `json:"adminSecret"`
	AgentSecret string `json:"agentSecret"`
}

// registerStaff creates a pre-verified admin or agent once the shared
// secret matches, then signs the account in.
func registerStaff(w http.ResponseWriter, r *http.Request, store *repository.Store, auth *services.AuthService, role models.Role, secret string) {
	var req staffRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	label := "Admin"
	given := req.AdminSecret
	if role == models.RoleAgent {
		label = "Agent"
		given = req.AgentSecret
	}
	if secret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(secret)) != 1 {
		utils.WriteMessage(w, http.StatusForbidden, "Invalid "+strings.ToLower(label)+" secret key.")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if _, err := store.Users.FindByEmail(ctx, req.Email); err == nil {
		utils.WriteMessage(w, http.StatusConflict, label+" with this email already exists.")
		return
	} else if !errors.Is(err, errs.ErrNotFound) {
		utils.WriteError(w, r, err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	user := models.User{
		Name:            req.Name,
		Email:           req.Email,
		Password:        hash,
		Role:            role,
		IsEmailVerified: true,
		Address:         req.Address,
		Phone:           req.Phone,
		Avatar:          req.Avatar,
	}
	if err = store.Users.Create(ctx, &user); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			utils.WriteMessage(w, http.StatusConflict, label+" with this email already exists.")
			return
		}
		utils.WriteError(w, r, err)
		return
	}

	tokens, err := auth.Authenticate(ctx, user, middleware.ClientIP(r), r.UserAgent())
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	auth.SetAuthCookies(w, tokens)
	utils.WriteJSON(w, http.StatusCreated, authResponse{
		ID:       user.ID.Hex(),
		Email:    user.Email,
		Username: user.Name,
		Token:    tokens.Access,
		Message:  label + " registered and authenticated successfully",
	})
}

func (ac *AdminController) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	registerStaff(w, r, ac.Store, ac.Auth, models.RoleAdmin, ac.AdminSecret)
}

func (ac *AdminController) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	users, err := ac.Store.Users.FindAll(ctx)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	public := make([]models.User, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": public})
}

func (ac *AdminController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	products, err := ac.Store.Products.FindAll(ctx)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": products})
}

func (ac *AdminController) GetPurchases(w http.ResponseWriter, r *http.Request) {
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
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": views})
}

func (ac *AdminController) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	contacts, err := ac.Store.Contacts.FindAll(ctx)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	views, err := populateContacts(ctx, ac.Store, contacts)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": views})
}

// CreateProduct handles adding a new product
func (ac *AdminController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := utils.DecodeJSON(r, &product); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err := utils.Validate(product); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := ac.Store.Products.Create(ctx, &product); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{"message": product})
}

func (ac *AdminController) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, r, errs.ErrNotFound)
		return
	}
	product, err := ac.Store.Products.FindByID(ctx, id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": product})
}

// UpdateProduct applies the fields present in the body to the product
func (ac *AdminController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	product, err := ac.Store.Products.FindByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		utils.WriteMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	if err = utils.DecodeJSON(r, &product); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	product.ID = id
	if err = utils.Validate(product); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	updated, err := ac.Store.Products.Update(ctx, product)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": updated})
}

func (ac *AdminController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ac.deleteByID(w, r, ac.Store.Products.Delete, "Product Deleted Successfully!")
}

// DeleteUser removes the account and signs out its sessions
func (ac *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ac.deleteByID(w, r, func(ctx context.Context, id primitive.ObjectID) error {
		if err := ac.Store.Users.Delete(ctx, id); err != nil {
			return err
		}
		return ac.Auth.InvalidateUserSessions(ctx, id)
	}, "User Deleted Successfully!")
}

// DeleteOrder removes a purchase, giving back stock it still holds
func (ac *AdminController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	ac.deleteByID(w, r, func(ctx context.Context, id primitive.ObjectID) error {
		purchase, err := ac.Store.Purchases.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err = ac.Store.Purchases.Delete(ctx, id); err != nil {
			return err
		}
		if purchase.HoldsStock() {
			restoreStock(ctx, ac.Store.Products, purchase.Product, purchase.Quantity)
		}
		return nil
	}, "Order Deleted Successfully!")
}

func (ac *AdminController) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ac.deleteByID(w, r, ac.Store.Contacts.Delete, "Contact Deleted Successfully!")
}

func (ac *AdminController) GetPurchase(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, r, errs.ErrNotFound)
		return
	}
	purchase, err := ac.Store.Purchases.FindByID(ctx, id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	views, err := populatePurchases(ctx, ac.Store, []models.Purchase{purchase}, true)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": views[0]})
}

func (ac *AdminController) GetContact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, r, errs.ErrNotFound)
		return
	}
	contact, err := ac.Store.Contacts.FindByID(ctx, id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	views, err := populateContacts(ctx, ac.Store, []models.Contact{contact})
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": views[0]})
}

// UpdatePaymentStatus sets the payment state and tells the customer
func (ac *AdminController) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if !req.PaymentStatus.Valid() {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid payment status")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Purchase not found")
		return
	}
	purchase, err := ac.Store.Purchases.SetPaymentStatus(ctx, id, req.PaymentStatus)
	if errors.Is(err, errs.ErrNotFound) {
		utils.WriteMessage(w, http.StatusNotFound, "Purchase not found")
		return
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	notifyCustomer(r, ac.Store, "payment-status", purchase, ac.EmailService.SendPaymentUpdate)
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Payment status updated",
		"data":    purchase,
	})
}

func (ac *AdminController) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := currentUser(ctx, ac.Store.Users)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": user.Public()})
}

func (ac *AdminController) deleteByID(w http.ResponseWriter, r *http.Request, del func(context.Context, primitive.ObjectID) error, message string) {
	ctx, cancel := requestContext(r)
	defer cancel()

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, r, errs.ErrNotFound)
		return
	}
	if err = del(ctx, id); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, message)
}
