// routes/routes.go
package routes

import (
	"net/http"

	"go-storefront/controllers"
	"go-storefront/metrics"
	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/services"
	"go-storefront/utils"

	"github.com/gorilla/mux"
)

// Controllers bundles every handler group the router mounts
type Controllers struct {
	User     *controllers.UserController
	OAuth    *controllers.OAuthController
	Product  *controllers.ProductController
	Cart     *controllers.CartController
	Wishlist *controllers.WishlistController
	Purchase *controllers.PurchaseController
	Review   *controllers.ReviewController
	Contact  *controllers.ContactController
	Admin    *controllers.AdminController
	Agent    *controllers.AgentController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers, auth *services.AuthService, limiter *middleware.RateLimiter, store *repository.Store, uploadDir string) {
	authenticated := middleware.AuthMiddleware(auth)

	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", healthz(store)).Methods(http.MethodGet)
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	api := router.PathPrefix("/api").Subrouter()

	// Users: public routes
	users := api.PathPrefix("/users").Subrouter()
	credentials := users.NewRoute().Subrouter()
	credentials.Use(limiter.Handler)
	credentials.HandleFunc("/register", c.User.Register).Methods(http.MethodPost)
	credentials.HandleFunc("/login", c.User.Login).Methods(http.MethodPost)
	credentials.HandleFunc("/forgot-password", c.User.ForgotPassword).Methods(http.MethodPost)
	credentials.HandleFunc("/reset-password", c.User.ResetPassword).Methods(http.MethodPost)
	users.HandleFunc("/logout", c.User.Logout).Methods(http.MethodPost)
	users.HandleFunc("/google", c.OAuth.GoogleLogin).Methods(http.MethodGet)
	users.HandleFunc("/google/callback", c.OAuth.GoogleCallback).Methods(http.MethodGet)

	// Users: protected routes
	account := users.NewRoute().Subrouter()
	account.Use(authenticated)
	account.HandleFunc("/profile", c.User.GetProfile).Methods(http.MethodGet)
	account.HandleFunc("/update-profile", c.User.UpdateProfile).Methods(http.MethodPut)
	account.HandleFunc("/profile/upload-photo", c.User.UploadPhoto).Methods(http.MethodPost)
	account.HandleFunc("/verify-email", c.User.SendVerificationCode).Methods(http.MethodPost)
	account.HandleFunc("/verify-email-code", c.User.VerifyEmailCode).Methods(http.MethodPost)
	account.HandleFunc("/change-password", c.User.ChangePassword).Methods(http.MethodPost)
	account.HandleFunc("/add-wishList", c.Wishlist.AddToWishlist).Methods(http.MethodPost)
	account.HandleFunc("/get-wishlist-product", c.Wishlist.GetWishlist).Methods(http.MethodGet)
	account.HandleFunc("/delete-wishlist-product", c.Wishlist.RemoveFromWishlist).Methods(http.MethodPost)
	account.HandleFunc("/remove-contact/{id}", c.User.RemoveContact).Methods(http.MethodGet)

	// Product routes
	products := api.PathPrefix("/products").Subrouter()
	products.HandleFunc("/get-product", c.Product.GetProducts).Methods(http.MethodGet)
	products.HandleFunc("/products/{id}", c.Product.GetProductByID).Methods(http.MethodGet)

	// Cart routes
	cart := api.PathPrefix("/cart").Subrouter()
	cart.Use(authenticated)
	cart.HandleFunc("/cart-product", c.Cart.AddToCart).Methods(http.MethodPost)
	cart.HandleFunc("/get-cart-product", c.Cart.GetCart).Methods(http.MethodGet)
	cart.HandleFunc("/get-cart-product/{id}", c.Cart.GetCartItem).Methods(http.MethodGet)
	cart.HandleFunc("/remove-cart-product/{id}", c.Cart.RemoveFromCart).Methods(http.MethodPost)
	cart.HandleFunc("/update-quantity/{cartItemId}", c.Cart.UpdateQuantity).Methods(http.MethodPut)
	cart.HandleFunc("/update-cart-product", c.Cart.UpdateCartItem).Methods(http.MethodPost)

	// Purchase routes
	purchase := api.PathPrefix("/purchase").Subrouter()
	purchase.Use(authenticated)
	purchase.HandleFunc("/purchase-product", c.Purchase.CreatePurchase).Methods(http.MethodPost)
	purchase.HandleFunc("/get-purchase-product", c.Purchase.GetPurchases).Methods(http.MethodGet)
	purchase.HandleFunc("/get-purchase-product/{id}", c.Purchase.GetPurchase).Methods(http.MethodGet)
	purchase.HandleFunc("/remove-purchased-product/{id}", c.Purchase.RemovePurchase).Methods(http.MethodPost)
	purchase.HandleFunc("/update-purchase-product/{id}", c.Purchase.UpdatePurchase).Methods(http.MethodPut)
	purchase.HandleFunc("/review-product", c.Purchase.ReviewPurchase).Methods(http.MethodPost)

	// Review routes
	review := api.PathPrefix("/review").Subrouter()
	review.Use(authenticated)
	review.HandleFunc("/review-product", c.Review.CreateReview).Methods(http.MethodPost)
	review.HandleFunc("/get-review-product", c.Review.GetReviews).Methods(http.MethodGet)

	// Contact routes
	contact := api.PathPrefix("/contact").Subrouter()
	contact.Use(authenticated)
	contact.HandleFunc("/add-contact", c.Contact.AddContact).Methods(http.MethodPost)
	contact.HandleFunc("/get-contact", c.Contact.GetContacts).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Handle("/register-admin", limiter.Handler(http.HandlerFunc(c.Admin.RegisterAdmin))).Methods(http.MethodPost)
	backOffice := admin.NewRoute().Subrouter()
	backOffice.Use(authenticated, middleware.RequireRole(models.RoleAdmin))
	backOffice.HandleFunc("/users", c.Admin.GetUsers).Methods(http.MethodGet)
	backOffice.HandleFunc("/products", c.Admin.GetProducts).Methods(http.MethodGet)
	backOffice.HandleFunc("/purchase", c.Admin.GetPurchases).Methods(http.MethodGet)
	backOffice.HandleFunc("/contact", c.Admin.GetContacts).Methods(http.MethodGet)
	backOffice.HandleFunc("/create-product", c.Admin.CreateProduct).Methods(http.MethodPost)
	backOffice.HandleFunc("/delete-product/{id}", c.Admin.DeleteProduct).Methods(http.MethodGet, http.MethodDelete)
	backOffice.HandleFunc("/delete-user/{id}", c.Admin.DeleteUser).Methods(http.MethodGet, http.MethodDelete)
	backOffice.HandleFunc("/delete-order/{id}", c.Admin.DeleteOrder).Methods(http.MethodGet, http.MethodDelete)
	backOffice.HandleFunc("/delete-contact/{id}", c.Admin.DeleteContact).Methods(http.MethodGet, http.MethodDelete)
	backOffice.HandleFunc("/get-product/{id}", c.Admin.GetProduct).Methods(http.MethodGet)
	backOffice.HandleFunc("/get-contact/{id}", c.Admin.GetContact).Methods(http.MethodGet)
	backOffice.HandleFunc("/get-purchase-product/{id}", c.Admin.GetPurchase).Methods(http.MethodGet)
	backOffice.HandleFunc("/update-product/{id}", c.Admin.UpdateProduct).Methods(http.MethodPut)
	backOffice.HandleFunc("/update-payment-status/{id}", c.Admin.UpdatePaymentStatus).Methods(http.MethodPut)
	backOffice.HandleFunc("/get-profile", c.Admin.GetProfile).Methods(http.MethodGet)

	// Agent routes
	agent := api.PathPrefix("/agent").Subrouter()
	agent.Handle("/register-agent", limiter.Handler(http.HandlerFunc(c.Agent.RegisterAgent))).Methods(http.MethodPost)
	fulfilment := agent.NewRoute().Subrouter()
	fulfilment.Use(authenticated, middleware.RequireRole(models.RoleAgent, models.RoleAdmin))
	fulfilment.HandleFunc("/get-user-purchase-products", c.Agent.GetPurchases).Methods(http.MethodGet)
	fulfilment.HandleFunc("/update-status/{id}", c.Agent.UpdateStatus).Methods(http.MethodPut)
}

func healthz(store *repository.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store.Ping != nil {
			if err := store.Ping(r.Context()); err != nil {
				utils.WriteMessage(w, http.StatusServiceUnavailable, "database unreachable")
				return
			}
		}
		utils.WriteMessage(w, http.StatusOK, "ok")
	}
}

// Instrument installs request middleware on every response the router
// writes. mux only runs Use middleware for matched routes, so the 404
// and 405 handlers get wrapped too.
func Instrument(router *mux.Router, mws ...mux.MiddlewareFunc) {
	router.Use(mws...)

	notFound := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteMessage(w, http.StatusNotFound, "Route not found")
	}))
	notAllowed := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	}))
	for i := len(mws) - 1; i >= 0; i-- {
		notFound = mws[i](notFound)
		notAllowed = mws[i](notAllowed)
	}
	router.NotFoundHandler = notFound
	router.MethodNotAllowedHandler = notAllowed
}
