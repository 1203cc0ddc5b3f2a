package controllers

import (
	"errors"
	"net/http"
	"strings"

	"go-storefront/errs"
	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewController handles product reviews with an optional photo
type ReviewController struct {
	Store   *repository.Store
	Uploads *utils.Uploader
}

func NewReviewController(store *repository.Store, uploads *utils.Uploader) *ReviewController {
	return &ReviewController{Store: store, Uploads: uploads}
}

// CreateReview reads a multipart form with purchaseId, review and image
func (rc *ReviewController) CreateReview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, utils.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(utils.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.WriteError(w, r, errs.ErrFileTooLarge)
			return
		}
		// plain forms are fine, the photo is optional
		if err = r.ParseForm(); err != nil {
			utils.WriteError(w, r, errs.ErrClient)
			return
		}
	}

	purchaseID := strings.TrimSpace(r.FormValue("purchaseId"))
	comment := strings.TrimSpace(r.FormValue("review"))
	if purchaseID == "" || comment == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "PurchaseId and review are required")
		return
	}
	id, err := bodyID(purchaseID)
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Purchase not found")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	userID := middleware.UserID(ctx)
	purchase, err := rc.Store.Purchases.FindByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) || (err == nil && purchase.User != userID) {
		utils.WriteMessage(w, http.StatusNotFound, "Purchase not found")
		return
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	review := models.Review{
		User:     userID,
		Product:  purchase.Product,
		Purchase: purchase.ID,
		Comment:  comment,
	}
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		if review.Photo, err = rc.Uploads.SaveImage(file, header, utils.ReviewPhotoDir); err != nil {
			utils.WriteError(w, r, err)
			return
		}
	}

	if err = rc.Store.Reviews.Create(ctx, &review); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Review submitted successfully",
		"data":    review,
	})
}

// GetReviews lists every review with its purchase and author
func (rc *ReviewController) GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	reviews, err := rc.Store.Reviews.FindAll(ctx)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if len(reviews) == 0 {
		utils.WriteMessage(w, http.StatusNotFound, "No reviews found")
		return
	}

	purchaseIDs := make([]primitive.ObjectID, 0, len(reviews))
	userIDs := make([]primitive.ObjectID, 0, len(reviews))
	for _, rv := range reviews {
		purchaseIDs = append(purchaseIDs, rv.Purchase)
		userIDs = append(userIDs, rv.User)
	}
	purchases, err := rc.Store.Purchases.FindByIDs(ctx, purchaseIDs)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	users, err := rc.Store.Users.FindByIDs(ctx, userIDs)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	views := make([]models.ReviewView, 0, len(reviews))
	for _, rv := range reviews {
		view := models.ReviewView{Review: rv}
		if p, ok := purchases[rv.Purchase]; ok {
			view.Purchase = &p
		}
		if u, ok := users[rv.User]; ok {
			public := u.Public()
			view.User = &public
		}
		views = append(views, view)
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": views})
}
