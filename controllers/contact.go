package controllers

import (
	"net/http"
	"strings"

	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactController handles contact form messages
type ContactController struct {
	Store *repository.Store
}

func NewContactController(store *repository.Store) *ContactController {
	return &ContactController{Store: store}
}

func (cc *ContactController) AddContact(w http.ResponseWriter, r *http.Request) {
	var contact models.Contact
	if err := utils.DecodeJSON(r, &contact); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Message = strings.TrimSpace(contact.Message)
	if contact.Name == "" || contact.Email == "" || contact.Message == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "All field are required")
		return
	}
	if err := utils.Validate(contact); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	contact.ID = primitive.NilObjectID
	contact.User = middleware.UserID(ctx)
	if err := cc.Store.Contacts.Create(ctx, &contact); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "Contact Added",
		"createdContact": contact,
	})
}

// GetContacts lists the caller's own messages
func (cc *ContactController) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	contacts, err := cc.Store.Contacts.FindByUser(ctx, middleware.UserID(ctx))
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": contacts})
}
