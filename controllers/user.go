package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go-storefront/errs"
	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/services"
	"go-storefront/utils"

	"github.com/rs/zerolog/log"
)

// UserController handles account, profile and credential requests
type UserController struct {
	Store        *repository.Store
	Auth         *services.AuthService
	EmailService *utils.EmailService
	Uploads      *utils.Uploader
	now          func() time.Time
}

func NewUserController(store *repository.Store, auth *services.AuthService, emailService *utils.EmailService, uploads *utils.Uploader) *UserController {
	return &UserController{
		Store:        store,
		Auth:         auth,
		EmailService: emailService,
		Uploads:      uploads,
		now:          time.Now,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Token    string `json:"token"`
	Message  string `json:"message"`
}

// Register creates a customer account and signs it in
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Phone == "" || req.Address == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if err := utils.Validate(req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if _, err := uc.Store.Users.FindByEmail(ctx, req.Email); err == nil {
		utils.WriteError(w, r, errs.ErrEmailAlreadyUsed)
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
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleCustomer,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	if err = uc.Store.Users.Create(ctx, &user); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			err = errs.ErrEmailAlreadyUsed
		}
		utils.WriteError(w, r, err)
		return
	}

	uc.signIn(w, r, user, http.StatusCreated, "User registered and authenticated successfully")
}

// Login checks the password and opens a session
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := uc.Store.Users.FindByEmail(ctx, req.Email)
	if errors.Is(err, errs.ErrNotFound) {
		utils.WriteError(w, r, errs.ErrInvalidCredentials)
		return
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if user.Password == "" || !utils.CheckPassword(user.Password, req.Password) {
		utils.WriteError(w, r, errs.ErrInvalidCredentials)
		return
	}

	uc.signIn(w, r, user, http.StatusOK, "Login successful")
}

// Logout invalidates the caller's session, if any, and clears cookies
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	if sessionID := uc.Auth.SessionFromRequest(r); sessionID != "" {
		if err := uc.Auth.Logout(ctx, sessionID); err != nil {
			utils.WriteError(w, r, err)
			return
		}
	}
	uc.Auth.ClearAuthCookies(w)
	utils.WriteMessage(w, http.StatusOK, "Logged out successfully")
}

func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := currentUser(ctx, uc.Store.Users)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": user.Public()})
}

func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdate
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err := utils.Validate(req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	userID := middleware.UserID(ctx)
	if req.Email != "" {
		existing, err := uc.Store.Users.FindByEmail(ctx, req.Email)
		if err == nil && existing.ID != userID {
			utils.WriteError(w, r, errs.ErrEmailAlreadyUsed)
			return
		}
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			utils.WriteError(w, r, err)
			return
		}
	}

	user, err := uc.Store.Users.UpdateProfile(ctx, userID, req)
	if errors.Is(err, errs.ErrAlreadyExists) {
		err = errs.ErrEmailAlreadyUsed
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"data":    user.Public(),
	})
}

// UploadPhoto stores a profile photo and points the avatar at it
func (uc *UserController) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, utils.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(utils.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.WriteError(w, r, errs.ErrFileTooLarge)
			return
		}
		utils.WriteMessage(w, http.StatusBadRequest, "No file uploaded.")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "No file uploaded.")
		return
	}
	defer file.Close()

	photo, err := uc.Uploads.SaveImage(file, header, utils.ProfilePhotoDir)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err = uc.Store.Users.SetAvatar(ctx, middleware.UserID(ctx), photo); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Photo updated", "photo": photo})
}

// SendVerificationCode mails a fresh 8 digit code, replacing older ones
func (uc *UserController) SendVerificationCode(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := currentUser(ctx, uc.Store.Users)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	code, err := utils.GenerateVerificationCode()
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	token := &models.VerifyEmailToken{
		UserID:    user.ID,
		Token:     code,
		ExpiresAt: uc.now().Add(models.VerifyEmailTokenTTL),
	}
	if err = uc.Store.VerifyTokens.Replace(ctx, token); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err = uc.EmailService.SendVerificationCode(ctx, user, code); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "mailer").Msg("verification email")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to send verification email. Please try again.")
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Verification email sent successfully Please Check the Mail Box!")
}

// VerifyEmailCode marks the address verified when the code matches
func (uc *UserController) VerifyEmailCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "Verification code is required.")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	userID := middleware.UserID(ctx)
	stored, err := uc.Store.VerifyTokens.FindLatest(ctx, userID)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		utils.WriteError(w, r, err)
		return
	}
	if err != nil || stored.Token != code || stored.Expired(uc.now()) {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid or expired verification code.")
		return
	}

	if err = uc.Store.Users.SetEmailVerified(ctx, userID); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err = uc.Store.VerifyTokens.DeleteForUser(ctx, userID); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Email verified successfully!")
}

// ForgotPassword mails a one hour reset link
func (uc *UserController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := uc.Store.Users.FindByEmail(ctx, req.Email)
	if errors.Is(err, errs.ErrNotFound) {
		utils.WriteMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	value, err := utils.GenerateRandomToken(32)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     value,
		ExpiresAt: uc.now().Add(models.PasswordResetTokenTTL),
	}
	if err = uc.Store.ResetTokens.Replace(ctx, token); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err = uc.EmailService.SendPasswordReset(ctx, user, value); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "mailer").Msg("reset email")
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Reset link sent to email"})
}

// ResetPassword consumes a reset token and signs out every session
func (uc *UserController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if req.Token == "" || req.Password == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "Token and password are required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	token, err := uc.Store.ResetTokens.FindByToken(ctx, req.Token)
	if errors.Is(err, errs.ErrNotFound) {
		utils.WriteError(w, r, errs.ErrInvalidToken)
		return
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if token.Expired(uc.now()) {
		if err = uc.Store.ResetTokens.Delete(ctx, token.ID); err != nil && !errors.Is(err, errs.ErrNotFound) {
			utils.WriteError(w, r, err)
			return
		}
		utils.WriteError(w, r, errs.ErrTokenExpired)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err = uc.Store.Users.UpdatePassword(ctx, token.UserID, hash); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err = uc.Store.ResetTokens.Delete(ctx, token.ID); err != nil && !errors.Is(err, errs.ErrNotFound) {
		utils.WriteError(w, r, err)
		return
	}
	if err = uc.Auth.InvalidateUserSessions(ctx, token.UserID); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Password reset successfully"})
}

// ChangePassword replaces the signed-in user's password
func (uc *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := currentUser(ctx, uc.Store.Users)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if !utils.CheckPassword(user.Password, req.CurrentPassword) {
		utils.WriteError(w, r, errs.ErrWrongPassword)
		return
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err = uc.Store.Users.UpdatePassword(ctx, user.ID, hash); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	// every other device is signed out, the caller gets a fresh session
	if err = uc.Auth.InvalidateUserSessions(ctx, user.ID); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	tokens, err := uc.Auth.Authenticate(ctx, user, middleware.ClientIP(r), r.UserAgent())
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	uc.Auth.SetAuthCookies(w, tokens)
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password changed successfully",
		"token":   tokens.Access,
	})
}

// RemoveContact deletes one of the caller's own contact messages
func (uc *UserController) RemoveContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Contact Not Found")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	contact, err := uc.Store.Contacts.FindByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) || (err == nil && contact.User != middleware.UserID(ctx)) {
		utils.WriteMessage(w, http.StatusNotFound, "Contact Not Found")
		return
	}
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err = uc.Store.Contacts.Delete(ctx, id); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": contact})
}

func (uc *UserController) signIn(w http.ResponseWriter, r *http.Request, user models.User, status int, message string) {
	ctx, cancel := requestContext(r)
	defer cancel()

	tokens, err := uc.Auth.Authenticate(ctx, user, middleware.ClientIP(r), r.UserAgent())
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	uc.Auth.SetAuthCookies(w, tokens)
	utils.WriteJSON(w, status, authResponse{
		ID:       user.ID.Hex(),
		Email:    user.Email,
		Username: user.Name,
		Token:    tokens.Access,
		Message:  message,
	})
}
