package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/mail"

	"github.com/rohits-web03/docdrop/internal/auth"
	"github.com/rohits-web03/docdrop/internal/models"
	"github.com/rohits-web03/docdrop/internal/repositories"
	"github.com/rohits-web03/docdrop/internal/utils"
)

// POST /signup
// Signup godoc
// @Summary Register a new account
// @Description Creates an account, emails a verification link, and returns an access token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "email, password, is_ops_user"
// @Success 200 {object} handlers.TokenResponse
// @Failure 400 {object} utils.ErrorPayload
// @Router /signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	type Input struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		IsOpsUser bool   `json:"is_ops_user"`
	}

	var input Input
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if _, err := mail.ParseAddress(input.Email); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if input.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	// Friendly duplicate check; the unique index is what actually guards
	// concurrent signups.
	if _, err := h.users.FindByEmail(r.Context(), input.Email); err == nil {
		utils.JSONError(w, http.StatusBadRequest, "Email already registered")
		return
	}

	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	verificationToken, err := utils.GenerateSecureToken(32)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to create verification token")
		return
	}

	user := &models.User{
		Email:             input.Email,
		HashedPassword:    hashedPassword,
		IsActive:          true,
		IsOpsUser:         input.IsOpsUser,
		VerificationToken: &verificationToken,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			utils.JSONError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, "Database insert failed")
		return
	}

	// Fire-and-forget: a failed email never fails the signup.
	go func(email, token string) {
		if err := h.notifier.SendVerificationEmail(email, token); err != nil {
			log.Printf("verification email to %s failed: %v", email, err)
		}
	}(user.Email, verificationToken)

	accessToken, err := h.tokens.Issue(user.Email)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to create token")
		return
	}

	utils.JSONResponse(w, http.StatusOK, TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

// POST /verify-email/{token}
// VerifyEmail godoc
// @Summary Verify an email address
// @Description Consumes a single-use verification token and marks the account verified.
// @Tags Auth
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.ErrorPayload
// @Router /verify-email/{token} [post]
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		utils.JSONError(w, http.StatusBadRequest, "Invalid verification token")
		return
	}

	user, err := h.users.FindByVerificationToken(r.Context(), token)
	if err != nil {
		// Unknown and already-consumed tokens are the same failure; a token
		// is cleared on first use so replay cannot verify twice.
		utils.JSONError(w, http.StatusBadRequest, "Invalid verification token")
		return
	}

	user.IsVerified = true
	user.VerificationToken = nil
	if err := h.users.Update(r.Context(), user); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Database update failed")
		return
	}

	utils.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Email verified successfully",
	})
}

// POST /token
// Login godoc
// @Summary Exchange credentials for an access token
// @Description Standard password form login; the account must be verified first.
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email address"
// @Param password formData string true "Password"
// @Success 200 {object} handlers.TokenResponse
// @Failure 401 {object} utils.ErrorPayload
// @Failure 403 {object} utils.ErrorPayload
// @Router /token [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.users.FindByEmail(r.Context(), username)
	if err != nil || !auth.CheckPassword(password, user.HashedPassword) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		utils.JSONError(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	if !user.IsVerified {
		utils.JSONError(w, http.StatusForbidden, "Please verify your email first")
		return
	}

	accessToken, err := h.tokens.Issue(user.Email)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to create token")
		return
	}

	utils.JSONResponse(w, http.StatusOK, TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}
