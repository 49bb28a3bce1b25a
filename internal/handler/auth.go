package handler

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/apiclient"
	"github.com/iliyamo/hotel-booking-gateway/internal/approval"
	"github.com/iliyamo/hotel-booking-gateway/internal/middleware"
	"github.com/iliyamo/hotel-booking-gateway/internal/model"
	"github.com/iliyamo/hotel-booking-gateway/internal/session"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	API       *apiclient.Client
	Cookies   session.Policy
	Approvals *approval.Tracker
	Now       func() time.Time
}

func NewAuthHandler(api *apiclient.Client, cookies session.Policy, approvals *approval.Tracker) *AuthHandler {
	return &AuthHandler{API: api, Cookies: cookies, Approvals: approvals, Now: time.Now}
}

// ----- DTOs -----

type registerReq struct {
	Name            string     `json:"name" validate:"required,min=2,max=100"`
	Email           string     `json:"email" validate:"required,email"`
	Password        string     `json:"password" validate:"required,min=6"`
	ConfirmPassword string     `json:"confirmPassword" validate:"required"`
	Role            model.Role `json:"role" validate:"omitempty,oneof=customer hotel_owner"`
	Phone           string     `json:"phone" validate:"omitempty,max=30"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

type authResp struct {
	User     model.User `json:"user"`
	Token    string     `json:"token"`
	Redirect string     `json:"redirect"`
}

// Register creates a customer or hotel-owner account.  A password that does
// not match its confirmation is rejected before the backend is contacted.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Passwords do not match", "field": "confirmPassword"})
	}
	if req.Role == "" {
		req.Role = model.RoleCustomer
	}

	sess, err := h.API.Register(c.Request().Context(), apiclient.RegisterRequest{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
		Role:     req.Role,
		Phone:    strings.TrimSpace(req.Phone),
	})
	if err != nil {
		return respondError(c, err)
	}
	return h.startSession(c, http.StatusCreated, sess, false)
}

// Login exchanges credentials for a session.  remember extends the cookie
// lifetime from 7 to 30 days.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	sess, err := h.API.Login(c.Request().Context(), apiclient.LoginRequest{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return h.startSession(c, http.StatusOK, sess, req.Remember)
}

// Logout clears both cookies together.  It succeeds without a session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if id := middleware.UserID(c); id != "" && h.Approvals != nil {
		h.Approvals.Forget(id)
	}
	h.Cookies.Clear(c.Response())
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}

// Me returns the caller's current profile from the backend.
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := h.API.Me(c.Request().Context(), middleware.Token(c))
	if err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized) {
			h.Cookies.Clear(c.Response())
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u, "redirect": LandingPath(u)})
}

// OAuthCallback completes a provider sign-in.  The provider profile arrives
// in the query string; the backend returns a session which is stored in
// cookies before the browser is sent to its role's landing page.
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	q := c.QueryParams()
	req := apiclient.OAuthRequest{
		Name:         strings.TrimSpace(q.Get("name")),
		Email:        strings.ToLower(strings.TrimSpace(q.Get("email"))),
		Provider:     strings.TrimSpace(q.Get("provider")),
		OAuthID:      strings.TrimSpace(q.Get("oauthId")),
		ProfileImage: strings.TrimSpace(q.Get("profileImage")),
	}
	if req.Email == "" || req.Provider == "" || req.OAuthID == "" {
		return c.Redirect(http.StatusFound, "/login?error="+url.QueryEscape("Missing OAuth profile"))
	}

	sess, err := h.API.CompleteOAuth(c.Request().Context(), req)
	if err != nil {
		return c.Redirect(http.StatusFound, "/login?error="+url.QueryEscape(apiclient.MessageOf(err)))
	}
	if err := h.Cookies.Write(c.Response(), sess, false, h.Now()); err != nil {
		return respondError(c, err)
	}
	h.trackPending(sess)
	return c.Redirect(http.StatusFound, LandingPath(sess.User))
}

func (h *AuthHandler) startSession(c echo.Context, status int, sess model.Session, remember bool) error {
	if err := h.Cookies.Write(c.Response(), sess, remember, h.Now()); err != nil {
		return respondError(c, err)
	}
	h.trackPending(sess)
	return c.JSON(status, authResp{User: sess.User, Token: sess.Token, Redirect: LandingPath(sess.User)})
}

// trackPending starts approval polling for an owner who is still waiting.
func (h *AuthHandler) trackPending(sess model.Session) {
	if h.Approvals != nil && sess.User.NeedsApproval() && sess.User.ID != "" {
		h.Approvals.Track(sess.User.ID, sess.Token)
	}
}

// LandingPath is where a signed-in user starts: admins on their dashboard,
// approved owners on theirs, pending owners on the waiting page and
// customers on the home page.
func LandingPath(u model.User) string {
	switch u.Role {
	case model.RoleAdmin:
		return "/admin/dashboard"
	case model.RoleHotelOwner:
		if u.IsApproved {
			return "/hotel-owner/dashboard"
		}
		return "/hotel-owner/pending-approval"
	}
	return "/"
}
