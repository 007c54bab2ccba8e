package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/streamtv/internal/config"
	"github.com/iliyamo/streamtv/internal/middleware"
	"github.com/iliyamo/streamtv/internal/repository"
	"github.com/iliyamo/streamtv/internal/session"
	"github.com/iliyamo/streamtv/internal/utils"
)

// AuthHandler bundles dependencies for account endpoints.
type AuthHandler struct {
	Cfg       config.Config
	Customers *repository.CustomerRepo
	Sessions  session.Store
}

func NewAuthHandler(cfg config.Config, customers *repository.CustomerRepo, sessions session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Customers: customers, Sessions: sessions}
}

// ----- DTOs -----

type registerReq struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	CreditCard      string `json:"credit_card"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type identityResp struct {
	Username   string `json:"username"`
	CustomerID string `json:"customer_id"`
}

// validate mirrors the registration form constraints: username and password
// at least 5 characters, matching confirmation, syntactically valid email,
// credit card at least 10 characters.
func (r *registerReq) validate() string {
	if len(r.Username) < 5 {
		return "username must be at least 5 characters"
	}
	if len(r.Password) < 5 {
		return "password must be at least 5 characters"
	}
	if r.Password != r.PasswordConfirm {
		return "password and verify password must match"
	}
	if r.FirstName == "" || r.LastName == "" {
		return "first and last name required"
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return "invalid email address"
	}
	if len(r.CreditCard) < 10 {
		return "credit card must be at least 10 characters"
	}
	return ""
}

// Register creates a customer and installs a session immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	custID, err := h.Customers.Create(ctx, req.Username, req.Password,
		req.FirstName, req.LastName, req.Email, req.CreditCard, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create customer failed"})
	}

	if err := h.installSession(ctx, c, req.Username, custID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	return c.JSON(http.StatusCreated, identityResp{Username: req.Username, CustomerID: custID})
}

// Login verifies credentials and installs a session. Unknown usernames and
// wrong passwords produce the same response so usernames cannot be
// enumerated.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cu, err := h.Customers.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(cu.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := h.installSession(ctx, c, cu.Username, cu.CustID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	return c.JSON(http.StatusOK, identityResp{Username: cu.Username, CustomerID: cu.CustID})
}

// Logout revokes the server-side session (when resolvable) and expires the
// cookie. It always succeeds from the client's point of view.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if ck, err := c.Cookie(middleware.SessionCookie); err == nil && ck.Value != "" {
		if sid, _, _, err := utils.ParseSessionToken(h.Cfg.SessionSecret, ck.Value); err == nil {
			_ = h.Sessions.Clear(ctx, sid)
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}

// Me echoes the authenticated identity (protected route).
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"username":    c.Get(middleware.CtxUsername),
		"customer_id": c.Get(middleware.CtxCustomerID),
	})
}

// installSession creates the redis session record and sets the signed
// session cookie on the response.
func (h *AuthHandler) installSession(ctx context.Context, c echo.Context, username, custID string) error {
	sid, err := utils.NewSessionID()
	if err != nil {
		return err
	}
	ttl := time.Duration(h.Cfg.SessionTTLHrs) * time.Hour
	if err := h.Sessions.Set(ctx, sid, session.Identity{Username: username, CustomerID: custID}, ttl); err != nil {
		return err
	}
	tok, err := utils.NewSessionToken(h.Cfg.SessionSecret, sid, custID, username, h.Cfg.SessionTTLHrs)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
	})
	return nil
}
