// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bazario/bazario-api/internal/config"
	"github.com/bazario/bazario-api/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
	jwtCfg    config.JWTConfig
}

func NewHandler(service *Service, jwtCfg config.JWTConfig) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		jwtCfg:    jwtCfg,
	}
}

// RegisterRoutes mounts the public identity surface. The OTP issuance route
// takes an extra per-endpoint rate limit on top of the global one.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	otpLimiter func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/register-user", h.Register)
		r.Post("/login", h.Login)
		r.With(otpLimiter).Post("/send_otp", h.SendOTP)
		r.Post("/verify_otp", h.VerifyOTP)
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.Fail(w, "Account already existed")
			return
		}
		core.Internal(w, err)
		return
	}

	core.Success(w, "User Registered successfully", ToUserResponse(user))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, token, err := h.service.Login(r.Context(), req.PhoneNumber)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.Fail(w, "User Not Found")
			return
		}
		core.FailStatus(w, http.StatusInternalServerError, "login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.jwtCfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.jwtCfg.SessionExpire.Seconds()),
		HttpOnly: true,
		Secure:   h.jwtCfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	core.SuccessStatus(w, http.StatusCreated, "user LoggedIn successfully",
		LoginResponse{
			User: LoginUser{
				ID:          user.ID,
				PhoneNumber: user.PhoneNumber,
			},
			AccessToken: token,
		})
}

func (h *Handler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	code, err := h.service.IssueOTP(r.Context(), req.PhoneNumber)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.Fail(w, "account not found")
			return
		}
		core.Internal(w, err)
		return
	}

	// The plaintext code rides back to the caller, who owns delivery.
	core.Success(w, "otp send to your phone number", code)
}

func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.VerifyOTP(r.Context(), req.PhoneNumber, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.Fail(w, "account not found")
		case errors.Is(err, core.ErrOTPExpired):
			core.Fail(w, "OTP expired")
		case errors.Is(err, core.ErrOTPMismatch):
			core.Fail(w, "Invalid OTP")
		default:
			core.Internal(w, err)
		}
		return
	}

	core.Success(w, "OTP verified", nil)
}
