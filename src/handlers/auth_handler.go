package handlers

import (
	"errors"
	"net/http"
	"strings"

	"bankweb/src/middleware"
	"bankweb/src/models"
	"bankweb/src/store"
	"bankweb/src/util"
	"bankweb/src/views"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgInvalidCredentials = "Invalid username or password"
	msgUsernameTaken      = "Username already exists"
)

func LoginPage(renderer *views.Renderer, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, renderer, views.PageLogin, views.LoginPage{
			Page: views.Page{Title: "Log in", Scripts: []string{"login.js"}},
		}, logger)
	}
}

func RegisterPage(renderer *views.Renderer, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, renderer, views.PageRegister, views.RegisterPage{
			Page:            views.Page{Title: "Register", Scripts: []string{"registration.js", "validation.js"}},
			MinStrongLength: util.MinStrongPasswordSize,
			WeakMessage:     util.MsgPasswordWeak,
			StrongMessage:   util.MsgPasswordStrong,
		}, logger)
	}
}

func Login(st store.Store, sessions *middleware.Sessions, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			logger.Warn("Failed to parse login form", zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		usernameOrEmail := strings.TrimSpace(r.PostFormValue("username"))
		password := r.PostFormValue("password")
		if err := util.ValidateLogin(usernameOrEmail, password); err != nil {
			logger.Info("Rejected login with missing fields", zap.String("username", usernameOrEmail))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		lookup := strings.ToLower(usernameOrEmail)
		user, err := st.GetUserByUsername(r.Context(), lookup)
		if errors.Is(err, store.ErrNotFound) {
			user, err = st.GetUserByEmail(r.Context(), lookup)
		}
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				logger.Info("Login for unknown user", zap.String("username", usernameOrEmail))
				http.Error(w, msgInvalidCredentials, http.StatusUnauthorized)
				return
			}
			logger.Error("Failed to look up user during login",
				zap.String("username", usernameOrEmail),
				zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
			logger.Info("Invalid password attempt",
				zap.String("username", usernameOrEmail),
				zap.String("remote_addr", r.RemoteAddr))
			http.Error(w, msgInvalidCredentials, http.StatusUnauthorized)
			return
		}

		token, err := sessions.Issue(user.ID, user.Username)
		if err != nil {
			logger.Error("Failed to issue session token",
				zap.String("username", user.Username),
				zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		sessions.SetCookie(w, token)

		if err := st.UpdateUserLastLogin(r.Context(), user.ID); err != nil {
			logger.Error("Failed to update last_login",
				zap.String("username", user.Username),
				zap.Error(err))
		}

		logger.Info("Successful login", zap.String("username", user.Username), zap.Int64("user_id", user.ID))
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

func Register(st store.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			logger.Warn("Failed to parse register form", zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		req := models.RegisterRequest{
			Username:        strings.TrimSpace(r.PostFormValue("username")),
			Email:           strings.TrimSpace(r.PostFormValue("email")),
			Password:        r.PostFormValue("password"),
			ConfirmPassword: r.PostFormValue("confirmPassword"),
		}
		if err := util.ValidateRegistration(req); err != nil {
			logger.Info("Rejected registration",
				zap.String("username", req.Username),
				zap.String("email", req.Email),
				zap.String("reason", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", zap.String("username", req.Username), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		user, err := st.CreateUser(r.Context(), &models.User{
			Username:     strings.ToLower(req.Username),
			Email:        strings.ToLower(req.Email),
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				logger.Info("Registration for existing user",
					zap.String("username", req.Username),
					zap.String("email", req.Email))
				http.Error(w, msgUsernameTaken, http.StatusConflict)
				return
			}
			logger.Error("Failed to create user", zap.String("username", req.Username), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if err := store.OpenDefaultAccounts(r.Context(), st, user.ID); err != nil {
			logger.Error("Failed to open default accounts", zap.Int64("user_id", user.ID), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		logger.Info("Successful registration",
			zap.String("username", user.Username),
			zap.Int64("user_id", user.ID),
			zap.Bool("strong_password", util.PasswordStrength(req.Password).Strong))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func Logout(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		middleware.ClearCookie(w)
		logger.Debug("Logged out", zap.String("username", middleware.UsernameFromContext(r.Context())))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
