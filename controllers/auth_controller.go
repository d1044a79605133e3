package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"travel-backend/middleware"
	"travel-backend/serializers"
	"travel-backend/services"
	"travel-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthController serves the HTML pages (login, signup, chat) and issues
// session tokens. JSON clients get the token in the body as well.
type AuthController struct {
	Users        *services.UserService
	Messages     *services.MessageService
	Images       *services.ImageService
	JWTSecret    string
	SessionTTL   time.Duration
	SecureCookie bool
}

func NewAuthController(users *services.UserService, messages *services.MessageService, images *services.ImageService,
	secret string, ttl time.Duration, secure bool) *AuthController {
	return &AuthController{
		Users:        users,
		Messages:     messages,
		Images:       images,
		JWTSecret:    secret,
		SessionTTL:   ttl,
		SecureCookie: secure,
	}
}

type loginPayload struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type signupPayload struct {
	Username        string `json:"username" form:"username" binding:"required,max=150"`
	Email           string `json:"email" form:"email" binding:"omitempty,email"`
	Password        string `json:"password" form:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm" binding:"required,eqfield=Password"`
	AvatarBase64    string `json:"avatar_base64" form:"avatar_base64"`
}

func wantsJSON(ctx *gin.Context) bool {
	return strings.Contains(ctx.ContentType(), "json") ||
		strings.Contains(ctx.GetHeader("Accept"), "application/json")
}

func (c *AuthController) startSession(ctx *gin.Context, userID uint, username string) (string, error) {
	token, err := utils.CreateToken(c.JWTSecret, userID, username, c.SessionTTL)
	if err != nil {
		return "", err
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, token, int(c.SessionTTL.Seconds()), "/", "", c.SecureCookie, true)
	return token, nil
}

// GET /login
func (c *AuthController) LoginPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", gin.H{"next": ctx.Query("next")})
}

// POST /login
func (c *AuthController) Login(ctx *gin.Context) {
	var payload loginPayload
	if err := ctx.ShouldBind(&payload); err != nil {
		c.loginFailed(ctx, http.StatusBadRequest, "username and password required")
		return
	}

	user, err := c.Users.Authenticate(ctx.Request.Context(), payload.Username, payload.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.loginFailed(ctx, http.StatusUnauthorized, "Please enter a correct username and password.")
		return
	}
	if err != nil {
		zap.L().Error("login failed", zap.Error(err))
		c.loginFailed(ctx, http.StatusInternalServerError, "Login is unavailable right now.")
		return
	}

	token, err := c.startSession(ctx, user.ID, user.Username)
	if err != nil {
		zap.L().Error("failed to sign session", zap.Error(err))
		c.loginFailed(ctx, http.StatusInternalServerError, "Login is unavailable right now.")
		return
	}
	zap.L().Info("user logged in", zap.String("username", user.Username))

	if wantsJSON(ctx) {
		ctx.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  serializers.CombinedUser(*user, utils.MediaBaseFromRequest(ctx.Request)),
		})
		return
	}
	ctx.Redirect(http.StatusFound, safeNext(ctx.PostForm("next")))
}

func (c *AuthController) loginFailed(ctx *gin.Context, code int, message string) {
	if wantsJSON(ctx) {
		utils.JSONError(ctx, code, message)
		return
	}
	ctx.HTML(code, "login.html", gin.H{"error": message, "username": ctx.PostForm("username")})
}

// GET /signup
func (c *AuthController) SignupPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "signup.html", gin.H{})
}

// POST /signup (form or multipart with an optional "avatar" file, or JSON)
func (c *AuthController) Signup(ctx *gin.Context) {
	var payload signupPayload
	if err := ctx.ShouldBind(&payload); err != nil {
		c.signupFailed(ctx, http.StatusBadRequest, "Please check the form: username, a password of at least 8 characters, and a matching confirmation are required.")
		return
	}

	avatar, err := c.saveAvatar(ctx, payload.AvatarBase64)
	if err != nil {
		zap.L().Warn("avatar rejected", zap.Error(err))
		c.signupFailed(ctx, http.StatusBadRequest, "The avatar must be a JPG, PNG, GIF or WEBP image.")
		return
	}

	user, err := c.Users.Register(ctx.Request.Context(), services.RegisterInput{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
		Avatar:   avatar,
	})
	if err != nil && avatar != "" {
		c.Images.Remove(avatar)
	}
	if errors.Is(err, services.ErrUsernameTaken) {
		c.signupFailed(ctx, http.StatusConflict, "A user with that username already exists.")
		return
	}
	if err != nil {
		zap.L().Error("signup failed", zap.Error(err))
		c.signupFailed(ctx, http.StatusInternalServerError, "Signup is unavailable right now.")
		return
	}

	token, err := c.startSession(ctx, user.ID, user.Username)
	if err != nil {
		zap.L().Error("failed to sign session", zap.Error(err))
		c.signupFailed(ctx, http.StatusInternalServerError, "Signup is unavailable right now.")
		return
	}
	zap.L().Info("new user signed up", zap.String("username", user.Username))

	if wantsJSON(ctx) {
		ctx.JSON(http.StatusCreated, gin.H{
			"token": token,
			"user":  serializers.CombinedUser(*user, utils.MediaBaseFromRequest(ctx.Request)),
		})
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

// saveAvatar stores the uploaded avatar, if any, and returns its media path.
func (c *AuthController) saveAvatar(ctx *gin.Context, b64 string) (string, error) {
	if fh, err := ctx.FormFile("avatar"); err == nil {
		return c.Images.SaveUpload(fh, "avatars")
	}
	if strings.TrimSpace(b64) != "" {
		return c.Images.SaveBase64(b64, "avatars")
	}
	return "", nil
}

func (c *AuthController) signupFailed(ctx *gin.Context, code int, message string) {
	if wantsJSON(ctx) {
		utils.JSONError(ctx, code, message)
		return
	}
	ctx.HTML(code, "signup.html", gin.H{
		"error":    message,
		"username": ctx.PostForm("username"),
		"email":    ctx.PostForm("email"),
	})
}

// GET|POST /logout
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", "", c.SecureCookie, true)
	if wantsJSON(ctx) {
		ctx.JSON(http.StatusOK, gin.H{"status": "success"})
		return
	}
	ctx.Redirect(http.StatusFound, "/login")
}

// ChatPage renders the chat with the caller's history, oldest first.
// GET /
func (c *AuthController) ChatPage(ctx *gin.Context) {
	userID, username, _ := middleware.CurrentUser(ctx)
	history, err := c.Messages.ListForUser(ctx.Request.Context(), userID, true)
	if err != nil {
		zap.L().Error("load chat history", zap.Uint("user_id", userID), zap.Error(err))
		history = nil
	}
	media := utils.MediaBaseFromRequest(ctx.Request)
	var avatar *string
	if user, err := c.Users.GetByID(ctx.Request.Context(), userID); err == nil {
		avatar = serializers.CombinedUser(*user, media).AvatarURL
	}
	ctx.HTML(http.StatusOK, "chat.html", gin.H{
		"username":     username,
		"avatar_url":   avatar,
		"chat_history": serializers.UserMessages(history, media),
	})
}

// safeNext only follows local paths. Browsers treat a backslash after the
// leading slash like a second slash.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return next
}
