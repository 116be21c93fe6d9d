package auth

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blogful/common"
	"blogful/models"
)

const (
	sessionUserKey = "user_id"
	actorKey       = "actor"
)

type AuthModule struct {
	db *gorm.DB
}

func NewAuthModule(db *gorm.DB) *AuthModule {
	return &AuthModule{db: db}
}

func (a *AuthModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", a.loginPage)
	router.POST("/login", a.loginPost)
	router.GET("/logout", a.logout)
}

// LoadActor resolves the logged-in user from the session for every request.
// It must run after the sessions middleware.
func (a *AuthModule) LoadActor(c *gin.Context) {
	session := sessions.Default(c)
	userID, ok := session.Get(sessionUserKey).(int)
	if !ok {
		c.Next()
		return
	}

	var user models.User
	err := a.db.WithContext(c.Request.Context()).First(&user, userID).Error
	switch {
	case err == nil:
		c.Set(actorKey, &user)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// user was removed while the cookie was still valid
		session.Delete(sessionUserKey)
		if err := session.Save(); err != nil {
			log.Printf("Error clearing stale session: %v", err)
		}
	default:
		log.Printf("Error loading user %d: %v", userID, err)
	}
	c.Next()
}

// CurrentUser returns the actor of the request, or nil when anonymous.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(actorKey)
	if !exists {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// RequireAuth redirects anonymous requests to the login page, remembering
// where they were headed.
func RequireAuth(c *gin.Context) {
	if CurrentUser(c) != nil {
		c.Next()
		return
	}

	common.AddFlash(c, common.FlashInfo, "Please log in to access this page.")
	c.Redirect(http.StatusFound, loginURL(c.Request.URL.RequestURI()))
	c.Abort()
}

// ViewData adds the actor and pending flash messages to template data.
func ViewData(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["actor"] = CurrentUser(c)
	data["flashes"] = common.Flashes(c)
	return data
}

func (a *AuthModule) loginPage(c *gin.Context) {
	if CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "login.html", ViewData(c, gin.H{
		"title": "Log in",
		"next":  safeNext(c.Query("next")),
	}))
}

func (a *AuthModule) loginPost(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	next := safeNext(c.PostForm("next"))

	user, err := Authenticate(c.Request.Context(), a.db, email, password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			log.Printf("Error authenticating %s: %v", email, err)
		}
		common.AddFlash(c, common.FlashWarning, "Incorrect email or password")
		if next == "/" {
			c.Redirect(http.StatusFound, "/login")
		} else {
			c.Redirect(http.StatusFound, loginURL(next))
		}
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		log.Printf("Error saving session for user %d: %v", user.ID, err)
		c.HTML(http.StatusInternalServerError, "error.html", ViewData(c, gin.H{
			"title": "Error",
			"error": "Could not log you in, please try again",
		}))
		return
	}

	c.Redirect(http.StatusFound, next)
}

func (a *AuthModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Printf("Error clearing session: %v", err)
	}

	c.Redirect(http.StatusFound, "/")
}

func loginURL(next string) string {
	return "/login?next=" + url.QueryEscape(next)
}

// safeNext only lets through paths on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}
