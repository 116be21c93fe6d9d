package posts

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blogful/auth"
	"blogful/cache"
	"blogful/common"
	"blogful/models"
)

type PostsModule struct {
	store    *Store
	policy   OwnershipPolicy
	pageSize int
}

func NewPostsModule(db *gorm.DB, pageSize int, policy OwnershipPolicy) *PostsModule {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &PostsModule{
		store:    NewStore(db),
		policy:   policy,
		pageSize: pageSize,
	}
}

func (p *PostsModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/", p.index)
	router.GET("/page/:page", p.index)
	router.GET("/post/:id", cache.ETag(), p.view)

	postGroup := router.Group("/post")
	postGroup.Use(auth.RequireAuth)
	{
		postGroup.GET("/add", p.addForm)
		postGroup.POST("/add", p.addPost)
		postGroup.GET("/:id/edit", p.editForm)
		postGroup.POST("/:id/edit", p.editPost)
		postGroup.GET("/:id/delete", p.deleteConfirm)
		postGroup.POST("/:id/delete", p.deletePost)
	}

	router.NoRoute(p.notFound)
}

func (p *PostsModule) index(c *gin.Context) {
	page := 1
	if raw := c.Param("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			p.notFound(c)
			return
		}
		page = n
	}

	posts, pagination, err := p.store.Page(c.Request.Context(), page, p.pageSize)
	if err != nil {
		p.serverError(c, err, "Could not load posts")
		return
	}

	c.HTML(http.StatusOK, "posts.html", auth.ViewData(c, gin.H{
		"title":      "Posts",
		"posts":      p.withPermissions(c, posts),
		"pagination": pagination,
	}))
}

func (p *PostsModule) view(c *gin.Context) {
	post, ok := p.loadPost(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "post.html", auth.ViewData(c, gin.H{
		"title":     post.Title,
		"post":      post,
		"content":   safeHTML(post.Content),
		"canModify": p.policy.CanModify(auth.CurrentUser(c), post),
	}))
}

func (p *PostsModule) addForm(c *gin.Context) {
	c.HTML(http.StatusOK, "post_form.html", auth.ViewData(c, gin.H{
		"title":     "Add post",
		"action":    "/post/add",
		"postTitle": "",
		"source":    "",
	}))
}

func (p *PostsModule) addPost(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	source := c.PostForm("content")

	if title == "" {
		c.HTML(http.StatusBadRequest, "post_form.html", auth.ViewData(c, gin.H{
			"title":     "Add post",
			"action":    "/post/add",
			"error":     "A post needs a title",
			"postTitle": title,
			"source":    source,
		}))
		return
	}

	if _, err := p.store.Create(c.Request.Context(), title, source, auth.CurrentUser(c)); err != nil {
		p.serverError(c, err, "Could not save the post")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (p *PostsModule) editForm(c *gin.Context) {
	post, ok := p.loadAuthorizedPost(c, "edit")
	if !ok {
		return
	}

	source := post.Source
	if source == "" {
		source = post.Content
	}

	c.HTML(http.StatusOK, "post_form.html", auth.ViewData(c, gin.H{
		"title":     "Edit post",
		"action":    postURL(post) + "/edit",
		"post":      post,
		"postTitle": post.Title,
		"source":    source,
	}))
}

func (p *PostsModule) editPost(c *gin.Context) {
	post, ok := p.loadAuthorizedPost(c, "edit")
	if !ok {
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	source := c.PostForm("content")

	if title == "" {
		c.HTML(http.StatusBadRequest, "post_form.html", auth.ViewData(c, gin.H{
			"title":     "Edit post",
			"action":    postURL(post) + "/edit",
			"post":      post,
			"error":     "A post needs a title",
			"postTitle": title,
			"source":    source,
		}))
		return
	}

	if err := p.store.Update(c.Request.Context(), post, title, source); err != nil {
		p.serverError(c, err, "Could not save the post")
		return
	}

	c.Redirect(http.StatusFound, postURL(post))
}

func (p *PostsModule) deleteConfirm(c *gin.Context) {
	post, ok := p.loadAuthorizedPost(c, "delete")
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "post_delete.html", auth.ViewData(c, gin.H{
		"title": "Delete post",
		"post":  post,
	}))
}

func (p *PostsModule) deletePost(c *gin.Context) {
	post, ok := p.loadAuthorizedPost(c, "delete")
	if !ok {
		return
	}

	if c.PostForm("submit") != "delete" {
		c.Redirect(http.StatusFound, postURL(post))
		return
	}

	if err := p.store.Delete(c.Request.Context(), post); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			p.notFound(c)
			return
		}
		p.serverError(c, err, "Could not delete the post")
		return
	}

	common.AddFlash(c, common.FlashInfo, "Post deleted")
	c.Redirect(http.StatusFound, "/")
}

// loadPost fetches the post named by the :id parameter, answering 404
// itself when there is none.
func (p *PostsModule) loadPost(c *gin.Context) (*models.Post, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		p.notFound(c)
		return nil, false
	}

	post, err := p.store.Get(c.Request.Context(), id)
	if errors.Is(err, ErrPostNotFound) {
		p.notFound(c)
		return nil, false
	}
	if err != nil {
		p.serverError(c, err, "Could not load the post")
		return nil, false
	}
	return post, true
}

// loadAuthorizedPost is loadPost plus the ownership check. It runs on
// both the form and the submit of every mutating route.
func (p *PostsModule) loadAuthorizedPost(c *gin.Context, action string) (*models.Post, bool) {
	post, ok := p.loadPost(c)
	if !ok {
		return nil, false
	}

	if !p.policy.CanModify(auth.CurrentUser(c), post) {
		common.AddFlash(c, common.FlashWarning, "You can only "+action+" your own posts")
		c.Redirect(http.StatusFound, "/")
		return nil, false
	}
	return post, true
}

func (p *PostsModule) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.html", auth.ViewData(c, gin.H{
		"title": "Not found",
		"error": "The page you asked for does not exist",
	}))
}

func (p *PostsModule) serverError(c *gin.Context, err error, message string) {
	log.Printf("Error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.HTML(http.StatusInternalServerError, "error.html", auth.ViewData(c, gin.H{
		"title": "Error",
		"error": message,
	}))
}
