package posts

import (
	"html/template"
	"strconv"

	"github.com/gin-gonic/gin"

	"blogful/auth"
	"blogful/models"
)

// listItem is a post as the listing template sees it.
type listItem struct {
	models.Post
	HTML      template.HTML
	URL       string
	CanModify bool
}

func (p *PostsModule) withPermissions(c *gin.Context, posts []models.Post) []listItem {
	actor := auth.CurrentUser(c)
	items := make([]listItem, 0, len(posts))
	for i := range posts {
		items = append(items, listItem{
			Post:      posts[i],
			HTML:      safeHTML(posts[i].Content),
			URL:       postURL(&posts[i]),
			CanModify: p.policy.CanModify(actor, &posts[i]),
		})
	}
	return items
}

// safeHTML marks content as trusted. Content is produced by renderMarkdown,
// which escapes raw HTML in the source.
func safeHTML(content string) template.HTML {
	return template.HTML(content)
}

func postURL(post *models.Post) string {
	return "/post/" + strconv.Itoa(post.ID)
}
