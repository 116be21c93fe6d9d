package posts

import "blogful/models"

// OwnershipPolicy decides who may edit or delete a post.
type OwnershipPolicy struct {
	// AllowOrphanEdits lets any logged-in user modify posts without an author.
	AllowOrphanEdits bool
}

var DefaultOwnershipPolicy = OwnershipPolicy{AllowOrphanEdits: true}

// CanModify reports whether actor may edit or delete post. Anonymous
// actors never may.
func (p OwnershipPolicy) CanModify(actor *models.User, post *models.Post) bool {
	if actor == nil || post == nil {
		return false
	}
	if !post.HasAuthor() {
		return p.AllowOrphanEdits
	}
	return post.IsAuthoredBy(actor)
}
