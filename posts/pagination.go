package posts

const DefaultPageSize = 10

// Pagination describes one page window over posts sorted newest first.
// Page is 1-indexed.
type Pagination struct {
	Page       int
	Size       int
	Total      int64
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// NewPagination computes the window for page given count posts in total.
// With no posts there are no pages at all, so both HasPrev and HasNext
// are false whatever page is asked for.
func NewPagination(page, size int, count int64) Pagination {
	if size < 1 {
		size = DefaultPageSize
	}
	if count < 0 {
		count = 0
	}

	p := Pagination{Page: page, Size: size, Total: count}
	if count > 0 {
		p.TotalPages = int((count-1)/int64(size)) + 1
	}

	index := page - 1
	p.HasPrev = index > 0 && p.TotalPages > 0
	p.HasNext = index < p.TotalPages-1
	return p
}

// Offset is the number of posts before the window.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Size
}

func (p Pagination) Limit() int {
	return p.Size
}

// InRange reports whether the window can hold any posts.
func (p Pagination) InRange() bool {
	return p.Page >= 1 && p.Page <= p.TotalPages
}

func (p Pagination) PrevPage() int {
	return p.Page - 1
}

func (p Pagination) NextPage() int {
	return p.Page + 1
}

// Pages lists the page numbers 1..TotalPages for page links.
func (p Pagination) Pages() []int {
	pages := make([]int, p.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// ShowControls reports whether the listing needs pagination links.
func (p Pagination) ShowControls() bool {
	return p.HasPrev || p.HasNext
}
