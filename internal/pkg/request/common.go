package request

import "github.com/pavalka/shareit/internal/pkg/page"

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ListParams holds the offset-based paging query shared by list endpoints.
// Size is a pointer so an absent parameter can fall back to the default.
type ListParams struct {
	From int  `form:"from"`
	Size *int `form:"size"`
}

// ToPage validates the parameters and builds a page window.
func (p ListParams) ToPage(defaultSize int, sort page.Sort) (page.Page, error) {
	size := defaultSize
	if p.Size != nil {
		size = *p.Size
	}
	return page.New(p.From, size, sort)
}
