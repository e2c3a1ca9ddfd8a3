package domain

import "time"

// Default display attributes applied when a category is created without them.
const (
	DefaultCategoryColor = "#007bff"
	DefaultCategoryIcon  = "📦"
)

type Category struct {
	ID          int32     `json:"id"`
	Name        string    `json:"nome"`
	Description *string   `json:"descricao"`
	Color       string    `json:"cor"`
	Icon        string    `json:"icone"`
	Active      bool      `json:"ativo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryPatch carries a partial update; nil fields are left untouched.
type CategoryPatch struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
	Active      *bool
}

// IsEmpty reports whether the patch would change nothing.
func (p *CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Color == nil && p.Icon == nil && p.Active == nil
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id int32) (*Category, error)
	GetByName(name string) (*Category, error)
	GetAll(activeOnly bool) ([]*Category, error)
	Update(id int32, patch *CategoryPatch) (*Category, error)
	Deactivate(id int32) error
}
