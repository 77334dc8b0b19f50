package domain

// Category is a node of the two-level category tree. ParentID is nil for
// root categories. Parent, when loaded, is the resolved parent row.
type Category struct {
	ID       int64
	Name     string
	ParentID *int64
	Parent   *Category
}

// IsSubcategory reports whether c already sits on the second level.
func (c *Category) IsSubcategory() bool {
	return c.ParentID != nil
}
