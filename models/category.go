package models

// Category supports one level of nesting through ParentID:
// ParentID == nil marks a root category, otherwise the category is a
// subcategory of a root. Depth beyond one level is a convention, not a
// schema constraint.
type Category struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string     `gorm:"not null" json:"name"`
	Slug          string     `gorm:"uniqueIndex;not null" json:"slug"`
	ParentID      *uint      `gorm:"index" json:"parent_id,omitempty"`
	Subcategories []Category `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"subcategories,omitempty"`
	Products      []Product  `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
