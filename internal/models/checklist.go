package models

// ChecklistItem marks a (category, subgroup) pair as an obligation expected
// to be paid every month. The table has no period column.
type ChecklistItem struct {
	CategoryID   uint   `gorm:"not null" json:"category_id"`
	SubgroupName string `gorm:"not null" json:"subgroup_name"`
}

// TableName keeps the singular table name used by existing data files.
func (ChecklistItem) TableName() string {
	return "checklist"
}
