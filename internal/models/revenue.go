package models

// Revenue is one month of the revenue chart. Month is a short label such
// as "Jan" and is unique.
type Revenue struct {
	Month   string `gorm:"type:varchar(4);primaryKey" json:"month"`
	Revenue int64  `json:"revenue"`
}

func (Revenue) TableName() string {
	return "revenue"
}
