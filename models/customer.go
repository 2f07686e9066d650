package models

// Customer represents a person who places cookie orders
type Customer struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Phone    string `gorm:"size:20" json:"phone"`
	Location string `gorm:"size:255" json:"location"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
