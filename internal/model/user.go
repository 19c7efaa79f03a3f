package model

// User account, table users
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"              json:"id"`
	Username     string `gorm:"type:varchar(64);not null;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"            json:"-"`
	BaseModel
}

// TableName table name
func (User) TableName() string { return "users" }
