package user

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `json:"password,omitempty"`
	Points   int    `gorm:"not null;default:0" json:"points"`
	Streak   int    `gorm:"not null;default:0" json:"streak"`
}
