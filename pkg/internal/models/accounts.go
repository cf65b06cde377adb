package models

type Account struct {
	BaseModel

	Name     string `json:"name" gorm:"uniqueIndex"`
	Password string `json:"-"`

	Polls []Poll `json:"polls" gorm:"foreignKey:AccountID"`
}
