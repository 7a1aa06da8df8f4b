package user

import "github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"

const TableName = "users"

type User struct {
	ID    int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name  string `gorm:"not null;column:name" json:"name" validate:"notblank"`
	Email string `gorm:"not null;column:email" json:"email" validate:"notblank,max=320"`
}

func (User) TableName() string { return TableName }

func (u *User) Validate() error {
	return aggregates.ValidateStruct("user.validate", u)
}
