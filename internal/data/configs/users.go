package configs

import (
	"github.com/yungbote/yoshkaflow-backend/internal/data/schema"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/user"
)

type UserConfiguration struct{}

func (UserConfiguration) Configure(b *schema.Builder) {
	b.Entity(user.TableName, &user.User{}, func(e *schema.EntityBuilder) {
		e.HasKey("id").Required("name", "email")
	})
}
