package handlers

import (
	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
	"github.com/yungbote/yoshkaflow-backend/internal/services"
)

type UserHandler = Resource[types.User]

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return NewResource[types.User](log, "users", userService, func(u *types.User, id int64) { u.ID = id })
}
