package services

import (
	"context"

	"github.com/yungbote/yoshkaflow-backend/internal/data/repos"
	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

// UserService passes straight through to the repository. Errors keep their
// aggregate code.
type UserService interface {
	Get(ctx context.Context, id int64) (*types.User, error)
	List(ctx context.Context) ([]*types.User, error)
	Add(ctx context.Context, u *types.User) error
	Update(ctx context.Context, u *types.User) error
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		log:      serviceLog,
		userRepo: userRepo,
	}
}

func (us *userService) Get(ctx context.Context, id int64) (*types.User, error) {
	return us.userRepo.Get(dbctx.From(ctx), id)
}

func (us *userService) List(ctx context.Context) ([]*types.User, error) {
	return us.userRepo.List(dbctx.From(ctx))
}

func (us *userService) Add(ctx context.Context, u *types.User) error {
	return us.userRepo.Add(dbctx.From(ctx), u)
}

func (us *userService) Update(ctx context.Context, u *types.User) error {
	return us.userRepo.Update(dbctx.From(ctx), u)
}

func (us *userService) Delete(ctx context.Context, id int64) error {
	return us.userRepo.Delete(dbctx.From(ctx), id)
}
