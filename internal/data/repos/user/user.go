package user

import (
	"github.com/yungbote/yoshkaflow-backend/internal/data/db"
	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

type UserRepo interface {
	Get(dbc dbctx.Context, id int64) (*types.User, error)
	List(dbc dbctx.Context) ([]*types.User, error)
	Add(dbc dbctx.Context, u *types.User) error
	Update(dbc dbctx.Context, u *types.User) error
	Delete(dbc dbctx.Context, id int64) error
}

type userRepo struct {
	dc  *db.DataContext
	log *logger.Logger
}

func NewUserRepo(dc *db.DataContext, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{dc: dc, log: repoLog}
}

// Get fails with NotFound when no user has id.
func (ur *userRepo) Get(dbc dbctx.Context, id int64) (*types.User, error) {
	return ur.dc.Users().Get(dbc, id)
}

func (ur *userRepo) List(dbc dbctx.Context) ([]*types.User, error) {
	return ur.dc.Users().List(dbc)
}

// Add inserts u and sets its ID. Missing or oversized fields fail with
// Validation.
func (ur *userRepo) Add(dbc dbctx.Context, u *types.User) error {
	return ur.dc.Users().Add(dbc, u)
}

func (ur *userRepo) Update(dbc dbctx.Context, u *types.User) error {
	return ur.dc.Users().Update(dbc, u)
}

func (ur *userRepo) Delete(dbc dbctx.Context, id int64) error {
	if err := ur.dc.Users().Delete(dbc, id); err != nil {
		return err
	}
	ur.log.Debug("user deleted", "user_id", id)
	return nil
}
