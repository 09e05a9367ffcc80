package services

import (
	"testing"
	"woniunote/internal/apperr"
	"woniunote/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) *UserService {
	database := newTestDB(t)
	credits := NewCreditService(database)
	return NewUserService(database, credits)
}

func TestRegisterDefaults(t *testing.T) {
	users := newUserFixture(t)

	user, err := users.Register("snail@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, models.DefaultCredit, user.Credit)
	assert.Equal(t, "snail", user.Nickname, "nickname defaults to the local part of the username")
	assert.NotEmpty(t, user.Avatar)
	assert.NotEqual(t, "secret", user.Password, "password must be stored hashed")

	// 初始 50 分是默认额度，不产生账本明细
	assert.Zero(t, ledgerSum(t, users.db, user.ID))
	requireBalanceInvariant(t, users.db, user.ID)
}

func TestRegisterValidation(t *testing.T) {
	users := newUserFixture(t)

	_, err := users.Register("  ", "secret")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = users.Register("snail", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = users.Register("snail", "secret")
	require.NoError(t, err)
	_, err = users.Register("snail", "another")
	assert.ErrorIs(t, err, apperr.ErrDuplicate)
}

func TestLoginAwardsDailyBonusOnce(t *testing.T) {
	users := newUserFixture(t)

	_, err := users.Register("snail", "secret")
	require.NoError(t, err)

	logged, err := users.Login("snail", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCredit+CreditDailyLogin, logged.Credit)

	// 当天第二次登录不再加分
	logged, err = users.Login("snail", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCredit+CreditDailyLogin, logged.Credit)
	requireBalanceInvariant(t, users.db, logged.ID)
}

func TestLoginFailures(t *testing.T) {
	users := newUserFixture(t)

	_, err := users.Register("snail", "secret")
	require.NoError(t, err)

	_, err = users.Login("snail", "wrong")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = users.Login("nobody", "secret")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// 登录失败不发奖励
	user, err := users.Login("snail", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCredit+CreditDailyLogin, user.Credit)
}

func TestUpdateProfile(t *testing.T) {
	users := newUserFixture(t)
	owner := createUser(t, users.db, "owner", models.RoleUser)
	stranger := createUser(t, users.db, "stranger", models.RoleUser)
	admin := createUser(t, users.db, "admin", models.RoleAdmin)

	assert.ErrorIs(t, users.UpdateProfile(stranger, owner.ID, "改名", "", ""), apperr.ErrForbidden)

	require.NoError(t, users.UpdateProfile(owner, owner.ID, "蜗牛", "", "10001"))
	got, err := users.Get(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "蜗牛", got.Nickname)
	assert.Equal(t, "10001", got.QQ)

	// 空字段不覆盖已有值
	require.NoError(t, users.UpdateProfile(owner, owner.ID, "", "2.png", ""))
	got, err = users.Get(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "蜗牛", got.Nickname)
	assert.Equal(t, "2.png", got.Avatar)

	// 管理员可以代改
	require.NoError(t, users.UpdateProfile(admin, owner.ID, "管理员改的", "", ""))

	assert.ErrorIs(t, users.UpdateProfile(admin, 9999, "幽灵", "", ""), apperr.ErrNotFound)
}

func TestSetRole(t *testing.T) {
	users := newUserFixture(t)
	admin := createUser(t, users.db, "admin", models.RoleAdmin)
	user := createUser(t, users.db, "member", models.RoleUser)

	assert.ErrorIs(t, users.SetRole(user, user.ID, models.RoleAdmin), apperr.ErrForbidden)
	assert.ErrorIs(t, users.SetRole(admin, user.ID, "superuser"), apperr.ErrValidation)
	assert.ErrorIs(t, users.SetRole(admin, 9999, models.RoleAdmin), apperr.ErrNotFound)

	require.NoError(t, users.SetRole(admin, user.ID, models.RoleAdmin))
	got, err := users.Get(user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())
}
