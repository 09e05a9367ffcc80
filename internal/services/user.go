package services

import (
	"errors"
	"strings"
	"woniunote/internal/apperr"
	"woniunote/internal/models"
	"woniunote/internal/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db      *gorm.DB
	credits *CreditService
}

func NewUserService(db *gorm.DB, credits *CreditService) *UserService {
	return &UserService{db: db, credits: credits}
}

// Register 注册新用户。初始积分为 50，属于默认额度，不写积分明细，
// 之后的每一次余额变化都必须经过账本。
func (s *UserService) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperr.Validationf("username is required")
	}
	if password == "" {
		return nil, apperr.Validationf("password is required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Duplicatef("username %s already registered", username)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	// 注册时只要求用户名和密码，其余字段尽力给出可用的默认值
	user := models.User{
		Username: username,
		Password: hash,
		Nickname: strings.SplitN(username, "@", 2)[0],
		Avatar:   utils.GetRandomAvatar(),
		Role:     models.RoleUser,
		Credit:   models.DefaultCredit,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login 校验用户名密码，成功后发放每日登录奖励（当天只发一次）
func (s *UserService) Login(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user %s", username)
		}
		return nil, err
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, apperr.Forbiddenf("invalid password")
	}

	if err := s.credits.DailyLoginAward(user.ID); err != nil {
		return nil, err
	}

	// 重新读取，拿到奖励后的余额
	if err := s.db.First(&user, user.ID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Get 按 ID 查询用户
func (s *UserService) Get(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user %d", userID)
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile 用户更新自己的资料，管理员可代为修改
func (s *UserService) UpdateProfile(actor *models.User, userID uint, nickname, avatar, qq string) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	if err := CanMutate(actor, user.ID); err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if nickname != "" {
		updates["nickname"] = nickname
	}
	if avatar != "" {
		updates["avatar"] = avatar
	}
	if qq != "" {
		updates["qq"] = qq
	}
	if len(updates) == 0 {
		return nil
	}
	return s.db.Model(user).Updates(updates).Error
}

// SetRole 管理员调整用户角色
func (s *UserService) SetRole(actor *models.User, userID uint, role string) error {
	if err := CanModerate(actor); err != nil {
		return err
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return apperr.Validationf("unknown role %q", role)
	}
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("role", role).Error
}
