package services

import (
	"woniunote/internal/apperr"
	"woniunote/internal/models"
)

// CanMutate 仅允许记录的作者本人或管理员修改/删除
func CanMutate(actor *models.User, ownerID uint) error {
	if actor == nil {
		return apperr.Forbiddenf("login required")
	}
	if actor.ID == ownerID || actor.IsAdmin() {
		return nil
	}
	return apperr.Forbiddenf("only the author or an admin may modify this record")
}

// CanModerate 审核、推荐、隐藏恢复、角色调整等仅限管理员，
// 作者对自己的内容也无权执行
func CanModerate(actor *models.User) error {
	if actor == nil {
		return apperr.Forbiddenf("login required")
	}
	if !actor.IsAdmin() {
		return apperr.Forbiddenf("admin role required")
	}
	return nil
}

// CanView 隐藏或草稿内容仅作者本人与管理员可见
func CanView(actor *models.User, ownerID uint) bool {
	return actor != nil && (actor.ID == ownerID || actor.IsAdmin())
}
