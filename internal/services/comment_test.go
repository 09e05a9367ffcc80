package services

import (
	"fmt"
	"testing"
	"woniunote/internal/apperr"
	"woniunote/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentFixture(t *testing.T) (*CommentService, *ArticleService, *models.User, *models.Article) {
	database := newTestDB(t)
	credits := NewCreditService(database)
	articles := NewArticleService(database, credits)
	comments := NewCommentService(database, credits)

	admin := createUser(t, database, "admin", models.RoleAdmin)
	article, err := articles.Publish(admin, ArticleInput{Title: "文章", Content: "正文"})
	require.NoError(t, err)
	return comments, articles, admin, article
}

func TestCreateCommentRewardsAndCounts(t *testing.T) {
	comments, _, _, article := newCommentFixture(t)
	user := createUser(t, comments.db, "talker", models.RoleUser)

	comment, err := comments.Create(user, article.ID, "说得好", "127.0.0.1")
	require.NoError(t, err)
	assert.Zero(t, comment.ReplyID)

	// 评论奖励与回复数同事务生效
	var refreshedUser models.User
	require.NoError(t, comments.db.First(&refreshedUser, user.ID).Error)
	assert.Equal(t, models.DefaultCredit+CreditComment, refreshedUser.Credit)

	var refreshedArticle models.Article
	require.NoError(t, comments.db.First(&refreshedArticle, article.ID).Error)
	assert.Equal(t, 1, refreshedArticle.ReplyCount)
	requireBalanceInvariant(t, comments.db, user.ID)

	// 两条评论各有各的奖励（按评论自身为目标键）
	_, err = comments.Create(user, article.ID, "再说一句", "127.0.0.1")
	require.NoError(t, err)
	require.NoError(t, comments.db.First(&refreshedUser, user.ID).Error)
	assert.Equal(t, models.DefaultCredit+2*CreditComment, refreshedUser.Credit)
}

func TestCommentValidation(t *testing.T) {
	comments, _, _, article := newCommentFixture(t)
	user := createUser(t, comments.db, "talker", models.RoleUser)

	_, err := comments.Create(user, article.ID, "   ", "127.0.0.1")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = comments.Create(nil, article.ID, "匿名", "127.0.0.1")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = comments.Create(user, 9999, "没有这篇文章", "127.0.0.1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestReplyParentChecks(t *testing.T) {
	comments, articles, admin, article := newCommentFixture(t)
	user := createUser(t, comments.db, "talker", models.RoleUser)

	parent, err := comments.Create(user, article.ID, "原始评论", "127.0.0.1")
	require.NoError(t, err)

	reply, err := comments.Reply(user, article.ID, parent.ID, "回复", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, parent.ID, reply.ReplyID)

	// 父评论不存在
	_, err = comments.Reply(user, article.ID, 9999, "回复幽灵", "127.0.0.1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// 父评论属于另一篇文章
	other, err := articles.Publish(admin, ArticleInput{Title: "另一篇", Content: "正文"})
	require.NoError(t, err)
	_, err = comments.Reply(user, other.ID, parent.ID, "跨文章回复", "127.0.0.1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// 已隐藏的父评论不可回复
	require.NoError(t, comments.Hide(admin, parent.ID))
	_, err = comments.Reply(user, article.ID, parent.ID, "回复已删评论", "127.0.0.1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAgreeOpposeUnlimitedIncrements(t *testing.T) {
	comments, _, _, article := newCommentFixture(t)
	user := createUser(t, comments.db, "talker", models.RoleUser)

	comment, err := comments.Create(user, article.ID, "有争议的观点", "127.0.0.1")
	require.NoError(t, err)

	// 计数只增不减，同一用户重复点也照加（与线上行为一致）
	for i := 0; i < 3; i++ {
		require.NoError(t, comments.Agree(comment.ID))
	}
	require.NoError(t, comments.Oppose(comment.ID))

	var got models.Comment
	require.NoError(t, comments.db.First(&got, comment.ID).Error)
	assert.Equal(t, 3, got.AgreeCount)
	assert.Equal(t, 1, got.OpposeCount)

	assert.ErrorIs(t, comments.Agree(9999), apperr.ErrNotFound)
}

func TestHideCommentAuthorization(t *testing.T) {
	comments, _, admin, article := newCommentFixture(t)
	user := createUser(t, comments.db, "talker", models.RoleUser)
	stranger := createUser(t, comments.db, "stranger", models.RoleUser)

	comment, err := comments.Create(user, article.ID, "待删评论", "127.0.0.1")
	require.NoError(t, err)

	assert.ErrorIs(t, comments.Hide(stranger, comment.ID), apperr.ErrForbidden)
	require.NoError(t, comments.Hide(admin, comment.ID))

	// 隐藏后从列表消失
	list, err := comments.ListByArticle(article.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDailyCommentLimit(t *testing.T) {
	comments, _, _, article := newCommentFixture(t)
	user := createUser(t, comments.db, "talker", models.RoleUser)

	for i := 0; i < DailyCommentLimit; i++ {
		_, err := comments.Create(user, article.ID, fmt.Sprintf("第 %d 条", i+1), "127.0.0.1")
		require.NoError(t, err)
	}
	_, err := comments.Create(user, article.ID, "超限", "127.0.0.1")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestListByArticleThreading(t *testing.T) {
	comments, _, _, article := newCommentFixture(t)
	user := createUser(t, comments.db, "talker", models.RoleUser)

	parent, err := comments.Create(user, article.ID, "原始评论", "127.0.0.1")
	require.NoError(t, err)
	_, err = comments.Reply(user, article.ID, parent.ID, "回复一", "127.0.0.1")
	require.NoError(t, err)

	// 原始评论列表不含回复
	top, err := comments.ListByArticle(article.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, parent.ID, top[0].ID)

	replies, err := comments.ListReplies(parent.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, parent.ID, replies[0].ReplyID)

	count, err := comments.CountByArticle(article.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
