package services

import (
	"testing"
	"woniunote/internal/apperr"
	"woniunote/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFavoriteFixture(t *testing.T) (*FavoriteService, *models.User, *models.Article) {
	database := newTestDB(t)
	credits := NewCreditService(database)
	articles := NewArticleService(database, credits)
	favorites := NewFavoriteService(database)

	admin := createUser(t, database, "admin", models.RoleAdmin)
	article, err := articles.Publish(admin, ArticleInput{Title: "好文", Content: "正文"})
	require.NoError(t, err)
	return favorites, admin, article
}

func TestFavoriteReusesSingleRow(t *testing.T) {
	favorites, _, article := newFavoriteFixture(t)
	user := createUser(t, favorites.db, "collector", models.RoleUser)

	first, err := favorites.Add(user, article.ID)
	require.NoError(t, err)
	assert.True(t, first.Active())

	// 重复收藏幂等
	again, err := favorites.Add(user, article.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	require.NoError(t, favorites.Cancel(user, article.ID))
	assert.False(t, favorites.IsFavorited(user.ID, article.ID))

	// 取消后重新收藏复用原行，而不是新建
	readd, err := favorites.Add(user, article.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, readd.ID)

	var count int64
	favorites.db.Model(&models.Favorite{}).
		Where("user_id = ? AND article_id = ?", user.ID, article.ID).
		Count(&count)
	assert.EqualValues(t, 1, count, "one (user, article) pair must never grow a second row")
	assert.True(t, favorites.IsFavorited(user.ID, article.ID))
}

func TestCancelMissingFavorite(t *testing.T) {
	favorites, _, article := newFavoriteFixture(t)
	user := createUser(t, favorites.db, "collector", models.RoleUser)

	// 从未收藏过
	assert.ErrorIs(t, favorites.Cancel(user, article.ID), apperr.ErrNotFound)

	// 已取消的再取消也是 NotFound
	_, err := favorites.Add(user, article.ID)
	require.NoError(t, err)
	require.NoError(t, favorites.Cancel(user, article.ID))
	assert.ErrorIs(t, favorites.Cancel(user, article.ID), apperr.ErrNotFound)
}

func TestFavoriteRequiresVisibleArticle(t *testing.T) {
	favorites, _, _ := newFavoriteFixture(t)
	user := createUser(t, favorites.db, "collector", models.RoleUser)
	credits := NewCreditService(favorites.db)
	articles := NewArticleService(favorites.db, credits)

	// 待审核文章不能收藏
	pending, err := articles.Publish(user, ArticleInput{Title: "待审", Content: "正文"})
	require.NoError(t, err)
	_, err = favorites.Add(user, pending.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = favorites.Add(user, 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = favorites.Add(nil, pending.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestListActiveExcludesCanceled(t *testing.T) {
	favorites, admin, article := newFavoriteFixture(t)
	user := createUser(t, favorites.db, "collector", models.RoleUser)
	credits := NewCreditService(favorites.db)
	articles := NewArticleService(favorites.db, credits)

	second, err := articles.Publish(admin, ArticleInput{Title: "第二篇", Content: "正文"})
	require.NoError(t, err)

	_, err = favorites.Add(user, article.ID)
	require.NoError(t, err)
	_, err = favorites.Add(user, second.ID)
	require.NoError(t, err)
	require.NoError(t, favorites.Cancel(user, article.ID))

	// 已取消的收藏对所有人不可见，包括收藏者本人
	list, err := favorites.ListActive(user.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ArticleID)
	assert.Equal(t, "第二篇", list[0].Article.Title)

	assert.EqualValues(t, 0, favorites.CountByArticle(article.ID))
	assert.EqualValues(t, 1, favorites.CountByArticle(second.ID))
}

func TestSwitchGuardsOwnership(t *testing.T) {
	favorites, admin, article := newFavoriteFixture(t)
	user := createUser(t, favorites.db, "collector", models.RoleUser)
	stranger := createUser(t, favorites.db, "stranger", models.RoleUser)

	favorite, err := favorites.Add(user, article.ID)
	require.NoError(t, err)

	_, err = favorites.Switch(stranger, favorite.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	canceled, err := favorites.Switch(user, favorite.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, canceled)

	// 管理员可以代为切换
	canceled, err = favorites.Switch(admin, favorite.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, canceled)

	_, err = favorites.Switch(user, 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSwitchReactivationNeedsVisibleArticle(t *testing.T) {
	favorites, admin, article := newFavoriteFixture(t)
	user := createUser(t, favorites.db, "collector", models.RoleUser)

	favorite, err := favorites.Add(user, article.ID)
	require.NoError(t, err)

	credits := NewCreditService(favorites.db)
	articles := NewArticleService(favorites.db, credits)
	require.NoError(t, articles.Hide(admin, article.ID))

	// 文章隐藏后仍然可以取消收藏
	canceled, err := favorites.Switch(user, favorite.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, canceled)

	// 但不能把已取消的收藏切换回有效
	_, err = favorites.Switch(user, favorite.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
