package dao

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.New(sqlite.Config{
		DSN:        ":memory:",
		DriverName: "sqlite",
	}), &gorm.Config{Logger: gormLogger.Default.LogMode(gormLogger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON;").Error)
	require.NoError(t, InitTables(db))

	return db
}

func intPtr(v int) *int { return &v }

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewStore[Player](newTestDB(t), "jersey_number ASC")

	p10, err := store.Insert(ctx, Player{Name: "Zidane", JerseyNumber: 10, Position: "milieu", Active: true})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p10.ID)
	assert.False(t, p10.CreatedAt.IsZero())

	_, err = store.Insert(ctx, Player{Name: "Barthez", JerseyNumber: 1, Position: "gardien", Active: false})
	require.NoError(t, err)

	list, err := store.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].JerseyNumber)

	active, err := store.List(ctx, Filter{}.Eq("active", true))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Zidane", active[0].Name)

	p10.Name = "Zinedine Zidane"
	p10.Active = false
	p10.HeightCM = intPtr(185)
	updated, err := store.Update(ctx, p10.ID, p10)
	require.NoError(t, err)
	assert.Equal(t, "Zinedine Zidane", updated.Name)
	assert.False(t, updated.Active)
	assert.Equal(t, 185, *updated.HeightCM)
	assert.Equal(t, p10.CreatedAt.Unix(), updated.CreatedAt.Unix())

	count, err := store.Count(ctx, Filter{}.Eq("active", false))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, store.Delete(ctx, p10.ID))
	_, err = store.Get(ctx, p10.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, p10.ID), ErrNotFound)

	_, err = store.Update(ctx, uuid.New(), Player{Name: "ghost", Position: "milieu"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreFilterGteAndLimit(t *testing.T) {
	ctx := context.Background()
	store := NewStore[Match](newTestDB(t), "match_date ASC", "Competition")
	now := time.Now().UTC()

	for i, days := range []int{-7, 3, 10} {
		_, err := store.Insert(ctx, Match{
			OpponentTeam: []string{"A", "B", "C"}[i],
			MatchDate:    now.AddDate(0, 0, days),
			Status:       "a_venir",
		})
		require.NoError(t, err)
	}

	next, err := store.First(ctx, Filter{}.Eq("status", "a_venir").Gte("match_date", now))
	require.NoError(t, err)
	assert.Equal(t, "B", next.OpponentTeam)

	upcoming, err := store.List(ctx, Filter{}.Gte("match_date", now).Limit(5))
	require.NoError(t, err)
	assert.Len(t, upcoming, 2)

	_, err = store.First(ctx, Filter{}.Eq("status", "termine"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestForeignKeys(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	competitions := NewStore[Competition](db, "name")
	matches := NewStore[Match](db, "match_date", "Competition")
	galleries := NewStore[Gallery](db, "event_date DESC", "Photos")
	photos := NewStore[Photo](db, "order_index")

	missing := uuid.New()
	_, err := matches.Insert(ctx, Match{OpponentTeam: "X", MatchDate: time.Now(), Status: "a_venir", CompetitionID: &missing})
	assert.ErrorIs(t, err, ErrInvalidReference)

	cup, err := competitions.Insert(ctx, Competition{Name: "Coupe", Type: "coupe", Season: "2024-2025"})
	require.NoError(t, err)
	m, err := matches.Insert(ctx, Match{OpponentTeam: "X", MatchDate: time.Now(), Status: "a_venir", CompetitionID: &cup.ID})
	require.NoError(t, err)

	loaded, err := matches.Get(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Competition)
	assert.Equal(t, "Coupe", loaded.Competition.Name)

	require.NoError(t, competitions.Delete(ctx, cup.ID))
	loaded, err = matches.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.CompetitionID)

	g, err := galleries.Insert(ctx, Gallery{Title: "Tournoi"})
	require.NoError(t, err)
	_, err = photos.Insert(ctx, Photo{GalleryID: g.ID, ImageURL: "b.jpg", OrderIndex: 2})
	require.NoError(t, err)
	_, err = photos.Insert(ctx, Photo{GalleryID: g.ID, ImageURL: "a.jpg", OrderIndex: 1})
	require.NoError(t, err)

	withPhotos, err := galleries.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Len(t, withPhotos.Photos, 2)

	require.NoError(t, galleries.Delete(ctx, g.ID))
	left, err := photos.Count(ctx, Filter{}.Eq("gallery_id", g.ID))
	require.NoError(t, err)
	assert.Zero(t, left)
}

func TestUniqueSubscriptionEmail(t *testing.T) {
	ctx := context.Background()
	store := NewStore[Subscription](newTestDB(t), "created_at DESC")

	_, err := store.Insert(ctx, Subscription{Email: "fan@example.org", Active: true})
	require.NoError(t, err)
	_, err = store.Insert(ctx, Subscription{Email: "fan@example.org", Active: true})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestReactionDAO(t *testing.T) {
	ctx := context.Background()
	d := NewReactionDAO(newTestDB(t))
	article := uuid.New()
	now := time.Now().UTC()

	_, err := d.Find(ctx, "ip:1", "article", article)
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := d.Upsert(ctx, UserReaction{VoterID: "ip:1", EntityType: "article", EntityID: article, ReactionType: "like", ExpiresAt: now.Add(24 * time.Hour)}, now)
	require.NoError(t, err)
	_, err = d.Upsert(ctx, UserReaction{VoterID: "ip:2", EntityType: "article", EntityID: article, ReactionType: "like", ExpiresAt: now.Add(-time.Hour)}, now)
	require.NoError(t, err)

	counts, err := d.Counts(ctx, "article", article)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Likes)
	assert.Equal(t, int64(0), counts.Dislikes)

	// still inside the first vote's window
	held, err := d.Upsert(ctx, UserReaction{VoterID: "ip:1", EntityType: "article", EntityID: article, ReactionType: "dislike", ExpiresAt: now.Add(25 * time.Hour)}, now.Add(time.Hour))
	assert.ErrorIs(t, err, ErrReactionActive)
	assert.Equal(t, "like", held.ReactionType)
	assert.WithinDuration(t, now.Add(24*time.Hour), held.ExpiresAt, time.Second)

	later := now.Add(24 * time.Hour)
	switched, err := d.Upsert(ctx, UserReaction{VoterID: "ip:1", EntityType: "article", EntityID: article, ReactionType: "dislike", ExpiresAt: later.Add(24 * time.Hour)}, later)
	require.NoError(t, err)
	assert.Equal(t, first.ID, switched.ID)
	assert.Equal(t, "dislike", switched.ReactionType)

	counts, err = d.Counts(ctx, "article", article)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Likes)
	assert.Equal(t, int64(1), counts.Dislikes)

	byType, err := d.CountsByType(ctx, "article")
	require.NoError(t, err)
	assert.Len(t, byType, 1)

	targets, removed, err := d.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, []ReactionTarget{{EntityType: "article", EntityID: article}}, targets)

	targets, removed, err = d.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Empty(t, targets)

	empty, err := d.Counts(ctx, "player", uuid.New())
	require.NoError(t, err)
	assert.Zero(t, empty.Likes)
}

func TestUserDAO(t *testing.T) {
	ctx := context.Background()
	d := NewUserDAO(newTestDB(t))

	u, err := d.Insert(ctx, User{Email: "admin@club.org", Password: "hash", Name: "Admin"})
	require.NoError(t, err)

	_, err = d.Insert(ctx, User{Email: "admin@club.org", Password: "hash", Name: "Other"})
	assert.ErrorIs(t, err, ErrUserEmailExists)

	found, err := d.FindByEmail(ctx, "admin@club.org")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = d.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, d.UpdatePassword(ctx, u.ID, "new-hash"))
	found, err = d.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", found.Password)
}
