package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/asclub/club-api/internal/db"
	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/repository/dao"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(conn))

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return conn
}

func TestCompositionPositionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCompositionRepository(newTestDB(t))

	player := uuid.New()
	set := domain.NewPositionSet(domain.DefaultFormation)
	set.Upsert(player, 12.5, 80)

	created, err := repo.Create(ctx, domain.Composition{
		Title:     "Derby",
		Formation: domain.DefaultFormation,
		Positions: set,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Derby", got.Title)
	assert.Equal(t, domain.DefaultFormation, got.Positions.Formation)
	assert.Equal(t, domain.PositionSetVersion, got.Positions.Version)

	pos, ok := got.Positions.Lookup(player)
	require.True(t, ok)
	assert.Equal(t, 12.5, pos.X)
	assert.Equal(t, 80.0, pos.Y)
}

func TestCompositionUnreadableBlobResets(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	repo := NewCompositionRepository(conn)

	set := domain.NewPositionSet(domain.DefaultFormation)
	set.Upsert(uuid.New(), 50, 50)
	created, err := repo.Create(ctx, domain.Composition{
		Title:     "Coupe",
		Formation: domain.DefaultFormation,
		Positions: set,
	})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(
		"UPDATE team_compositions SET player_positions = ? WHERE id = ?", "{oops", created.ID,
	).Error)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Positions.Positions)
	assert.Equal(t, domain.DefaultFormation, got.Positions.Formation)
}

func TestMatchNextAndResults(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository(newTestDB(t))
	now := time.Now().UTC().Truncate(time.Second)

	fixtures := []domain.Match{
		{OpponentTeam: "Old", MatchDate: now.Add(-72 * time.Hour), Venue: "Stade", Status: domain.MatchFinished},
		{OpponentTeam: "Recent", MatchDate: now.Add(-24 * time.Hour), Venue: "Stade", Status: domain.MatchFinished},
		{OpponentTeam: "Later", MatchDate: now.Add(96 * time.Hour), Venue: "Stade", Status: domain.MatchUpcoming},
		{OpponentTeam: "Soon", MatchDate: now.Add(48 * time.Hour), Venue: "Stade", Status: domain.MatchUpcoming},
		{OpponentTeam: "Rained", MatchDate: now.Add(24 * time.Hour), Venue: "Stade", Status: domain.MatchPostponed},
	}
	for _, m := range fixtures {
		_, err := repo.Create(ctx, m)
		require.NoError(t, err)
	}

	next, err := repo.Next(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, "Soon", next.OpponentTeam)

	results, err := repo.Results(ctx, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Recent", results[0].OpponentTeam)

	_, err = repo.Next(ctx, now.Add(200*time.Hour))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDonationTotals(t *testing.T) {
	ctx := context.Background()
	repo := NewDonationRepository(newTestDB(t))

	fixtures := []domain.Donation{
		{Amount: 20, Currency: "EUR", PaymentMethod: domain.PaymentCash, Status: domain.DonationCompleted},
		{Amount: 30.5, Currency: "EUR", PaymentMethod: domain.PaymentCard, Status: domain.DonationCompleted},
		{Amount: 100, Currency: "EUR", PaymentMethod: domain.PaymentCard, Status: domain.DonationPending},
		{Amount: 15, Currency: "USD", PaymentMethod: domain.PaymentCash, Status: domain.DonationCompleted},
	}
	for _, d := range fixtures {
		_, err := repo.Create(ctx, d)
		require.NoError(t, err)
	}

	total, count, err := repo.Totals(ctx, domain.DonationCompleted, "EUR")
	require.NoError(t, err)
	assert.Equal(t, 50.5, total)
	assert.Equal(t, int64(2), count)

	total, count, err = repo.Totals(ctx, domain.DonationFailed, "EUR")
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Zero(t, count)

	pending, err := repo.List(ctx, domain.DonationPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 100.0, pending[0].Amount)
}

func TestGalleryPhotosOrdered(t *testing.T) {
	ctx := context.Background()
	repo := NewGalleryRepository(newTestDB(t))

	gallery, err := repo.Create(ctx, domain.Gallery{Title: "Tournoi U11"})
	require.NoError(t, err)

	for i, caption := range []string{"third", "first", "second"} {
		order := []int{3, 1, 2}[i]
		_, err = repo.CreatePhoto(ctx, domain.Photo{
			GalleryID:  gallery.ID,
			ImageURL:   "/uploads/" + caption + ".jpg",
			Caption:    caption,
			OrderIndex: order,
		})
		require.NoError(t, err)
	}

	photos, err := repo.ListPhotos(ctx, gallery.ID)
	require.NoError(t, err)
	require.Len(t, photos, 3)
	assert.Equal(t, "first", photos[0].Caption)
	assert.Equal(t, "second", photos[1].Caption)
	assert.Equal(t, "third", photos[2].Caption)

	got, err := repo.Get(ctx, gallery.ID)
	require.NoError(t, err)
	require.Len(t, got.Photos, 3)
	assert.Equal(t, "first", got.Photos[0].Caption)

	require.NoError(t, repo.DeletePhoto(ctx, photos[0].ID))
	_, err = repo.GetPhoto(ctx, photos[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReactionSaveKeepsActiveRow(t *testing.T) {
	ctx := context.Background()
	repo := NewReactionRepository(newTestDB(t))
	player := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	first, err := repo.Save(ctx, domain.Reaction{
		VoterID:      "voter:42",
		EntityType:   domain.EntityPlayer,
		EntityID:     player,
		ReactionType: domain.ReactionLike,
		ExpiresAt:    now.Add(domain.ReactionTTL),
	}, now)
	require.NoError(t, err)

	_, err = repo.Save(ctx, domain.Reaction{
		VoterID:      "voter:42",
		EntityType:   domain.EntityPlayer,
		EntityID:     player,
		ReactionType: domain.ReactionDislike,
		ExpiresAt:    now.Add(time.Hour + domain.ReactionTTL),
	}, now.Add(time.Hour))
	var cooldown *domain.CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, 23*time.Hour, cooldown.Remaining)

	stored, err := repo.Find(ctx, "voter:42", domain.EntityPlayer, player)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, domain.ReactionLike, stored.ReactionType)

	later := now.Add(domain.ReactionTTL)
	replaced, err := repo.Save(ctx, domain.Reaction{
		ID:           first.ID,
		VoterID:      "voter:42",
		EntityType:   domain.EntityPlayer,
		EntityID:     player,
		ReactionType: domain.ReactionDislike,
		ExpiresAt:    later.Add(domain.ReactionTTL),
	}, later)
	require.NoError(t, err)
	assert.Equal(t, first.ID, replaced.ID)
	assert.Equal(t, domain.ReactionDislike, replaced.ReactionType)

	targets, removed, err := repo.DeleteExpired(ctx, later.Add(2*domain.ReactionTTL))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, []domain.ReactionTarget{{EntityType: domain.EntityPlayer, EntityID: player}}, targets)
}
