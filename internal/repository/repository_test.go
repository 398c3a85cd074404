package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/venue-booking/internal/database"
	"github.com/deppfellow/venue-booking/internal/errs"
	"github.com/deppfellow/venue-booking/internal/model"
)

func setupRepositories(t *testing.T) *Repositories {
	t.Helper()

	logger := zerolog.Nop()
	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "booking.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return New(db, &logger)
}

func createVenue(t *testing.T, repos *Repositories, v model.Venue) model.Venue {
	t.Helper()
	err := repos.InTx(context.Background(), func(tx *Tx) error {
		return tx.Venues.Create(context.Background(), &v)
	})
	require.NoError(t, err)
	return v
}

func createArtist(t *testing.T, repos *Repositories, a model.Artist) model.Artist {
	t.Helper()
	err := repos.InTx(context.Background(), func(tx *Tx) error {
		return tx.Artists.Create(context.Background(), &a)
	})
	require.NoError(t, err)
	return a
}

func createShow(t *testing.T, repos *Repositories, s model.Show) model.Show {
	t.Helper()
	err := repos.InTx(context.Background(), func(tx *Tx) error {
		return tx.Shows.Create(context.Background(), &s)
	})
	require.NoError(t, err)
	return s
}

func TestVenueRepository_RoundTrip(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	created := createVenue(t, repos, model.Venue{
		Name:               "The Musical Hop",
		City:               "San Francisco",
		State:              "CA",
		Address:            "1015 Folsom Street",
		Phone:              "123-123-1234",
		Website:            "https://www.themusicalhop.com",
		FacebookLink:       "https://www.facebook.com/TheMusicalHop",
		ImageLink:          "https://example.com/hop.jpg",
		Genres:             "Jazz,Reggae,Swing",
		SeekingTalent:      true,
		SeekingDescription: "Looking for local acts",
	})
	require.NotZero(t, created.ID)

	err := repos.InTx(ctx, func(tx *Tx) error {
		got, err := tx.Venues.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, *got)
		assert.Equal(t, []string{"Jazz", "Reggae", "Swing"}, got.GenreList())
		return nil
	})
	require.NoError(t, err)
}

func TestVenueRepository_Update(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	v := createVenue(t, repos, model.Venue{Name: "Park Square", City: "San Francisco", State: "CA"})
	v.Name = "Park Square Live"
	v.SeekingTalent = false

	require.NoError(t, repos.InTx(ctx, func(tx *Tx) error {
		return tx.Venues.Update(ctx, &v)
	}))

	require.NoError(t, repos.InTx(ctx, func(tx *Tx) error {
		got, err := tx.Venues.GetByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, "Park Square Live", got.Name)
		assert.False(t, got.SeekingTalent)
		return nil
	}))

	missing := model.Venue{ID: 999, Name: "Nowhere"}
	err := repos.InTx(ctx, func(tx *Tx) error {
		return tx.Venues.Update(ctx, &missing)
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestVenueRepository_Search(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	hop := createVenue(t, repos, model.Venue{Name: "The Musical Hop"})
	createVenue(t, repos, model.Venue{Name: "The Dueling Pianos Bar"})
	cafe := createVenue(t, repos, model.Venue{Name: "Park Square Live Music & Coffee"})
	pct := createVenue(t, repos, model.Venue{Name: "100% Jazz"})

	tests := []struct {
		name string
		term string
		want []int64
	}{
		{name: "lowercase", term: "hop", want: []int64{hop.ID}},
		{name: "uppercase", term: "HOP", want: []int64{hop.ID}},
		{name: "substring across venues", term: "Music", want: []int64{hop.ID, cafe.ID}},
		{name: "no match", term: "opera", want: []int64{}},
		{name: "wildcard is literal", term: "%", want: []int64{pct.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, repos.InTx(ctx, func(tx *Tx) error {
				venues, err := tx.Venues.Search(ctx, tt.term)
				require.NoError(t, err)
				ids := []int64{}
				for _, v := range venues {
					ids = append(ids, v.ID)
				}
				assert.Equal(t, tt.want, ids)
				return nil
			}))
		})
	}

	require.NoError(t, repos.InTx(ctx, func(tx *Tx) error {
		all, err := tx.Venues.Search(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 4)
		return nil
	}))
}

func TestSearch_FoldsNonASCIICase(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	venue := createVenue(t, repos, model.Venue{Name: "Café Ärger"})
	artist := createArtist(t, repos, model.Artist{Name: "Ólafur Ørn"})

	for _, term := range []string{"ärger", "ÄRGER", "café", "CAFÉ", "é ä"} {
		t.Run("venue "+term, func(t *testing.T) {
			require.NoError(t, repos.InTx(ctx, func(tx *Tx) error {
				venues, err := tx.Venues.Search(ctx, term)
				require.NoError(t, err)
				require.Len(t, venues, 1)
				assert.Equal(t, venue.ID, venues[0].ID)
				return nil
			}))
		})
	}

	for _, term := range []string{"ólafur", "ØRN"} {
		t.Run("artist "+term, func(t *testing.T) {
			require.NoError(t, repos.InTx(ctx, func(tx *Tx) error {
				artists, err := tx.Artists.Search(ctx, term)
				require.NoError(t, err)
				require.Len(t, artists, 1)
				assert.Equal(t, artist.ID, artists[0].ID)
				return nil
			}))
		})
	}
}

func TestVenueRepository_NotFound(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	err := repos.InTx(ctx, func(tx *Tx) error {
		_, err := tx.Venues.GetByID(ctx, 42)
		return err
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	domainErr, ok := errs.AsError(err)
	require.True(t, ok)
	assert.Equal(t, model.EntityVenue, domainErr.Entity)
	assert.Equal(t, int64(42), domainErr.ID)

	err = repos.InTx(ctx, func(tx *Tx) error {
		return tx.Venues.Delete(ctx, 42)
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestVenueRepository_EmptyNameRejected(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	err := repos.InTx(ctx, func(tx *Tx) error {
		return tx.Venues.Create(ctx, &model.Venue{Name: ""})
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestInTx_RollbackLeavesStoreUnchanged(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	sentinel := errors.New("abort")
	err := repos.InTx(ctx, func(tx *Tx) error {
		require.NoError(t, tx.Venues.Create(ctx, &model.Venue{Name: "Ghost Venue"}))
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	require.NoError(t, repos.InTx(ctx, func(tx *Tx) error {
		n, err := tx.Venues.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		return nil
	}))
}

func TestInTx_RollsBackOnPanic(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = repos.InTx(ctx, func(tx *Tx) error {
			require.NoError(t, tx.Artists.Create(ctx, &model.Artist{Name: "Panic Band"}))
			panic("boom")
		})
	})

	require.NoError(t, repos.InTx(ctx, func(tx *Tx) error {
		n, err := tx.Artists.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		return nil
	}))
}

func TestTx_RollbackIsIdempotent(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	tx, err := repos.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, tx.Rollback())
}

func TestArtistRepository_CRUD(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	a := createArtist(t, repos, model.Artist{
		Name:         "Guns N Petals",
		City:         "San Francisco",
		State:        "CA",
		Phone:        "326-123-5000",
		Genres:       "Rock n Roll",
		SeekingVenue: true,
	})
	createArtist(t, repos, model.Artist{Name: "Matt Quevedo", Genres: "Jazz"})

	require.NoError(t, repos.InTx(ctx, func(tx *Tx) error {
		got, err := tx.Artists.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a, *got)

		found, err := tx.Artists.Search(ctx, "petals")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, a.ID, found[0].ID)

		all, err := tx.Artists.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
		return nil
	}))

	a.Genres = "Rock n Roll,Punk"
	require.NoError(t, repos.InTx(ctx, func(tx *Tx) error {
		return tx.Artists.Update(ctx, &a)
	}))
	require.NoError(t, repos.InTx(ctx, func(tx *Tx) error {
		return tx.Artists.Delete(ctx, a.ID)
	}))

	err := repos.InTx(ctx, func(tx *Tx) error {
		_, err := tx.Artists.GetByID(ctx, a.ID)
		return err
	})
	assert.ErrorIs(t, err, &errs.Error{Kind: errs.KindNotFound, Entity: model.EntityArtist})
}

func TestShowRepository_ListsAndCascade(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	venue := createVenue(t, repos, model.Venue{Name: "The Musical Hop"})
	other := createVenue(t, repos, model.Venue{Name: "Park Square"})
	artist := createArtist(t, repos, model.Artist{Name: "Guns N Petals"})

	late := time.Date(2035, 4, 8, 20, 0, 0, 0, time.UTC)
	early := time.Date(2019, 5, 21, 21, 30, 0, 0, time.FixedZone("PDT", -7*60*60))

	s1 := createShow(t, repos, model.Show{VenueID: venue.ID, ArtistID: artist.ID, StartTime: late})
	s2 := createShow(t, repos, model.Show{VenueID: venue.ID, ArtistID: artist.ID, StartTime: early})
	s3 := createShow(t, repos, model.Show{VenueID: other.ID, ArtistID: artist.ID, StartTime: late})

	require.NoError(t, repos.InTx(ctx, func(tx *Tx) error {
		byVenue, err := tx.Shows.ListByVenue(ctx, venue.ID)
		require.NoError(t, err)
		require.Len(t, byVenue, 2)
		assert.Equal(t, s2.ID, byVenue[0].ID)
		assert.Equal(t, s1.ID, byVenue[1].ID)
		assert.True(t, early.Equal(byVenue[0].StartTime))
		assert.Equal(t, time.UTC, byVenue[0].StartTime.Location())

		byArtist, err := tx.Shows.ListByArtist(ctx, artist.ID)
		require.NoError(t, err)
		assert.Len(t, byArtist, 3)

		got, err := tx.Shows.GetByID(ctx, s3.ID)
		require.NoError(t, err)
		assert.Equal(t, s3, *got)
		return nil
	}))

	require.NoError(t, repos.InTx(ctx, func(tx *Tx) error {
		return tx.Venues.Delete(ctx, venue.ID)
	}))

	require.NoError(t, repos.InTx(ctx, func(tx *Tx) error {
		shows, err := tx.Shows.List(ctx)
		require.NoError(t, err)
		require.Len(t, shows, 1)
		assert.Equal(t, s3.ID, shows[0].ID)
		return nil
	}))
}

func TestShowRepository_MissingReference(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	artist := createArtist(t, repos, model.Artist{Name: "Guns N Petals"})

	err := repos.InTx(ctx, func(tx *Tx) error {
		return tx.Shows.Create(ctx, &model.Show{VenueID: 404, ArtistID: artist.ID, StartTime: time.Now()})
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrReferential)

	require.NoError(t, repos.InTx(ctx, func(tx *Tx) error {
		n, err := tx.Shows.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		return nil
	}))
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%hop%", containsPattern("hop"))
	assert.Equal(t, "%ärger%", containsPattern("ÄRGER"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, "%%", containsPattern(""))
}
