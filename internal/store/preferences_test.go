package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasks/internal/logging"
	"github.com/nhle/tasks/internal/model"
	"github.com/nhle/tasks/internal/store"
	"github.com/nhle/tasks/internal/testutil"
)

func TestPreferences_LoadEmptyStoreYieldsDefault(t *testing.T) {
	prefs := store.NewPreferences(testutil.NewTestStore(t), logging.Discard())

	pref, ok := prefs.Load(context.Background())
	assert.False(t, ok)
	assert.Equal(t, model.ViewPreference{ShowDoneTasks: true}, pref)
}

func TestPreferences_RoundTripAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.db")

	first := store.NewPreferences(testutil.OpenTestStore(t, path), logging.Discard())
	require.NoError(t, first.Save(ctx, model.ViewPreference{ShowDoneTasks: false}))

	second := store.NewPreferences(testutil.OpenTestStore(t, path), logging.Discard())
	pref, ok := second.Load(ctx)
	assert.True(t, ok)
	assert.Equal(t, model.ViewPreference{ShowDoneTasks: false}, pref)
}

func TestPreferences_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	prefs := store.NewPreferences(testutil.NewTestStore(t), logging.Discard())

	require.NoError(t, prefs.Save(ctx, model.ViewPreference{ShowDoneTasks: false}))
	require.NoError(t, prefs.Save(ctx, model.ViewPreference{ShowDoneTasks: true}))

	pref, ok := prefs.Load(ctx)
	assert.True(t, ok)
	assert.True(t, pref.ShowDoneTasks)
}

func TestPreferences_UnparsableValueYieldsDefault(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	prefs := store.NewPreferences(s, logging.Discard())

	for _, raw := range []string{"not json", "{}", `{"showDoneTasks":"yes"}`} {
		require.NoError(t, s.PutSetting(ctx, "taskState", raw))

		pref, ok := prefs.Load(ctx)
		assert.False(t, ok, raw)
		assert.True(t, pref.ShowDoneTasks, raw)
	}
}

func TestPreferences_ResetRestoresDefault(t *testing.T) {
	ctx := context.Background()
	prefs := store.NewPreferences(testutil.NewTestStore(t), logging.Discard())

	require.NoError(t, prefs.Save(ctx, model.ViewPreference{ShowDoneTasks: false}))
	require.NoError(t, prefs.Reset(ctx))
	require.NoError(t, prefs.Reset(ctx))

	pref, ok := prefs.Load(ctx)
	assert.False(t, ok)
	assert.True(t, pref.ShowDoneTasks)
}

func TestSQLiteStore_Settings(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	_, err := s.GetSetting(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.PutSetting(ctx, "k", "v1"))
	require.NoError(t, s.PutSetting(ctx, "k", "v2"))
	got, err := s.GetSetting(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)

	require.NoError(t, s.DeleteSetting(ctx, "k"))
	_, err = s.GetSetting(ctx, "k")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
