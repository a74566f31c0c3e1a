package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindcoach/internal/repository"
	"mindcoach/internal/state"
)

func TestStateServiceRegisterAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userID, err := env.states.Register(ctx)
	require.NoError(t, err)
	assert.Len(t, userID, 36)

	got, err := env.states.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, state.Initial(), got)

	ids, err := env.states.UserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{userID}, ids)
}

func TestStateServiceUnknownUserGetsInitialState(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.states.Get(context.Background(), "never-registered")
	require.NoError(t, err)
	assert.True(t, got.NotificationsEnabled)
	assert.False(t, got.OnboardingComplete)
}

func TestStateServiceApplyPersistsAndPublishes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, err := env.states.Register(ctx)
	require.NoError(t, err)

	next, err := env.states.Apply(ctx, userID, state.OnboardingCompleted{Persona: "career", Goals: []string{"Build confidence"}})
	require.NoError(t, err)
	assert.Equal(t, "career", next.SelectedPersona)

	// bypass the cache to check the stored record
	env.states.Purge()
	stored, err := env.states.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "career", stored.SelectedPersona)
	assert.Equal(t, []string{"Build confidence"}, stored.SelectedGoals)

	assert.Equal(t, []string{"state.onboarding.completed"}, env.publisher.types())
}

func TestStateServiceConcurrentAppendsAreSerialised(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, err := env.states.Register(ctx)
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.states.Apply(ctx, userID, state.CoachFeedbackSet{MessageID: string(rune('a' + i)), Positive: true})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	env.states.Purge()
	got, err := env.states.Get(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, got.CoachSatisfaction, n)
}

func TestStateServiceExport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, err := env.states.Register(ctx)
	require.NoError(t, err)

	exp, err := env.states.Export(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, state.SchemaVersion, exp.Version)
	assert.Equal(t, env.now, exp.ExportedAt)
}

func TestStateServiceReset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, err := env.states.Register(ctx)
	require.NoError(t, err)

	_, err = env.states.Apply(ctx, userID, state.OnboardingCompleted{Persona: "leaders"})
	require.NoError(t, err)

	got, err := env.states.Apply(ctx, userID, state.Reset{})
	require.NoError(t, err)
	assert.Equal(t, state.Initial(), got)
}

func TestStateServiceDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, err := env.states.Register(ctx)
	require.NoError(t, err)
	_, err = env.states.Apply(ctx, userID, state.OnboardingCompleted{Persona: "leaders"})
	require.NoError(t, err)

	deleted, err := env.states.Delete(ctx, userID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// the cached copy goes too
	got, err := env.states.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, state.Initial(), got)

	deleted, err = env.states.Delete(ctx, userID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStateServiceApplyKeepsWritesFromAnotherProcess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, err := env.states.Register(ctx)
	require.NoError(t, err)
	_, err = env.states.Apply(ctx, userID, state.CoachFeedbackSet{MessageID: "m1", Positive: true})
	require.NoError(t, err)

	// coachctl import writes the same table through its own repository
	other := repository.NewStateRepository(env.db)
	restored := state.Initial()
	restored.OnboardingComplete = true
	restored.SelectedPersona = "students"
	require.NoError(t, other.Save(ctx, userID, restored))

	got, err := env.states.Apply(ctx, userID, state.NotificationsToggled{})
	require.NoError(t, err)
	assert.True(t, got.OnboardingComplete)
	assert.Equal(t, "students", got.SelectedPersona)
	assert.False(t, got.NotificationsEnabled)
	assert.Empty(t, got.CoachSatisfaction)

	stored, err := other.Load(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "students", stored.SelectedPersona)

	// coachctl user delete, then the server writes again
	require.NoError(t, other.Delete(ctx, userID))
	got, err = env.states.Apply(ctx, userID, state.NotificationsToggled{})
	require.NoError(t, err)
	assert.False(t, got.OnboardingComplete)
	assert.Empty(t, got.SelectedPersona)
	assert.Empty(t, got.CoachSatisfaction)
}

func TestStateServiceCachedReadsExpire(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	states, err := NewStateService(repository.NewStateRepository(env.db), 16, 20*time.Millisecond, nil, nil, time.UTC)
	require.NoError(t, err)

	userID, err := states.Register(ctx)
	require.NoError(t, err)
	first, err := states.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, first.SelectedPersona)

	updated := state.Initial()
	updated.SelectedPersona = "leaders"
	require.NoError(t, repository.NewStateRepository(env.db).Save(ctx, userID, updated))

	assert.Eventually(t, func() bool {
		got, err := states.Get(ctx, userID)
		return err == nil && got.SelectedPersona == "leaders"
	}, time.Second, 10*time.Millisecond)
}

func TestNewStateServiceRejectsBadCacheSettings(t *testing.T) {
	repo := repository.NewStateRepository(newTestEnv(t).db)

	_, err := NewStateService(repo, 0, time.Minute, nil, nil, time.UTC)
	assert.Error(t, err)
	_, err = NewStateService(repo, 16, 0, nil, nil, time.UTC)
	assert.Error(t, err)
}

func TestKeyedMutexReleasesEntries(t *testing.T) {
	k := newKeyedMutex()

	unlock := k.Lock("a")
	unlockB := k.Lock("b")
	assert.Len(t, k.locks, 2)

	unlock()
	unlockB()
	assert.Empty(t, k.locks)
}
