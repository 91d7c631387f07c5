package counter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaapghar/jaapghar-backend/internal/domain"
)

func TestResetDailyCount(t *testing.T) {
	rig := newTestRig(t)

	_, err := rig.svc.Load(context.Background(), "sevak1")
	require.NoError(t, err)
	rig.svc.Wait()
	for i := 0; i < 3; i++ {
		_, err = rig.svc.IncrementByClick(context.Background(), "sevak1")
		require.NoError(t, err)
	}
	_, err = rig.svc.AddManual(context.Background(), "sevak1", 7)
	require.NoError(t, err)
	rig.svc.Wait()

	snap, err := rig.svc.ResetDailyCount(context.Background(), "sevak1")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), snap.DailyCount)
	assert.Equal(t, uint64(0), snap.TotalJaap, "today's 10 jaaps leave the lifetime total")
	assert.Empty(t, snap.TodayLogs)

	e, ok := rig.entries.get("sevak1", testToday)
	require.True(t, ok)
	assert.Equal(t, uint64(0), e.TotalCount)
	p, _ := rig.profiles.get("sevak1")
	assert.Equal(t, uint64(0), p.TotalJaap)
	logs, err := rig.journal.ListForDay(context.Background(), "sevak1", testToday)
	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.Empty(t, rig.mirror.Logs("sevak1", testToday))
}

func TestResetDailyCount_NeverUnderflowsTotal(t *testing.T) {
	rig := newTestRig(t)

	// Mirror carries today's count but a lifetime total smaller than it,
	// as happens after a partial wipe of the remote store.
	require.NoError(t, rig.mirror.SetProfile(domain.UserProfile{
		ID: "sevak1", DisplayName: "Sevak 1", TotalJaap: 3, DailyTarget: 108,
	}))
	require.NoError(t, rig.mirror.SetDailyEntry(domain.DailyEntry{
		ID: "sevak1_" + testToday, UserID: "sevak1", Date: testToday,
		ClickCount: 8, TotalCount: 8, Timestamp: 1,
	}))

	snap, err := rig.svc.ResetDailyCount(context.Background(), "sevak1")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), snap.TotalJaap, "total clamps at zero instead of wrapping")
}

func TestResetDailyCount_ClearsRemoteOnlyJaaps(t *testing.T) {
	rig := newTestRig(t)

	// Another device pushed today's jaaps straight to the remote store, so
	// the mirror has no record of them.
	e := domain.NewDailyEntry("sevak1", testToday, testClock)
	e.ClickCount, e.TotalCount = 5, 5
	require.NoError(t, rig.entries.Create(context.Background(), e))
	p := domain.NewUserProfile("sevak1", "Sevak 1")
	p.TotalJaap = 5
	require.NoError(t, rig.profiles.Create(context.Background(), p))

	snap, err := rig.svc.ResetDailyCount(context.Background(), "sevak1")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), snap.DailyCount)

	got, ok := rig.profiles.get("sevak1")
	require.True(t, ok)
	assert.Equal(t, uint64(0), got.TotalJaap, "remote-only jaaps come off the lifetime total too")
	re, ok := rig.entries.get("sevak1", testToday)
	require.True(t, ok)
	assert.Equal(t, uint64(0), re.TotalCount)
}

func TestResetDailyCount_RemoteDownFails(t *testing.T) {
	rig := newTestRig(t)

	_, err := rig.svc.IncrementByClick(context.Background(), "sevak1")
	require.NoError(t, err)
	rig.svc.Wait()
	rig.remote.setFail(true)

	_, err = rig.svc.ResetDailyCount(context.Background(), "sevak1")
	require.Error(t, err, "a mirror-only reset would be undone by the next merge")

	e, ok := rig.mirror.DailyEntry("sevak1", testToday)
	require.True(t, ok)
	assert.Equal(t, uint64(1), e.TotalCount, "mirror keeps the count when the reset fails")
}

func TestResetAllData_RequiresToken(t *testing.T) {
	rig := newTestRig(t)

	_, err := rig.svc.ResetAllData(context.Background(), "sevak1", "reset")
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = rig.svc.ResetAllData(context.Background(), "sevak1", "")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestResetAllData_WipesAndReseeds(t *testing.T) {
	rig := newTestRig(t)

	_, err := rig.svc.Load(context.Background(), "sevak1")
	require.NoError(t, err)
	rig.svc.Wait()
	_, err = rig.svc.AddManual(context.Background(), "sevak1", 108)
	require.NoError(t, err)
	rig.svc.Wait()

	snap, err := rig.svc.ResetAllData(context.Background(), "sevak1", "RESET")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), snap.TotalJaap)
	assert.Equal(t, uint64(0), snap.DailyCount)
	assert.Equal(t, uint64(0), snap.CurrentStreak)
	assert.Equal(t, domain.DefaultDailyTarget, snap.DailyTarget)

	p, ok := rig.profiles.get("sevak1")
	require.True(t, ok, "a fresh profile is recreated after the wipe")
	assert.Equal(t, uint64(0), p.TotalJaap)
	_, ok = rig.entries.get("sevak1", testToday)
	assert.False(t, ok)
	_, ok = rig.mirror.DailyEntry("sevak1", testToday)
	assert.False(t, ok)

	got, err := rig.svc.GetHistory(context.Background(), "sevak1", domain.FilterAll)
	require.NoError(t, err)
	assert.Empty(t, got)
}
