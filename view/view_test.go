package view

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestView_FixedShouldDropOutOfRangeWrites(t *testing.T) {
	t.Parallel()
	v := NewFixed(2)
	v.SetPanelHeader(0, "Bounty ID: 0", "1", "erd1a")
	v.SetPanelHeader(5, "Bounty ID: 5", "1", "erd1b")
	v.SetPanelDescription(-1, "nothing")
	v.Resize(10)

	snap := v.Snapshot()
	require.Len(t, snap.Panels, 2)
	require.Equal(t, Panel{Title: "Bounty ID: 0", Value: "1", Owner: "erd1a"}, snap.Panels[0])
	require.Equal(t, uint64(1), snap.Revision)
}

func TestView_ResizeShouldKeepExistingRows(t *testing.T) {
	t.Parallel()
	v := New()
	v.Resize(3)
	v.SetPanelDescription(1, "haiku")
	v.Resize(2)
	require.Equal(t, 2, v.Rows())
	v.Resize(4)

	snap := v.Snapshot()
	require.Len(t, snap.Panels, 4)
	require.Equal(t, "haiku", snap.Panels[1].Description)
	require.Equal(t, Panel{}, snap.Panels[3])
}

func TestView_SnapshotShouldBeACopy(t *testing.T) {
	t.Parallel()
	v := NewFixed(1)
	v.SetAccount("erd1me")
	v.SetMarketBalance("5")
	snap := v.Snapshot()
	snap.Panels[0].Title = "changed"

	again := v.Snapshot()
	require.Equal(t, "", again.Panels[0].Title)
	require.Equal(t, "erd1me", again.Account)
	require.Equal(t, "5", again.MarketBalance)
}

func TestView_ConcurrentWritersShouldNotGarbleFields(t *testing.T) {
	t.Parallel()
	v := NewFixed(4)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 4; i++ {
				title := fmt.Sprintf("writer-%d", w)
				v.SetPanelHeader(i, title, title, title)
				v.SetPanelDescription(i, title)
			}
		}(w)
	}
	wg.Wait()

	for _, panel := range v.Snapshot().Panels {
		require.Equal(t, panel.Title, panel.Value)
		require.Equal(t, panel.Title, panel.Owner)
		require.Regexp(t, `^writer-\d$`, panel.Description)
	}
}
