package progress_test

import (
	"github.com/myrjola/dialogtree/internal/progress"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestBus(t *testing.T) {
	t.Run("subscriber receives published events", func(t *testing.T) {
		bus := progress.NewBus()
		go bus.Start()
		t.Cleanup(bus.Stop)

		events := bus.Subscribe(4)
		bus.Publish(progress.Event{Stage: progress.StageRead, Message: "npcs loaded", N: 12})
		bus.Publish(progress.Event{Stage: progress.StageLink, Message: "dialogs linked", N: 3})

		event := <-events
		require.Equal(t, progress.StageRead, event.Stage)
		require.Equal(t, 12, event.N)
		event = <-events
		require.Equal(t, progress.StageLink, event.Stage)
	})

	t.Run("stop closes subscriber channels", func(t *testing.T) {
		bus := progress.NewBus()
		go bus.Start()

		events := bus.Subscribe(1)
		bus.Stop()

		_, ok := <-events
		require.False(t, ok, "channel not closed after stop")
	})

	t.Run("nil bus drops events", func(t *testing.T) {
		var bus *progress.Bus
		require.NotPanics(t, func() {
			bus.Publish(progress.Event{Stage: progress.StageRender})
		})
	})
}
