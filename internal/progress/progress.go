package progress

// Stage identifies which part of the pipeline emitted an event.
type Stage string

const (
	StageRead     Stage = "read"
	StageMerge    Stage = "merge"
	StageLink     Stage = "link"
	StageMetadata Stage = "metadata"
	StageRender   Stage = "render"
)

// Event is a status update pushed by the pipeline. N carries a stage-specific
// count such as records loaded or cards rendered.
type Event struct {
	Stage   Stage
	Message string
	N       int
}

type subscription struct {
	channel chan Event
}

// Bus decouples the pipeline from whatever is displaying progress. The pipeline
// publishes events and the subscribers receive them on their own channels. The
// pipeline never blocks on a slow subscriber: events that don't fit in a
// subscriber's buffer are dropped, since progress events are advisory.
//
// A nil *Bus is valid and drops all events, which keeps the pipeline callable
// without progress reporting, e.g. from tests.
type Bus struct {
	stopChannel      chan struct{}
	publishChannel   chan Event
	subscribeChannel chan subscription
}

// NewBus creates a new Bus. Call Start in a goroutine to begin distribution and
// Stop to end it.
func NewBus() *Bus {
	return &Bus{
		stopChannel:      make(chan struct{}),
		publishChannel:   make(chan Event),
		subscribeChannel: make(chan subscription),
	}
}

// Start listens for publish and subscribe events. This function blocks until Stop is called,
// so it should be called in a goroutine.
func (b *Bus) Start() {
	var subscribers []chan Event
	for {
		select {
		case <-b.stopChannel:
			for _, c := range subscribers {
				close(c)
			}
			return

		case sub := <-b.subscribeChannel:
			subscribers = append(subscribers, sub.channel)

		case event := <-b.publishChannel:
			for _, c := range subscribers {
				select {
				case c <- event:
				default:
					// Subscriber buffer full, drop the event.
				}
			}
		}
	}
}

// Stop ends distribution and closes all subscriber channels.
func (b *Bus) Stop() {
	close(b.stopChannel)
}

// Subscribe registers a new subscriber with the given buffer size and returns
// its channel. The channel is closed when the bus stops.
func (b *Bus) Subscribe(buffer int) <-chan Event {
	channel := make(chan Event, buffer)
	b.subscribeChannel <- subscription{channel: channel}
	return channel
}

// Publish pushes an event to all subscribers. Publishing on a nil bus is a no-op.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}
	select {
	case b.publishChannel <- event:
	case <-b.stopChannel:
	}
}
