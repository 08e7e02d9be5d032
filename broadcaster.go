package pitchtrack

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/agnivade/pitchtrack/observe"
)

const (
	broadcastBuffer    = 64
	subscriptionBuffer = 16
)

// ResultMessage is the JSON form of a result sent to subscribers.
type ResultMessage struct {
	PitchHz  float64 `json:"pitch_hz"`
	Note     string  `json:"note"`
	Cents    float64 `json:"cents"`
	InTarget bool    `json:"in_target"`
	// Tick is the cents meter position 0..8, absent when cents is not
	// finite.
	Tick   *int      `json:"tick,omitempty"`
	InTune bool      `json:"in_tune"`
	At     time.Time `json:"at"`
}

// Subscription receives results from a Broadcaster. C is closed on
// Unsubscribe or when the Broadcaster closes.
type Subscription struct {
	C <-chan ResultMessage

	ch        chan ResultMessage
	closeOnce sync.Once
}

func (s *Subscription) close() {
	s.closeOnce.Do(func() { close(s.ch) })
}

// BroadcasterOption configures a Broadcaster.
type BroadcasterOption func(*Broadcaster)

// WithTuning sets the targets used for the in_target field. The default is
// standard tuning.
func WithTuning(t Tuning) BroadcasterOption {
	return func(b *Broadcaster) { b.tuning = t }
}

// WithBroadcastMetrics sets the metric instruments.
func WithBroadcastMetrics(m *observe.Metrics) BroadcasterOption {
	return func(b *Broadcaster) { b.metrics = m }
}

// Broadcaster fans engine results out to any number of subscribers. Publish
// never blocks: results are dropped when the input queue or a subscriber's
// queue is full.
type Broadcaster struct {
	tuning  Tuning
	log     *slog.Logger
	metrics *observe.Metrics
	now     func() time.Time

	input chan TunerResult

	mu   sync.Mutex
	subs map[*Subscription]struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBroadcaster starts a Broadcaster. Call Close to stop it.
func NewBroadcaster(logger *slog.Logger, opts ...BroadcasterOption) *Broadcaster {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Broadcaster{
		tuning: StandardTuning(),
		log:    logger,
		now:    time.Now,
		input:  make(chan TunerResult, broadcastBuffer),
		subs:   make(map[*Subscription]struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = slog.Default()
	}
	if b.metrics == nil {
		b.metrics = observe.Discard()
	}

	b.wg.Add(1)
	go b.distributor()
	return b
}

// Publish queues res for every subscriber. It is meant to be passed to
// OnResult.
func (b *Broadcaster) Publish(res TunerResult) {
	select {
	case <-b.ctx.Done():
		return
	default:
	}

	select {
	case b.input <- res:
	default:
		b.metrics.Dropped.Add(b.ctx, 1)
		b.log.Debug("broadcast queue full, dropping result", "note", res.NoteName)
	}
}

// Subscribe registers a new subscriber. On a closed Broadcaster the
// returned subscription is already closed.
func (b *Broadcaster) Subscribe() *Subscription {
	ch := make(chan ResultMessage, subscriptionBuffer)
	sub := &Subscription{C: ch, ch: ch}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctx.Err() != nil {
		sub.close()
		return sub
	}
	b.subs[sub] = struct{}{}
	b.metrics.Subscribers.Add(b.ctx, 1)
	return sub
}

// Unsubscribe removes sub and closes its channel.
func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	b.metrics.Subscribers.Add(context.Background(), -1)
	sub.close()
}

// Subscribers reports the number of live subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close stops distribution and closes every subscription.
func (b *Broadcaster) Close() error {
	b.cancel()
	b.wg.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		delete(b.subs, sub)
		b.metrics.Subscribers.Add(context.Background(), -1)
		sub.close()
	}
	b.log.Debug("broadcaster closed")
	return nil
}

func (b *Broadcaster) distributor() {
	defer b.wg.Done()

	for {
		select {
		case res := <-b.input:
			b.fanOut(b.message(res))
		case <-b.ctx.Done():
			return
		}
	}
}

func (b *Broadcaster) fanOut(msg ResultMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub.ch <- msg:
		default:
			b.metrics.Dropped.Add(b.ctx, 1)
		}
	}
}

func (b *Broadcaster) message(res TunerResult) ResultMessage {
	msg := ResultMessage{
		PitchHz:  res.PitchHz,
		Note:     res.NoteName,
		Cents:    res.CentsOff,
		InTarget: b.tuning.Contains(res.NoteName),
		At:       b.now(),
	}
	if ind, ok := CentsIndicator(res.CentsOff); ok {
		tick := ind.Tick
		msg.Tick = &tick
		msg.InTune = ind.InTune
	}
	return msg
}
