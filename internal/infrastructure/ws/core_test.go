package ws

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/metrics"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	mu         sync.Mutex
	open       int
	deliveries map[string]int
	inbound    map[string]int
}

func (f *fakeRecorder) ConnectionOpened() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open++
}

func (f *fakeRecorder) ConnectionClosed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open--
}

func (f *fakeRecorder) InboundEvent(eventType, result string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inbound == nil {
		f.inbound = map[string]int{}
	}
	f.inbound[eventType+"/"+result]++
}

func (f *fakeRecorder) Delivery(result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deliveries == nil {
		f.deliveries = map[string]int{}
	}
	f.deliveries[result]++
}

func (f *fakeRecorder) delivered(result string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deliveries[result]
}

func (f *fakeRecorder) inboundCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inbound[key]
}

func (f *fakeRecorder) openConnections() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

type coreFixture struct {
	core     *Core
	registry *domain.Registry
	recorder *fakeRecorder
	cancel   context.CancelFunc
}

func startCore(t *testing.T, opts CoreOptions) *coreFixture {
	t.Helper()

	registry := domain.NewRegistry()
	recorder := &fakeRecorder{}
	opts.Registry = registry
	opts.Metrics = recorder

	core := NewCore(opts)
	ctx, cancel := context.WithCancel(context.Background())
	go core.Run(ctx)

	t.Cleanup(func() {
		cancel()
		<-core.Done()
	})

	return &coreFixture{core: core, registry: registry, recorder: recorder, cancel: cancel}
}

func newTestClient(queueSize int) *Client {
	return &Client{
		send:      make(chan *OutboundFrame, queueSize),
		SessionID: uuid.NewString(),
	}
}

func (f *coreFixture) connect(t *testing.T, queueSize int) *Client {
	t.Helper()
	cl := newTestClient(queueSize)
	require.True(t, f.core.Register(cl))
	return cl
}

func (f *coreFixture) submit(t *testing.T, cl *Client, in Inbound) {
	t.Helper()
	require.True(t, f.core.Submit(Event{Client: cl, Inbound: in}))
}

// join submits a join and returns the participant id from the acknowledgement.
func (f *coreFixture) join(t *testing.T, cl *Client, channelID domain.ChannelID) domain.ParticipantID {
	t.Helper()
	f.submit(t, cl, Inbound{Type: JoinChannel, ChannelID: channelID})

	frame := recv(t, cl)
	require.Equal(t, JoinChannelSuccess, frame.Type)
	payload := frame.Payload.(JoinChannelSuccessPayload)
	require.Equal(t, channelID, payload.ChannelID)
	return payload.UserID
}

func recv(t *testing.T, cl *Client) *OutboundFrame {
	t.Helper()
	select {
	case frame, ok := <-cl.send:
		require.True(t, ok, "send queue closed")
		return frame
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

func requireNoFrame(t *testing.T, cl *Client) {
	t.Helper()
	select {
	case frame := <-cl.send:
		t.Fatalf("unexpected frame %+v", frame)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCore_JoinAcknowledges(t *testing.T) {
	req := require.New(t)
	f := startCore(t, CoreOptions{})

	// Given a connected client
	cl := f.connect(t, 8)

	// When it joins channel 7
	pid := f.join(t, cl, 7)

	// Then the registry holds the membership
	channels, err := f.registry.ParticipantChannels(pid)
	req.NoError(err)
	req.Equal([]domain.ChannelID{7}, channels)
	req.Equal(1, f.recorder.openConnections())
	req.Eventually(func() bool {
		return f.recorder.inboundCount(JoinChannel+"/"+metrics.ResultOK) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestCore_SendFansOutToMembers(t *testing.T) {
	req := require.New(t)
	f := startCore(t, CoreOptions{})

	// Given two members of channel 7 and a bystander in channel 8
	alice := f.connect(t, 8)
	bob := f.connect(t, 8)
	carol := f.connect(t, 8)
	alicePID := f.join(t, alice, 7)
	f.join(t, bob, 7)
	f.join(t, carol, 8)

	// When alice sends a message
	f.submit(t, alice, Inbound{Type: SendMessage, ChannelID: 7, Content: "hi", SentAt: "42"})

	// Then both members receive the identical message frame
	want := MessagePayload{ID: 1, OwnerID: alicePID, Content: "hi", ChannelID: 7, SentAt: "42"}
	for _, cl := range []*Client{alice, bob} {
		frame := recv(t, cl)
		req.Equal(MessageEvent, frame.Type)
		req.Equal(want, frame.Payload)
	}
	requireNoFrame(t, carol)
	req.Equal(2, f.recorder.delivered(metrics.DeliveryQueued))
}

func TestCore_ErrorsAreReportedToSender(t *testing.T) {
	tests := []struct {
		name string
		in   Inbound
		want string
	}{
		{name: "send to unknown channel", in: Inbound{Type: SendMessage, ChannelID: 99, Content: "x"}, want: "Channel not found"},
		{name: "leave unknown channel", in: Inbound{Type: LeaveChannel, ChannelID: 99}, want: "Channel not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			f := startCore(t, CoreOptions{})
			cl := f.connect(t, 8)

			f.submit(t, cl, tt.in)

			frame := recv(t, cl)
			req.Equal(NewError(tt.want), frame)
			req.Equal(0, f.registry.ChannelCount())
			req.Eventually(func() bool {
				return f.recorder.inboundCount(tt.in.Type+"/"+metrics.ResultError) == 1
			}, time.Second, 5*time.Millisecond)
		})
	}
}

func TestCore_RejectedFrameKeepsConnection(t *testing.T) {
	req := require.New(t)
	f := startCore(t, CoreOptions{})
	cl := f.connect(t, 8)

	_, decodeErr := DecodeInbound([]byte("garbage"))
	req.True(f.core.Submit(Event{Client: cl, Err: decodeErr}))

	frame := recv(t, cl)
	req.Equal(ErrorEvent, frame.Type)
	req.Contains(frame.Payload, "invalid message format")

	// the connection still works afterwards
	f.join(t, cl, 1)
}

func TestCore_InboundRateLimit(t *testing.T) {
	req := require.New(t)
	f := startCore(t, CoreOptions{InboundLimit: 1, InboundWindow: time.Hour})
	cl := f.connect(t, 8)
	raw := []byte(`{"type":"joinChannel","payload":{"channelId":1}}`)

	first := cl.decode(f.core, raw)
	second := cl.decode(f.core, raw)

	req.NoError(first.Err)
	req.ErrorIs(second.Err, ErrRateLimited)

	req.True(f.core.Submit(second))
	req.Equal(NewError("Rate limit exceeded"), recv(t, cl))
}

func TestCore_DisconnectRemovesParticipant(t *testing.T) {
	req := require.New(t)
	f := startCore(t, CoreOptions{})

	// Given a participant alone in channels 3 and 5
	cl := f.connect(t, 8)
	pid := f.join(t, cl, 3)
	f.join(t, cl, 5)

	// When the connection goes away
	f.core.Unregister(cl)

	// Then its queue is closed and both channels are destroyed
	select {
	case _, ok := <-cl.send:
		req.False(ok)
	case <-time.After(time.Second):
		t.Fatal("send queue not closed")
	}

	_, err := f.registry.ParticipantChannels(pid)
	req.ErrorIs(err, domain.ErrParticipantNotFound)
	req.Equal(0, f.registry.ChannelCount())
	req.Eventually(func() bool { return f.recorder.openConnections() == 0 }, time.Second, 5*time.Millisecond)

	// a late frame from the dead client is ignored
	req.True(f.core.Submit(Event{Client: cl, Inbound: Inbound{Type: JoinChannel, ChannelID: 3}}))
	req.Never(func() bool { return f.registry.ChannelCount() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestCore_FullQueueDropsFrame(t *testing.T) {
	req := require.New(t)
	f := startCore(t, CoreOptions{})

	sender := f.connect(t, 8)
	slow := f.connect(t, 1)
	f.join(t, sender, 7)
	// the unread ack fills the slow queue
	f.submit(t, slow, Inbound{Type: JoinChannel, ChannelID: 7})

	f.submit(t, sender, Inbound{Type: SendMessage, ChannelID: 7, Content: "hi"})

	req.Equal(MessageEvent, recv(t, sender).Type)
	req.Eventually(func() bool {
		return f.recorder.delivered(metrics.DeliveryDropped) == 1
	}, time.Second, 5*time.Millisecond)

	// the slow client still holds only its acknowledgement
	req.Equal(JoinChannelSuccess, recv(t, slow).Type)
	requireNoFrame(t, slow)
}

func TestCore_ShutdownDisconnectsEveryone(t *testing.T) {
	req := require.New(t)
	f := startCore(t, CoreOptions{})
	a := f.connect(t, 8)
	b := f.connect(t, 8)
	f.join(t, a, 1)
	f.join(t, b, 1)

	f.cancel()
	<-f.core.Done()

	for _, cl := range []*Client{a, b} {
		_, ok := <-cl.send
		req.False(ok)
	}
	req.Equal(0, f.registry.ParticipantCount())
	req.Equal(0, f.registry.ChannelCount())
	req.False(f.core.Register(newTestClient(1)))
	req.False(f.core.Submit(Event{Client: a}))
}

func TestCore_DeliverToUnknownRecipient(t *testing.T) {
	core := NewCore(CoreOptions{})
	recorder := &fakeRecorder{}
	core.metrics = recorder

	core.Deliver(42, domain.Message{})

	require.Equal(t, 1, recorder.delivered(metrics.DeliveryOffline))
}
