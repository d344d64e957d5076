package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

type frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type ack struct {
	UserID    uint64 `json:"userId"`
	ChannelID uint64 `json:"channelId"`
}

type message struct {
	OwnerID   uint64 `json:"ownerId"`
	ChannelID uint64 `json:"channelId"`
	SentAt    string `json:"sentAt"`
}

// result holds the round trips of one client's own messages. lost counts
// messages that never came back before the deadline.
type result struct {
	roundTrips []time.Duration
	lost       int
	err        error
}

func main() {
	url := flag.String("url", "ws://localhost:8080/chat", "chat endpoint")
	clients := flag.Int("clients", 100, "number of concurrent connections")
	channels := flag.Int("channels", 20, "number of channels every client joins")
	timeout := flag.Duration("timeout", 30*time.Second, "per-client deadline")
	flag.Parse()

	if *clients <= 0 || *channels <= 0 {
		log.Fatal("clients and channels must be positive")
	}

	var (
		joined  sync.WaitGroup
		done    sync.WaitGroup
		start   = make(chan struct{})
		results = make(chan result, *clients)
	)

	joined.Add(*clients)
	done.Add(*clients)

	for i := 0; i < *clients; i++ {
		go func() {
			defer done.Done()
			results <- runClient(*url, *channels, *timeout, &joined, start)
		}()
	}

	// Every client holds all of its acknowledgements before anyone sends, so
	// each message fans out to full channels.
	joined.Wait()
	close(start)

	done.Wait()
	close(results)

	var (
		durations []time.Duration
		lost      int
		failures  int
	)
	for r := range results {
		if r.err != nil {
			failures++
			fmt.Fprintln(os.Stderr, "client failed:", r.err)
		}
		for _, d := range r.roundTrips {
			fmt.Printf("TIME,%d\n", d.Microseconds())
		}
		durations = append(durations, r.roundTrips...)
		lost += r.lost
	}

	printSummary(durations, lost, failures)
}

// runClient joins channels 0..channels-1, waits for one acknowledgement per
// channel, then sends one message to each and times the echo of every one of
// them. joined is released exactly once, even on failure.
func runClient(url string, channels int, timeout time.Duration, joined *sync.WaitGroup, start <-chan struct{}) result {
	var once sync.Once
	markJoined := func() { once.Do(joined.Done) }
	defer markJoined()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return result{err: fmt.Errorf("dial: %w", err)}
	}
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return result{err: err}
	}

	for channelID := 0; channelID < channels; channelID++ {
		if err := send(conn, "joinChannel", map[string]any{
			"channelId": channelID,
			"sentAt":    time.Now().UnixMicro(),
		}); err != nil {
			return result{err: fmt.Errorf("join %d: %w", channelID, err)}
		}
	}

	var me ack
	for acked := 0; acked < channels; acked++ {
		if err := expect(conn, "joinChannelSuccess", &me); err != nil {
			return result{err: fmt.Errorf("join ack %d/%d: %w", acked, channels, err)}
		}
	}
	markJoined()
	<-start

	for channelID := 0; channelID < channels; channelID++ {
		if err := send(conn, "sendMessage", map[string]any{
			"channelId":      channelID,
			"messageContent": "hello world",
			"sentAt":         time.Now().UnixMicro(),
		}); err != nil {
			return result{err: fmt.Errorf("send %d: %w", channelID, err)}
		}
	}

	res := result{roundTrips: make([]time.Duration, 0, channels)}
	for len(res.roundTrips) < channels {
		var msg message
		if err := expect(conn, "message", &msg); err != nil {
			res.lost = channels - len(res.roundTrips)
			if !isTimeout(err) {
				res.err = err
			}
			return res
		}
		if msg.OwnerID != me.UserID {
			continue
		}

		then, err := strconv.ParseInt(msg.SentAt, 10, 64)
		if err != nil {
			res.err = fmt.Errorf("sentAt %q: %w", msg.SentAt, err)
			res.lost = channels - len(res.roundTrips)
			return res
		}
		res.roundTrips = append(res.roundTrips, time.Duration(time.Now().UnixMicro()-then)*time.Microsecond)
	}

	return res
}

func send(conn *websocket.Conn, eventType string, payload map[string]any) error {
	return conn.WriteJSON(map[string]any{"type": eventType, "payload": payload})
}

// expect reads the next frame and decodes its payload into v. An error frame
// from the server fails the client.
func expect(conn *websocket.Conn, eventType string, v any) error {
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		return fmt.Errorf("read: %w", err)
	}

	if f.Type == "error" {
		var description string
		_ = json.Unmarshal(f.Payload, &description)
		return fmt.Errorf("server error: %s", description)
	}
	if f.Type != eventType {
		return fmt.Errorf("expected %q frame, got %q", eventType, f.Type)
	}

	return json.Unmarshal(f.Payload, v)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func printSummary(durations []time.Duration, lost, failures int) {
	if len(durations) == 0 {
		fmt.Printf("no successful round trips, %d lost, %d failed clients\n", lost, failures)
		return
	}

	fmt.Printf("messages=%d lost=%d failed_clients=%d min=%s max=%s avg=%s\n",
		len(durations),
		lost,
		failures,
		lo.Min(durations),
		lo.Max(durations),
		lo.Sum(durations)/time.Duration(len(durations)),
	)
}
