package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"crossgen/internal/gridstate"
	"crossgen/internal/store"
)

// RedisSink publishes each emission on a Redis pub/sub channel for any
// subscriber. The server's websocket progress hub does not read this
// channel; it is fed in-process by the generate handler's hubSink.
type RedisSink struct {
	st      *store.Store
	channel string
}

// NewRedisSink returns a RedisSink publishing to channel on st.Redis.
func NewRedisSink(st *store.Store, channel string) *RedisSink {
	return &RedisSink{st: st, channel: channel}
}

type progressEvent struct {
	Kind        string   `json:"kind"`
	Signature   string   `json:"signature"`
	FilledCells int      `json:"filled_cells"`
	GridSize    int      `json:"grid_size"`
	Words       []string `json:"words"`
}

func (s *RedisSink) EmitSolvable(g *gridstate.Grid) error  { return s.publish(g, "solvable") }
func (s *RedisSink) EmitCloseCall(g *gridstate.Grid) error { return s.publish(g, "close_call") }

func (s *RedisSink) publish(g *gridstate.Grid, kind string) error {
	words := make([]string, 0, len(g.Placements()))
	for _, p := range g.Placements() {
		words = append(words, p.Word)
	}
	payload, err := json.Marshal(progressEvent{
		Kind:        kind,
		Signature:   g.Signature(),
		FilledCells: g.FilledCells(),
		GridSize:    g.Size(),
		Words:       words,
	})
	if err != nil {
		return fmt.Errorf("sink: encoding progress event: %w", err)
	}
	if err := s.st.Redis.Publish(context.Background(), s.channel, payload).Err(); err != nil {
		return fmt.Errorf("sink: publishing progress event: %w", err)
	}
	return nil
}
