package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/quench-lab/superfluid/internal/gpe"
)

// Server drives the simulation at a fixed tick rate and exposes state
// snapshots to websocket clients. The engine itself is single-threaded;
// one mutex serializes step batches against snapshot reads and inbound
// target updates.
type Server struct {
	state        *gpe.State
	log          *log.Logger
	tickRateHz   float64
	stepsPerTick int

	upgrader websocket.Upgrader

	mu sync.Mutex // guards state

	subMu sync.Mutex
	subs  map[chan []byte]struct{}
}

func New(state *gpe.State, tickRateHz float64, stepsPerTick int, logger *log.Logger) *Server {
	return &Server{
		state:        state,
		log:          logger,
		tickRateHz:   tickRateHz,
		stepsPerTick: stepsPerTick,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		subs: make(map[chan []byte]struct{}),
	}
}

// Handler serves the websocket endpoint at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run ticks the simulation until the context is cancelled, broadcasting
// a frame to every subscriber after each step batch.
func (s *Server) Run(ctx context.Context) error {
	interval := time.Duration(float64(time.Second) / s.tickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			frame, err := s.tick()
			if err != nil {
				s.log.Printf("frame encode failed: %v", err)
				continue
			}
			s.broadcast(frame)
		}
	}
}

// tick advances one step batch and snapshots the state under one lock,
// so clients never observe intermediate sub-step state.
func (s *Server) tick() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Step(s.stepsPerTick)
	return json.Marshal(s.frameLocked())
}

func (s *Server) frameLocked() FrameMsg {
	grid := s.state.Grid()
	density := make([]float64, 0, grid.Nx*grid.Ny)
	for _, row := range s.state.Density() {
		density = append(density, row...)
	}
	positions := s.state.TracerPositions()
	tracers := make([]float64, 0, 2*len(positions))
	for _, p := range positions {
		tracers = append(tracers, real(p), imag(p))
	}
	finger := s.state.FingerPosition()
	target := s.state.Target()
	return FrameMsg{
		Type:    TypeFrame,
		Time:    s.state.Time(),
		Density: density,
		Tracers: tracers,
		FingerX: real(finger),
		FingerY: imag(finger),
		TargetX: real(target),
		TargetY: imag(target),
	}
}

func (s *Server) hello() HelloMsg {
	grid := s.state.Grid()
	return HelloMsg{
		Type:            TypeHello,
		ProtocolVersion: ProtocolVersion,
		Nx:              grid.Nx,
		Ny:              grid.Ny,
		Lx:              grid.Lx,
		Ly:              grid.Ly,
		Dt:              s.state.Dt(),
		TickRateHz:      s.tickRateHz,
		StepsPerTick:    s.stepsPerTick,
	}
}

func (s *Server) handleWS(rw http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if err := conn.WriteJSON(s.hello()); err != nil {
		return
	}

	out := make(chan []byte, 8)
	s.subscribe(out)
	defer s.unsubscribe(out)

	// Reader: inbound target steering.
	readErr := make(chan error, 1)
	go func() {
		for {
			var msg TargetMsg
			if err := conn.ReadJSON(&msg); err != nil {
				readErr <- err
				return
			}
			if msg.Type != TypeTarget {
				continue
			}
			s.mu.Lock()
			s.state.SetTarget(msg.X, msg.Y)
			s.mu.Unlock()
		}
	}()

	for {
		select {
		case err := <-readErr:
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Printf("client read: %v", err)
			}
			return
		case frame := <-out:
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		}
	}
}

func (s *Server) subscribe(ch chan []byte) {
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()
}

func (s *Server) unsubscribe(ch chan []byte) {
	s.subMu.Lock()
	delete(s.subs, ch)
	s.subMu.Unlock()
}

// broadcast drops frames for slow subscribers instead of blocking the
// tick loop.
func (s *Server) broadcast(frame []byte) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- frame:
		default:
		}
	}
}
