package mux

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"pokercore/pkg/poker/replay"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

var errNoHandLoaded = errors.New("send a setup and actions before scrubbing")

// replayMessageIn loads a hand when Setup is present, otherwise it asks for Step
type replayMessageIn struct {
	Setup   *replay.Setup   `json:"setup"`
	Actions []replay.Action `json:"actions"`
	Step    *int            `json:"step"`
}

type replayMessageOut struct {
	Steps    int              `json:"steps"`
	Snapshot *replay.Snapshot `json:"snapshot,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// replaySession is a single websocket client scrubbing through one hand at a time
type replaySession struct {
	conn      *websocket.Conn
	send      chan replayMessageOut
	snapshots []replay.Snapshot
	logger    logrus.FieldLogger
}

func (s *replaySession) String() string {
	return s.conn.RemoteAddr().String()
}

// handle returns the reply to a single message
func (s *replaySession) handle(msg replayMessageIn) (replayMessageOut, error) {
	if msg.Setup != nil {
		snapshots, err := replay.Snapshots(*msg.Setup, msg.Actions)
		if err != nil {
			return replayMessageOut{}, err
		}

		s.snapshots = snapshots
		step := -1
		if msg.Step != nil {
			step = *msg.Step
		}

		return s.at(step)
	}

	if s.snapshots == nil {
		return replayMessageOut{}, errNoHandLoaded
	}

	if msg.Step == nil {
		return replayMessageOut{}, fmt.Errorf("%w: missing step", replay.ErrStepOutOfRange)
	}

	return s.at(*msg.Step)
}

// steps is the number of actions in the loaded hand
func (s *replaySession) steps() int {
	if len(s.snapshots) == 0 {
		return 0
	}

	return len(s.snapshots) - 1
}

func (s *replaySession) at(step int) (replayMessageOut, error) {
	steps := s.steps()
	if step < -1 || step >= steps {
		return replayMessageOut{}, fmt.Errorf("%w: %d of %d", replay.ErrStepOutOfRange, step, steps)
	}

	snapshot := s.snapshots[step+1]
	return replayMessageOut{
		Steps:    steps,
		Snapshot: &snapshot,
	}, nil
}

func (m *Mux) getReplayWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		session := &replaySession{
			conn:   conn,
			send:   make(chan replayMessageOut, 16),
			logger: m.logger,
		}

		writeLoopDone := make(chan bool)
		go func() {
			defer close(writeLoopDone)
			m.webSocketWriteLoop(session)
		}()

		m.webSocketReadLoop(session, writeLoopDone)
		close(session.send)
		<-writeLoopDone
	}
}

func (m *Mux) webSocketWriteLoop(session *replaySession) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = session.conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = session.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := session.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case msg, ok := <-session.send:
			if !ok {
				_ = session.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = session.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			_ = session.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := session.conn.WriteJSON(msg); err != nil {
				session.logger.WithError(err).WithField("client", session.String()).Error("could not write message")
				return
			}
		}
	}
}

// webSocketReadLoop answers every message until the client goes away or the write loop stops
func (m *Mux) webSocketReadLoop(session *replaySession, writeLoopDone chan bool) {
	for {
		_, b, err := session.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				session.logger.WithError(err).WithField("client", session.String()).Error("could not read message")
			}

			return
		}

		var out replayMessageOut
		var msg replayMessageIn
		if err := json.Unmarshal(b, &msg); err != nil {
			out = replayMessageOut{Steps: session.steps(), Error: err.Error()}
		} else if out, err = session.handle(msg); err != nil {
			out = replayMessageOut{Steps: session.steps(), Error: err.Error()}
		}

		select {
		case session.send <- out:
		case <-writeLoopDone:
			return
		}
	}
}
