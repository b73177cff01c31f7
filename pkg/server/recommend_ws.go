package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	recommendWSWriteWait = 10 * time.Second
	recommendWSPongWait  = 60 * time.Second
	recommendWSPingEvery = (recommendWSPongWait * 9) / 10
)

var recommendWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type recommendWSOutbound struct {
	Type    string   `json:"type"`
	Percent float64  `json:"percent,omitempty"`
	Techs   []string `json:"techs,omitempty"`
	Message string   `json:"message,omitempty"`
}

// handleRecommendWS streams model download progress while a recommendation
// runs. Each inbound {idea} is answered with zero or more progress frames
// and then one result or error frame. Requests on one connection are
// handled one at a time.
func (s *Server) handleRecommendWS(w http.ResponseWriter, r *http.Request) {
	conn, err := recommendWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(recommendWSPongWait)); err != nil {
		s.logger.WithError(err).Warn("recommend ws set read deadline failed")
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(recommendWSPongWait))
	})

	writeCh := make(chan recommendWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(recommendWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(recommendWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(recommendWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		var in recommendRequest
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		// A long model load must not trip the read deadline.
		_ = conn.SetReadDeadline(time.Time{})

		if strings.TrimSpace(in.Idea) == "" {
			pushRecommendWS(ctx, writeCh, recommendWSOutbound{Type: "error", Message: MsgIdeaRequired})
		} else {
			techs, err := s.recommender.Recommend(ctx, in.Idea, func(p float64) {
				pushRecommendWS(ctx, writeCh, recommendWSOutbound{Type: "progress", Percent: p})
			})
			if err != nil {
				s.logger.WithError(err).Warn("Recommendation failed")
				pushRecommendWS(ctx, writeCh, recommendWSOutbound{Type: "error", Message: err.Error()})
			} else {
				pushRecommendWS(ctx, writeCh, recommendWSOutbound{Type: "result", Techs: techs})
			}
		}

		_ = conn.SetReadDeadline(time.Now().Add(recommendWSPongWait))
	}
}

func pushRecommendWS(ctx context.Context, ch chan<- recommendWSOutbound, out recommendWSOutbound) {
	select {
	case ch <- out:
	case <-ctx.Done():
	}
}
