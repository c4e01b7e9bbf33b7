package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
)

const sendBuffer = 32

type WSHandler struct {
	service  *app.QuizService
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Answer *int `json:"answer"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type sessionPayload struct {
	SessionID        string `json:"sessionId"`
	PoolSize         int    `json:"poolSize"`
	StartupHighScore int    `json:"startupHighScore"`
}

// questionPayload never carries correctness flags.
type questionPayload struct {
	Index        int      `json:"index"`
	Position     int      `json:"position"`
	Total        int      `json:"total"`
	Prompt       string   `json:"prompt"`
	Answers      []string `json:"answers"`
	Mode         string   `json:"mode"`
	UseTimer     bool     `json:"useTimer"`
	TimerSeconds int      `json:"timerSeconds"`
	ScoreValue   int      `json:"scoreValue"`
}

type selectionPayload struct {
	Selection []int `json:"selection"`
}

type scorePayload struct {
	Score int `json:"score"`
}

type timerPayload struct {
	Remaining int `json:"remaining"`
}

type resolutionPayload struct {
	Type          string `json:"type"`
	QuestionIndex int    `json:"questionIndex"`
	Correct       bool   `json:"correct"`
	Forced        bool   `json:"forced"`
	ScoreDelta    int    `json:"scoreDelta"`
	Score         int    `json:"score"`
	HighScore     int    `json:"highScore"`
	NewHighScore  bool   `json:"newHighScore"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and runs one quiz session per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	packID := r.URL.Query().Get("pack")
	playerID := r.URL.Query().Get("player")
	if packID == "" || playerID == "" {
		http.Error(w, "missing pack or player", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage, sendBuffer)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("ws write error", zap.Error(err))
				// drain until the session is torn down
				for range send {
				}
				return
			}
		}
	}()

	observer := &wsObserver{send: send, closeSignals: closeSignals}
	session, err := h.service.Start(r.Context(), packID, playerID, observer)
	if err != nil {
		send <- errorMessage(err)
		close(send)
		<-writerDone
		return
	}
	logger := h.logger.With(zap.String("session_id", session.ID()), zap.String("player_id", playerID))
	logger.Info("session connected", zap.String("pack_id", packID))

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if msg, ok := h.dispatch(session, inbound); !ok {
			observer.push(msg)
		}
	}

	close(closeSignals)
	h.service.End(context.Background(), session.ID())
	close(send)
	<-writerDone
	logger.Info("session disconnected")
}

// dispatch applies one client command. It returns an error message and false when the command fails.
func (h *WSHandler) dispatch(session *app.Session, inbound inboundMessage) (outboundMessage, bool) {
	switch inbound.Type {
	case "select":
		var payload selectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Answer == nil {
			return errorMessage(errors.New("invalid select payload")), false
		}
		if err := session.Select(*payload.Answer); err != nil {
			return errorMessage(err), false
		}
	case "submit":
		session.Submit()
	case "restart":
		if err := session.Restart(); err != nil {
			return errorMessage(err), false
		}
	default:
		return errorMessage(errors.New("unsupported message type")), false
	}
	return outboundMessage{}, true
}

func errorMessage(err error) outboundMessage {
	return outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}
}

// wsObserver turns session notifications into outbound messages. Sends give up
// once the connection starts closing.
type wsObserver struct {
	send         chan<- outboundMessage
	closeSignals <-chan struct{}
}

func (o *wsObserver) push(msg outboundMessage) {
	select {
	case o.send <- msg:
	case <-o.closeSignals:
	}
}

func (o *wsObserver) OnSessionStarted(ev domain.SessionStarted) {
	o.push(outboundMessage{Type: "session", Payload: sessionPayload{
		SessionID:        ev.SessionID,
		PoolSize:         ev.PoolSize,
		StartupHighScore: ev.StartupHighScore,
	}})
}

func (o *wsObserver) OnQuestionDisplayed(ev domain.QuestionDisplayed) {
	answers := make([]string, len(ev.Question.Answers))
	for i, a := range ev.Question.Answers {
		answers[i] = a.Text
	}
	o.push(outboundMessage{Type: "question", Payload: questionPayload{
		Index:        ev.Index,
		Position:     ev.Position,
		Total:        ev.Total,
		Prompt:       ev.Question.Prompt,
		Answers:      answers,
		Mode:         ev.Question.SelectionMode.String(),
		UseTimer:     ev.Question.UseTimer,
		TimerSeconds: ev.Question.TimerSeconds,
		ScoreValue:   ev.Question.ScoreValue,
	}})
}

func (o *wsObserver) OnSelectionChanged(selection []int) {
	if selection == nil {
		selection = []int{}
	}
	o.push(outboundMessage{Type: "selection", Payload: selectionPayload{Selection: selection}})
}

func (o *wsObserver) OnTimerTick(remaining int) {
	o.push(outboundMessage{Type: "timer", Payload: timerPayload{Remaining: remaining}})
}

func (o *wsObserver) OnScoreChanged(total int) {
	o.push(outboundMessage{Type: "score", Payload: scorePayload{Score: total}})
}

func (o *wsObserver) OnResolution(res domain.Resolution) {
	o.push(outboundMessage{Type: "resolution", Payload: resolutionPayload{
		Type:          res.Type.String(),
		QuestionIndex: res.QuestionIndex,
		Correct:       res.Correct,
		Forced:        res.Forced,
		ScoreDelta:    res.ScoreDelta,
		Score:         res.Score,
		HighScore:     res.HighScore,
		NewHighScore:  res.NewHighScore,
	}})
}
