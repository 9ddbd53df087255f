package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"serfai/internal/app/agent"
	"serfai/internal/app/host"
	"serfai/internal/app/journal"
	"serfai/internal/app/ports"
	"serfai/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// sessionService is the part of host.Session the API needs.
type sessionService interface {
	RunID() string
	CurrentTick() uint32
	Players() []host.PlayerView
	Attach(player int, kind agent.Kind, opts agent.Options) (agent.Agent, error)
	Detach(player int) bool
	State(player int) (world.GameState, error)
}

var _ sessionService = (*host.Session)(nil)

type Handler struct {
	Session   sessionService
	JournalUC journal.UseCase
	KPI       kpiSnapshotProvider
	// AgentDefaults seeds agents attached through the API.
	AgentDefaults agent.Options
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	players := s.Group("/api/ai/players")
	players.GET("", h.listPlayers)
	players.GET("/:index/journal", h.journal)
	players.POST("/:index/attach", h.attach)
	players.POST("/:index/detach", h.detach)

	s.GET("/api/game/state", h.gameState)
	s.GET("/ops/kpi", h.kpi)
}

var ErrInvalidPlayerParam = errors.New("invalid player index")

type attachRequest struct {
	Kind        string `json:"kind"`
	Difficulty  *int   `json:"difficulty,omitempty"`
	Personality string `json:"personality,omitempty"`
}

type playersResponse struct {
	RunID   string            `json:"run_id"`
	Tick    uint32            `json:"tick"`
	Players []host.PlayerView `json:"players"`
}

type journalEntryView struct {
	ID         string  `json:"id"`
	Player     int     `json:"player"`
	Tick       uint32  `json:"tick"`
	ActionType string  `json:"action_type"`
	Action     string  `json:"action"`
	Corrected  bool    `json:"corrected"`
	Success    bool    `json:"success"`
	ErrorKind  string  `json:"error_kind"`
	Message    string  `json:"message"`
	Reward     float64 `json:"reward"`
	DurationMs float64 `json:"duration_ms"`
	OccurredAt int64   `json:"occurred_at"`
}

type journalResponse struct {
	RunID   string             `json:"run_id"`
	Player  int                `json:"player"`
	Entries []journalEntryView `json:"entries"`
	Summary journal.Summary    `json:"summary"`
}

func (h Handler) listPlayers(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, playersResponse{
		RunID:   h.Session.RunID(),
		Tick:    h.Session.CurrentTick(),
		Players: h.Session.Players(),
	})
}

func (h Handler) journal(c context.Context, ctx *app.RequestContext) {
	player, err := playerParam(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	fromTick, _ := strconv.ParseUint(string(ctx.Query("from_tick")), 10, 32)
	toTick, _ := strconv.ParseUint(string(ctx.Query("to_tick")), 10, 32)

	runID := h.Session.RunID()
	resp, err := h.JournalUC.Execute(c, journal.Request{
		RunID:    runID,
		Player:   player,
		Limit:    limit,
		FromTick: uint32(fromTick),
		ToTick:   uint32(toTick),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	out := journalResponse{RunID: runID, Player: player, Entries: make([]journalEntryView, 0, len(resp.Entries)), Summary: resp.Summary}
	for _, e := range resp.Entries {
		out.Entries = append(out.Entries, toEntryView(e))
	}
	ctx.JSON(consts.StatusOK, out)
}

func (h Handler) attach(_ context.Context, ctx *app.RequestContext) {
	player, err := playerParam(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body attachRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if strings.TrimSpace(body.Kind) == "" {
		body.Kind = string(agent.KindScripted)
	}
	kind, err := agent.ParseKind(body.Kind)
	if err != nil {
		writeError(ctx, err)
		return
	}

	opts := h.AgentDefaults
	if opts.Policy == (agent.PendingPolicy{}) {
		opts.Policy = agent.DefaultPendingPolicy()
	}
	if body.Difficulty != nil {
		opts.Difficulty = *body.Difficulty
	}
	if body.Personality != "" {
		p, err := agent.ParsePersonality(body.Personality)
		if err != nil {
			writeError(ctx, err)
			return
		}
		opts.Personality = p
	}

	if _, err := h.Session.Attach(player, kind, opts); err != nil {
		writeError(ctx, err)
		return
	}
	for _, v := range h.Session.Players() {
		if v.Index == player {
			ctx.JSON(consts.StatusCreated, v)
			return
		}
	}
	writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
}

func (h Handler) detach(_ context.Context, ctx *app.RequestContext) {
	player, err := playerParam(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if !h.Session.Detach(player) {
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", "no agent bound to player")
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"player": player, "detached": true})
}

func (h Handler) gameState(_ context.Context, ctx *app.RequestContext) {
	player := 0
	if raw := strings.TrimSpace(string(ctx.Query("player"))); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, ErrInvalidPlayerParam)
			return
		}
		player = n
	}
	state, err := h.Session.State(player)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, state)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func playerParam(ctx *app.RequestContext) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(ctx.Param("index")))
	if err != nil || n < 0 {
		return 0, ErrInvalidPlayerParam
	}
	return n, nil
}

func toEntryView(e ports.JournalEntry) journalEntryView {
	return journalEntryView{
		ID:         e.ID,
		Player:     e.Player,
		Tick:       e.Tick,
		ActionType: e.ActionType,
		Action:     e.Action,
		Corrected:  e.Corrected,
		Success:    e.Success,
		ErrorKind:  e.ErrorKind,
		Message:    e.Message,
		Reward:     e.Reward,
		DurationMs: float64(e.Duration) / float64(time.Millisecond),
		OccurredAt: e.OccurredAt.Unix(),
	}
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrInvalidPlayerParam),
		errors.Is(err, host.ErrInvalidPlayer):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_player", err.Error())
	case errors.Is(err, agent.ErrUnknownAgentKind):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_agent_kind", err.Error())
	case errors.Is(err, agent.ErrUnknownPersonality):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_personality", err.Error())
	case errors.Is(err, agent.ErrUnsupportedAgentKind):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "unsupported_agent_kind", err.Error())
	case errors.Is(err, journal.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, host.ErrGameEnded):
		writeErrorBody(ctx, consts.StatusConflict, "game_ended", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
