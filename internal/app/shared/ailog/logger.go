package ailog

import (
	"fmt"
	"time"

	"serfai/internal/domain/settlement"
	"serfai/internal/domain/world"

	"github.com/sirupsen/logrus"
)

const category = "ai"

// Logger is the AI's logging sink. Everything except errors is written only
// while debug is on. A nil *Logger discards all output.
type Logger struct {
	out   logrus.FieldLogger
	debug bool
}

func New(out logrus.FieldLogger, debug bool) *Logger {
	if out == nil {
		out = logrus.StandardLogger()
	}
	return &Logger{out: out, debug: debug}
}

func (l *Logger) SetDebug(on bool) {
	if l != nil {
		l.debug = on
	}
}

func (l *Logger) Debug() bool { return l != nil && l.debug }

func (l *Logger) entry(player int) *logrus.Entry {
	return l.out.WithFields(logrus.Fields{"category": category, "player": player})
}

func (l *Logger) info(player int, msg string, fields logrus.Fields) {
	if !l.Debug() {
		return
	}
	l.entry(player).WithFields(fields).Info(msg)
}

func (l *Logger) Attach(player int, agentName string) {
	l.info(player, fmt.Sprintf("[AI-ATTACH] Player%d: agent %s attached", player, agentName), logrus.Fields{"agent": agentName})
}

func (l *Logger) Detach(player int) {
	l.info(player, fmt.Sprintf("[AI-ATTACH] Player%d: agent detached", player), nil)
}

func (l *Logger) Validation(player int, a settlement.Action, r settlement.ValidationResult) {
	verdict := "valid"
	if !r.Valid {
		verdict = "invalid"
	}
	fields := logrus.Fields{"action": string(a.Type), "kind": string(r.Kind)}
	if r.HasCorrection() {
		fields["corrected"] = r.Corrected.String()
	}
	l.info(player, fmt.Sprintf("[AI-VALIDATE] Player%d: %s %s: %s", player, a.Describe(), verdict, r.Reason), fields)
}

func (l *Logger) Execution(player int, a settlement.Action, r settlement.ExecutionResult) {
	outcome := "ok"
	if !r.Success {
		outcome = "failed"
	}
	l.info(player, fmt.Sprintf("[AI-EXECUTE] Player%d: %s %s: %s", player, a.Describe(), outcome, r.Message), logrus.Fields{
		"action":   string(a.Type),
		"kind":     string(r.Kind),
		"reward":   r.Reward,
		"duration": r.Duration,
	})
}

// Tracef writes a free-form decision trace under the state prefix.
func (l *Logger) Tracef(player int, format string, args ...any) {
	l.info(player, fmt.Sprintf("[AI-STATE] Player%d: ", player)+fmt.Sprintf(format, args...), nil)
}

func (l *Logger) StateChange(player int, from, to string) {
	l.info(player, fmt.Sprintf("[AI-STATE] Player%d: %s -> %s", player, from, to), logrus.Fields{"from": from, "to": to})
}

// Summary writes the periodic overview of a player's economy.
func (l *Logger) Summary(player int, agentState string, s world.GameState) {
	castle := "none"
	if pos, ok := s.CastlePos(); ok {
		castle = pos.String()
	} else if s.Self.HasCastle {
		castle = "unknown"
	}
	l.info(player, fmt.Sprintf("[AI-STATE] Player%d: tick=%d state=%s castle=%s foresters=%d lumberjacks=%d lumber=%d stone=%d",
		player, s.Tick, agentState, castle,
		s.Self.Count(settlement.BuildingForester), s.Self.Count(settlement.BuildingLumberjack),
		s.Self.Resource(settlement.ResourceLumber), s.Self.Resource(settlement.ResourceStone)),
		logrus.Fields{"tick": s.Tick, "territory": s.Self.TerritorySize})
}

func (l *Logger) Performance(player int, elapsed, budget time.Duration, actions int) {
	l.info(player, fmt.Sprintf("[AI-PERF] Player%d: %d actions in %s (budget %s)", player, actions, elapsed, budget), logrus.Fields{
		"elapsed_ms": float64(elapsed.Microseconds()) / 1000,
		"budget_ms":  float64(budget.Microseconds()) / 1000,
		"actions":    actions,
	})
}

// Error is always written, debug or not.
func (l *Logger) Error(player int, msg string, err error) {
	if l == nil {
		return
	}
	e := l.entry(player)
	if err != nil {
		e = e.WithError(err)
	}
	e.Error(fmt.Sprintf("[AI-ERROR] Player%d: %s", player, msg))
}
