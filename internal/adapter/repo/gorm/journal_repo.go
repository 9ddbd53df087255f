package gormrepo

import (
	"context"
	"time"

	"serfai/internal/adapter/repo/gorm/model"
	"serfai/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	_ ports.JournalRepository = JournalRepo{}
	_ ports.TxManager         = TxManager{}
)

type JournalRepo struct {
	db *gorm.DB
}

func NewJournalRepo(db *gorm.DB) JournalRepo {
	return JournalRepo{db: db}
}

func (r JournalRepo) Append(ctx context.Context, entries []ports.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]model.AiJournalEntry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, toJournalRow(e))
	}
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&rows).Error
}

func (r JournalRepo) ListByPlayer(ctx context.Context, runID string, player int, window ports.TickWindow, limit int) ([]ports.JournalEntry, error) {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)
	rows := []model.AiJournalEntry{}
	query := db.Where("run_id = ? AND player = ? AND tick >= ?", runID, player, int64(window.From))
	if window.To > 0 {
		query = query.Where("tick <= ?", int64(window.To))
	}
	query = query.
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "tick"}, Desc: true},
				{Column: clause.Column{Name: "occurred_at"}, Desc: true},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		if window.Open() {
			return nil, ports.ErrNotFound
		}
		var n int64
		if err := db.Model(&model.AiJournalEntry{}).Where("run_id = ? AND player = ?", runID, player).Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ports.ErrNotFound
		}
		return []ports.JournalEntry{}, nil
	}

	out := make([]ports.JournalEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromJournalRow(row))
	}
	return out, nil
}

func toJournalRow(e ports.JournalEntry) model.AiJournalEntry {
	occurred := e.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	return model.AiJournalEntry{
		ID:         e.ID,
		RunID:      e.RunID,
		Player:     int32(e.Player),
		Tick:       int64(e.Tick),
		ActionType: e.ActionType,
		Action:     e.Action,
		Corrected:  e.Corrected,
		Success:    e.Success,
		ErrorKind:  e.ErrorKind,
		Message:    e.Message,
		Reward:     e.Reward,
		DurationUs: e.Duration.Microseconds(),
		OccurredAt: occurred.UTC(),
	}
}

func fromJournalRow(row model.AiJournalEntry) ports.JournalEntry {
	return ports.JournalEntry{
		ID:         row.ID,
		RunID:      row.RunID,
		Player:     int(row.Player),
		Tick:       uint32(row.Tick),
		ActionType: row.ActionType,
		Action:     row.Action,
		Corrected:  row.Corrected,
		Success:    row.Success,
		ErrorKind:  row.ErrorKind,
		Message:    row.Message,
		Reward:     row.Reward,
		Duration:   time.Duration(row.DurationUs) * time.Microsecond,
		OccurredAt: row.OccurredAt,
	}
}
