package ports

import "serfai/internal/domain/settlement"

type ActionMetrics interface {
	RecordSuccess(actionType settlement.ActionType)
	RecordFailure(actionType settlement.ActionType, kind settlement.ErrorKind)
	RecordBudgetExceeded()
}
