package verify

import (
	"strings"
	"time"

	"delivery-reconciler/core/ledger"
	"delivery-reconciler/core/utils"
)

// Evaluate decides found/not-found for rows already filtered by invoice
// reference. A row matches when its supplier column, trimmed and case-folded,
// equals the target supplier. The first matching row (in the order returned
// by the ledger) becomes MatchedRow; row order never changes the boolean.
func Evaluate(rows []ledger.Row, supplierColumn, targetSupplier string) Result {
	want := strings.TrimSpace(targetSupplier)

	for _, row := range rows {
		val, ok := row[supplierColumn]
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(utils.ToString(val)), want) {
			return Result{
				Found:       true,
				MatchedRow:  row,
				EvaluatedAt: time.Now(),
			}
		}
	}

	return Result{
		Found:       false,
		EvaluatedAt: time.Now(),
	}
}
