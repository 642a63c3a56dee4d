package models

import (
	"trade-journal/internal/errors"
)

// Validate checks a trade at the ingestion boundary. Analytics code assumes
// these invariants hold and does not re-check them.
func (t Trade) Validate() error {
	if t.ID == "" {
		return errors.NewValidationError("id", t.ID, "trade id is required")
	}
	if t.Date.IsZero() {
		return errors.NewValidationError("date", t.Date, "trade date is required")
	}
	if t.Quantity <= 0 {
		return errors.NewValidationError("quantity", t.Quantity, "quantity must be positive")
	}
	if t.StopLoss <= 0 {
		return errors.NewValidationError("stop_loss", t.StopLoss, "stop-loss price is required")
	}
	if t.Direction != DirectionBuy && t.Direction != DirectionSell {
		return errors.NewValidationError("direction", t.Direction, "direction must be BUY or SELL")
	}

	// The sign of the risk multiple must agree with the sign of PnL. This
	// is normalized when the trade is recorded, never re-derived later.
	if t.PnL > 0 && t.RFactor < 0 {
		return errors.NewValidationError("r_factor", t.RFactor, "negative r-factor on a winning trade")
	}
	if t.PnL < 0 && t.RFactor > 0 {
		return errors.NewValidationError("r_factor", t.RFactor, "positive r-factor on a losing trade")
	}

	if t.EntryTime != "" {
		if _, _, err := ParseClock(t.EntryTime); err != nil {
			return errors.NewValidationError("entry_time", t.EntryTime, err.Error())
		}
	}
	if t.ExitTime != "" {
		if _, _, err := ParseClock(t.ExitTime); err != nil {
			return errors.NewValidationError("exit_time", t.ExitTime, err.Error())
		}
	}
	if t.ExchangeRate < 0 {
		return errors.NewValidationError("exchange_rate", t.ExchangeRate, "exchange rate must not be negative")
	}
	return nil
}
