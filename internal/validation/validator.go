// Package validation checks daily bars before they reach the store.
package validation

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/virendrap1516/Stock-Data-Intelligence-Dashboard/internal/models"
)

// BarValidator handles validation of daily price bars.
type BarValidator struct {
	validate *validator.Validate
	priceMax float64
	priceMin float64
}

// NewBarValidator creates a validator with reasonable market bounds.
func NewBarValidator() *BarValidator {
	return &BarValidator{
		validate: validator.New(),
		priceMax: 10000000.0, // generous ceiling, some NSE symbols trade in the tens of thousands
		priceMin: 0.0001,
	}
}

// ValidateBar validates a single bar and returns an error if invalid.
func (v *BarValidator) ValidateBar(bar *models.DailyBar) error {
	if err := v.validate.Struct(bar); err != nil {
		return err
	}

	if strings.TrimSpace(bar.Symbol) == "" {
		return ErrInvalidSymbol
	}
	if bar.Date.IsZero() {
		return ErrZeroDate
	}
	for _, price := range []float64{bar.Open, bar.High, bar.Low, bar.Close} {
		if price < v.priceMin || price > v.priceMax {
			return ErrUnreasonablePrice
		}
	}
	if bar.Volume < 0 {
		return ErrUnreasonableVolume
	}
	if bar.High < bar.Low || bar.High < bar.Close || bar.Low > bar.Close {
		return ErrInconsistentBar
	}
	return nil
}

// ValidateSeries validates a slice of bars and returns the valid ones,
// preserving order. Invalid bars are logged and dropped.
func (v *BarValidator) ValidateSeries(bars []models.DailyBar) []models.DailyBar {
	valid := make([]models.DailyBar, 0, len(bars))
	for i := range bars {
		if err := v.ValidateBar(&bars[i]); err != nil {
			log.Printf("Dropping invalid bar %s/%s: %v",
				bars[i].Symbol, bars[i].DateString(), err)
			continue
		}
		valid = append(valid, bars[i])
	}
	return valid
}
