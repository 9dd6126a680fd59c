package journal

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"trade-journal/internal/errors"
	"trade-journal/internal/models"
	"trade-journal/internal/spread"
)

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// validateDraft checks a new trade before it is sent.
func (s *Service) validateDraft(d models.TradeDraft) error {
	if err := s.validate.Struct(d); err != nil {
		return toValidationError(err)
	}
	if !d.Capital.IsPositive() {
		return errors.NewValidationError("Capital", d.Capital.String(), "must be greater than zero")
	}
	return validateLegs(d.Legs)
}

// validateUpdate checks the fields an update sets.
func (s *Service) validateUpdate(u models.TradeUpdate) error {
	if u.IsEmpty() {
		return errors.NewValidationError("update", nil, "nothing to change")
	}
	if u.Bias != nil {
		if err := s.validate.Var(string(*u.Bias), "oneof=BULLISH BEARISH NEUTRAL"); err != nil {
			return errors.NewValidationError("Bias", *u.Bias, "must be one of BULLISH BEARISH NEUTRAL")
		}
	}
	if u.Instrument != nil && strings.TrimSpace(*u.Instrument) == "" {
		return errors.NewValidationError("Instrument", *u.Instrument, "must not be empty")
	}
	if u.Capital != nil && !u.Capital.IsPositive() {
		return errors.NewValidationError("Capital", u.Capital.String(), "must be greater than zero")
	}
	if u.MainLots != nil && *u.MainLots < 0 {
		return errors.NewValidationError("MainLots", *u.MainLots, "must not be negative")
	}
	if u.Legs != nil {
		for _, leg := range u.Legs {
			if err := s.validate.Struct(leg); err != nil {
				return toValidationError(err)
			}
		}
		return validateLegs(u.Legs)
	}
	return nil
}

// validateLegs requires strikes to be positive and a non-empty leg set to be a
// complete spread.
func validateLegs(legs []models.StrikeLeg) error {
	if len(legs) == 0 {
		return nil
	}
	for i, leg := range legs {
		if !leg.StrikePrice.IsPositive() {
			return errors.NewValidationError(fmt.Sprintf("Legs[%d].StrikePrice", i), leg.StrikePrice.String(), "must be greater than zero")
		}
		if leg.Premium.IsNegative() {
			return errors.NewValidationError(fmt.Sprintf("Legs[%d].Premium", i), leg.Premium.String(), "must not be negative")
		}
	}
	if _, _, ok := spread.Legs(legs); !ok {
		return errors.NewValidationError("Legs", len(legs), "a spread needs one BUY and one SELL leg")
	}
	return nil
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.ErrInputValidation, err.Error())
	}
	fe := verrs[0]
	return errors.NewValidationError(fieldPath(fe.Namespace()), fe.Value(), ruleMessage(fe))
}

// fieldPath drops the root struct name: "TradeDraft.Legs[0].Lots" -> "Legs[0].Lots".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
