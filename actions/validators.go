package actions

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	MsgInvalidCheckInDate = "⚠️ Please enter the check-in date in YYYY-MM-DD format."
	MsgInvalidNights      = "Please provide a valid number of nights."
	MsgInvalidGuests      = "Please provide a valid number of guests."
	MsgInvalidTravelDate  = "Please provide a valid date in YYYY-MM-DD format."
	MsgMissingDeparture   = "Please enter departure city."
	MsgMissingDestination = "Please enter destination city."
)

var validate = validator.New()

// ValidateISODate accepts YYYY-MM-DD calendar dates and returns the value unchanged.
func ValidateISODate(raw interface{}) (string, bool) {
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	if err := validate.Var(s, "required,datetime=2006-01-02"); err != nil {
		return "", false
	}
	return s, true
}

// ValidateCount keeps only the digits of raw and accepts the result when it is
// a positive integer: "3 nights" is 3, "abc5def" is 5, "0" and "abc" are rejected.
func ValidateCount(raw interface{}) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, stringify(raw))
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ValidateRequiredText accepts any value with non-blank text.
func ValidateRequiredText(raw interface{}) (string, bool) {
	s := strings.TrimFunc(stringify(raw), unicode.IsSpace)
	if s == "" {
		return "", false
	}
	return s, true
}

// SlotValidator normalises one slot. On rejection it returns (nil, message).
type SlotValidator func(raw interface{}) (value interface{}, rejection string)

func dateSlot(message string) SlotValidator {
	return func(raw interface{}) (interface{}, string) {
		if v, ok := ValidateISODate(raw); ok {
			return v, ""
		}
		return nil, message
	}
}

func countSlot(message string) SlotValidator {
	return func(raw interface{}) (interface{}, string) {
		if v, ok := ValidateCount(raw); ok {
			return v, ""
		}
		return nil, message
	}
}

func textSlot(message string) SlotValidator {
	return func(raw interface{}) (interface{}, string) {
		if v, ok := ValidateRequiredText(raw); ok {
			return v, ""
		}
		return nil, message
	}
}
