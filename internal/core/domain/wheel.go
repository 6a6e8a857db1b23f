package domain

import "errors"

var ErrWheelValueOutOfRange = errors.New("wheel value must be between 1 and 10")

// WheelArea is one manually rated area of the life wheel.
type WheelArea struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Color    string   `json:"color"`
	Icon     string   `json:"icon"`
	Value    int      `json:"value"`
}

func ValidateWheelValue(v int) error {
	if v < MinScore || v > MaxScore {
		return ErrWheelValueOutOfRange
	}
	return nil
}
