package slot

import (
	"parking-booking/internal/pkg/errs"
)

var ErrInvalidType = errs.Mark(errs.New("invalid slot type"), errs.ErrInvalidArgument)

type Type string

const (
	TypeStandard Type = "standard"
	TypeCompact  Type = "compact"
	TypePremium  Type = "premium"
	TypeHandicap Type = "handicap"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeStandard, TypeCompact, TypePremium, TypeHandicap:
		return true
	default:
		return false
	}
}

func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}
