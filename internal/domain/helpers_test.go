package domain

import (
	"time"

	"github.com/m04kA/SMC-PitchBookingService/pkg/types"
)

func typesTime(s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func mustDate(s string) time.Time {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}
