package model

import "errors"

var (
	// ErrNegativeCapacity is returned when a capacity or storage parameter is below zero.
	ErrNegativeCapacity = errors.New("capacity must be >= 0")

	// ErrInvalidEfficiency is returned when a round-trip efficiency is outside (0, 1].
	ErrInvalidEfficiency = errors.New("efficiency must be in (0, 1]")

	// ErrInvalidMeritOrder is returned when merit ranks are not a strict total order.
	ErrInvalidMeritOrder = errors.New("merit ranks must be unique and >= 1")

	// ErrInvalidStorage is returned for an inconsistent storage unit (duplicate, bad SoC or charge ratio).
	ErrInvalidStorage = errors.New("invalid storage unit")

	// ErrUnknownWeather is returned for a weather scenario missing from the lookup table.
	ErrUnknownWeather = errors.New("unknown weather scenario")

	// ErrNotANumber is returned for a NaN year, capacity, load factor or storage parameter.
	ErrNotANumber = errors.New("value must be a number")
)
