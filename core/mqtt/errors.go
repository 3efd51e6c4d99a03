package mqtt

import "errors"

// ErrEmptyPlant is returned when a setpoint is addressed to an unnamed plant.
var ErrEmptyPlant = errors.New("setpoint without plant name")

// ErrInvalidPlant is returned when a plant name cannot be used as a topic
// level.
var ErrInvalidPlant = errors.New("plant name is not a valid topic level")
