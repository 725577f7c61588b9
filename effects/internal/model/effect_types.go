package effectmodel

import "errors"

type EffectEnum string

const (
	EffectLog         EffectEnum = "viewstate_effect_enum_log"
	EffectConcurrency EffectEnum = "viewstate_effect_enum_concurrency"
	EffectHost        EffectEnum = "viewstate_effect_enum_host"
	EffectClock       EffectEnum = "viewstate_effect_enum_clock"
)

var ErrNoEffectHandler = errors.New("no effect handler registered for this effect")

type EffectScopeConfig struct {
	BufferSize int // default: 1
	NumWorkers int // default: 1
}

func NewEffectScopeConfig(bufferSize int, numWorkers int) EffectScopeConfig {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return EffectScopeConfig{
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
	}
}

// Partitionable payloads are routed to a worker by the hash of their key.
type Partitionable interface {
	PartitionKey() string
}
