package interfaces

import "time"

type SchedulerInterface interface {
	Register(name string, interval time.Duration) error
	Registered() map[string]time.Duration
	Restore() error
	Init()
	Stop()
}
