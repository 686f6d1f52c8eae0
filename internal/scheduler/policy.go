package scheduler

import "skinwatch/internal/structures"

// HostPolicyInterface reports whether the host lets tasks run in the background.
type HostPolicyInterface interface {
	BackgroundAllowed() bool
}

type ConfigHostPolicy struct {
	allowed bool
}

func NewHostPolicy(conf *structures.Config) HostPolicyInterface {
	return &ConfigHostPolicy{allowed: conf.Monitor.Background}
}

func (p *ConfigHostPolicy) BackgroundAllowed() bool {
	return p.allowed
}
