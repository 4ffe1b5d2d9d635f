package models

import "time"

// InstanceStateRunning is the EC2 lifecycle state kept by the lister.
const InstanceStateRunning = "running"

// Instance holds the EC2 attributes the inventory cares about.
type Instance struct {
	InstanceID   string            `json:"instance_id,omitempty"`
	State        string            `json:"state,omitempty"`
	PublicIP     string            `json:"public_ip,omitempty"`
	PrivateIP    string            `json:"private_ip,omitempty"`
	InstanceType string            `json:"instance_type,omitempty"`
	LaunchTime   *time.Time        `json:"launch_time,omitempty"`
	Tags         map[string]string `json:"tags,omitempty"`
}

// IsRunning reports whether the instance is in the running state.
func (i Instance) IsRunning() bool {
	return i.State == InstanceStateRunning
}

// HasPublicIP reports whether the instance exposes a public address.
func (i Instance) HasPublicIP() bool {
	return i.PublicIP != ""
}
