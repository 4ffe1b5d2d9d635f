package inventory

import (
	"time"

	"ec2inventory/internal/models"
	"ec2inventory/internal/sshagent"
)

// GroupAll is the only group the inventory emits.
const GroupAll = "all"

// Variable names understood by Ansible
const (
	VarUser              = "ansible_user"
	VarPrivateKeyContent = "ansible_ssh_private_key_content"
	VarAgentPID          = "ssh_agent_pid"
	VarAuthSock          = "ssh_auth_sock"
)

// Document is the dynamic inventory written to stdout.
type Document struct {
	All  Group `json:"all" yaml:"all"`
	Meta *Meta `json:"_meta,omitempty" yaml:"_meta,omitempty"`
}

// Group lists hosts and the variables shared by all of them.
// Both fields are always serialised, even when empty.
type Group struct {
	Hosts []string          `json:"hosts" yaml:"hosts"`
	Vars  map[string]string `json:"vars" yaml:"vars"`
}

// Meta carries per-host variables so Ansible can skip --host calls.
type Meta struct {
	HostVars map[string]HostVars `json:"hostvars" yaml:"hostvars"`
}

// HostVars describes a single instance. LaunchTime is RFC 3339 text.
type HostVars struct {
	InstanceID   string `json:"instance_id" yaml:"instance_id"`
	InstanceType string `json:"instance_type,omitempty" yaml:"instance_type,omitempty"`
	PrivateIP    string `json:"private_ip,omitempty" yaml:"private_ip,omitempty"`
	LaunchTime   string `json:"launch_time,omitempty" yaml:"launch_time,omitempty"`
}

// Build assembles the inventory for instances. Hosts are the public IPs in
// the order given; extra is merged over the ansible_user variable.
func Build(instances []models.Instance, user string, extra map[string]string) *Document {
	vars := make(map[string]string, len(extra)+1)
	vars[VarUser] = user
	for k, v := range extra {
		vars[k] = v
	}

	return &Document{
		All: Group{
			Hosts: PublicIPs(instances),
			Vars:  vars,
		},
	}
}

// AddHostVars fills _meta.hostvars for every instance that has a public IP.
func (d *Document) AddHostVars(instances []models.Instance) {
	hostvars := make(map[string]HostVars, len(instances))
	for _, instance := range instances {
		if !instance.HasPublicIP() {
			continue
		}
		hv := HostVars{
			InstanceID:   instance.InstanceID,
			InstanceType: instance.InstanceType,
			PrivateIP:    instance.PrivateIP,
		}
		if instance.LaunchTime != nil {
			hv.LaunchTime = instance.LaunchTime.UTC().Format(time.RFC3339)
		}
		hostvars[instance.PublicIP] = hv
	}
	d.Meta = &Meta{HostVars: hostvars}
}

// PublicIPs extracts the public addresses of the given instances, preserving
// order and skipping instances that have none. The result is never nil.
func PublicIPs(instances []models.Instance) []string {
	ips := make([]string, 0, len(instances))
	for _, instance := range instances {
		if instance.HasPublicIP() {
			ips = append(ips, instance.PublicIP)
		}
	}
	return ips
}

// AgentVars returns the variables pointing Ansible at a running agent.
func AgentVars(session *sshagent.Session) map[string]string {
	return map[string]string{
		VarAgentPID: session.AgentPID,
		VarAuthSock: session.AuthSock,
	}
}

// KeyContentVars returns the variable embedding the private key text.
func KeyContentVars(key string) map[string]string {
	return map[string]string{
		VarPrivateKeyContent: key,
	}
}
