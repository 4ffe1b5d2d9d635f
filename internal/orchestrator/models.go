package orchestrator

import (
	"ec2inventory/internal/inventory"
	"ec2inventory/internal/models"
	"ec2inventory/internal/sshagent"
)

// Result describes what a successful run produced.
type Result struct {
	Instances []models.Instance   // Running instances matching the tag filter
	Document  *inventory.Document // Inventory that was written
	Session   *sshagent.Session   // Agent left running for the consumer, nil if none
}
