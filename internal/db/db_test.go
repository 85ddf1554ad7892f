package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentStep(t *testing.T) {
	assert.Equal(t, "resolution:driver_cpu", ComponentStep(StepResolution, "driver_cpu"))
	assert.Equal(t, "artifact:driver_wi-fi", ComponentStep(StepArtifact, "driver_wi-fi"))
}

func TestStepAndCategoryConstants(t *testing.T) {
	assert.Equal(t, "raw_inventory", StepRawInventory)
	assert.Equal(t, "component_catalog", StepCatalog)
	assert.Equal(t, "report", StepReport)
	assert.Equal(t, "classification", CategoryClassification)
	assert.Equal(t, "synthesis", CategorySynthesis)
}
