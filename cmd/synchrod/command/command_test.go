package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootHasRunAndSimulateSubcommands(t *testing.T) {
	root := Root()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["run"])
	assert.True(t, names["simulate"])
}

func TestSimulateMainConvergesOnScriptedMutations(t *testing.T) {
	dir := t.TempDir()
	err := simulateMain(context.Background(), "", 10, dir+"/run.cbor", 1)
	assert.NoError(t, err)
}
