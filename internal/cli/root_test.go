package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRootCmdWiresSubcommands(t *testing.T) {
	cmd := NewRootCmd("test")

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["model"])
	assert.True(t, names["compute"])
	assert.True(t, names["show"])
}
