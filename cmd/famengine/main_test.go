package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/takrawm/famengine/internal/cli"
	"github.com/takrawm/famengine/pkg/version"
)

func TestVersionAvailable(t *testing.T) {
	assert.NotEmpty(t, version.GetVersion())
}

func TestRootCommandWired(t *testing.T) {
	root := cli.NewRootCmd(version.GetVersion())
	assert.NotNil(t, root)
	assert.NotEmpty(t, root.Use)
}

func TestRunReturnsNonZeroOnUnknownCommand(t *testing.T) {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs([]string{"definitely-not-a-command"})
	err := root.Execute()
	assert.Error(t, err)
}
