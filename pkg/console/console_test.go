package console

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestTableRender(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	c := NewConsole()
	table := c.CreateTable()
	table.AddColumn("Service")
	table.AddColumn("Cost")
	table.AddRow("AWS Lambda", "$15.50")
	table.AddRow("Amazon S3", 2.25)

	out := table.Render()
	assert.Contains(t, out, "Service")
	assert.Contains(t, out, "AWS Lambda")
	assert.Contains(t, out, "$15.50")
	assert.Contains(t, out, "2.25")
}

func TestConsoleWritesToWriter(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	var buf bytes.Buffer
	c := NewConsoleWithWriter(&buf)
	c.Printf("Total cost: $%s\n", "22.75")
	c.LogWarning("root message failed: %s", "channel_not_found")
	c.Box("Summary", "Top 3 cost drivers")

	out := buf.String()
	assert.Contains(t, out, "Total cost: $22.75")
	assert.Contains(t, out, "channel_not_found")
	assert.Contains(t, out, "Top 3 cost drivers")
}
