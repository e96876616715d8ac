package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDropScene(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "", "../../internal/scene/testdata/drop.yaml", 3, &out))

	var results int
	var events []eventLine
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var probe map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &probe))
		if _, ok := probe["event"]; !ok {
			results++
			continue
		}
		var e eventLine
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		events = append(events, e)
	}
	require.NoError(t, scanner.Err())

	assert.Equal(t, 3*10, results, "five bodies give ten pairs per frame")
	// The ball starts above the ground, touches it exactly on frame 1 (not a
	// collision) and sinks in on frame 2. The tilted crate overlaps from the
	// start.
	assert.Equal(t, []eventLine{
		{Frame: 0, Event: "contact.begin", A: "ground", B: "crate"},
		{Frame: 1, Event: "contact.persist", A: "ground", B: "crate"},
		{Frame: 2, Event: "contact.begin", A: "ground", B: "ball"},
		{Frame: 2, Event: "contact.persist", A: "ground", B: "crate"},
	}, events)
}

func TestRunMissingScene(t *testing.T) {
	err := run(context.Background(), "", "testdata/none.yaml", 1, &bytes.Buffer{})
	assert.Error(t, err)
}
