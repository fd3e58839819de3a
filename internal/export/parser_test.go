package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadEmptyDirectory(t *testing.T) {
	// Every file is optional; an empty directory loads cleanly.
	ex, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, ex.Connections)
	assert.Empty(t, ex.Messages)
	assert.Empty(t, ex.OwnHistory)
}

func TestLoadConnections(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Connections.csv",
		"First Name,Last Name,Email Address,Company,Position,Connected On\n"+
			"Sarah,Chen,sarah@stripe.com,Stripe,Staff Engineer,15 Jan 2024\n"+
			"Mike,Torres,,Acme Corp,VP Engineering,not-a-date\n"+
			",,,Ghost Inc,Recruiter,01 Feb 2024\n")

	ex, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, ex.Connections, 2, "nameless rows are dropped")

	sarah := ex.Connections[0]
	assert.Equal(t, "Sarah", sarah.FirstName)
	assert.Equal(t, "Stripe", sarah.Company)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), sarah.ConnectedOn)

	assert.True(t, ex.Connections[1].ConnectedOn.IsZero(), "unparseable date becomes zero")
}

func TestLoadMessages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "messages.csv",
		"CONVERSATION ID,FROM,TO,DATE,CONTENT\n"+
			"conv1,Sarah Chen,Me,2024-12-15 10:30:00 UTC,Hello there\n"+
			"conv1,Me,Sarah Chen,2024-12-16,Short date form\n"+
			"conv2,Mike Torres,Me,,No timestamp at all\n"+
			"conv3,,,2024-01-01 00:00:00 UTC,orphaned row\n")

	ex, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, ex.Messages, 3, "participant-less rows are dropped")

	assert.Equal(t, time.Date(2024, 12, 15, 10, 30, 0, 0, time.UTC), ex.Messages[0].SentAt)
	assert.Equal(t, time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC), ex.Messages[1].SentAt,
		"date-only prefix fallback")
	assert.False(t, ex.Messages[2].HasTimestamp())
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	// Second row has a stray quote; the reader tolerates it with
	// LazyQuotes and the third row still parses.
	writeFile(t, dir, "Connections.csv",
		"First Name,Last Name,Email Address,Company,Position,Connected On\n"+
			"Sarah,Chen,sarah@stripe.com,Stripe,Staff Engineer,15 Jan 2024\n"+
			"Mike,Tor\"res,mike@acme.com,Acme,VP,20 Mar 2023\n"+
			"Jen,Liu,jen@google.com,Google,PM,10 Jun 2022\n")

	ex, err := Load(dir)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(ex.Connections), 2)
	assert.Equal(t, "Jen", ex.Connections[len(ex.Connections)-1].FirstName)
}

func TestLoadEndorsementColumnVariants(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Endorsement_Received_Info.csv",
		"Endorser First Name,Endorser Last Name,Skill Name\n"+
			"Sarah,Chen,Go\n")
	writeFile(t, dir, "Endorsement_Given_Info.csv",
		"First Name,Last Name,Skill Name\n"+
			"Tom,Wilson,Hiring\n")

	ex, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, ex.EndorsementsReceived, 1)
	assert.Equal(t, "Sarah Chen", ex.EndorsementsReceived[0].Name)
	require.Len(t, ex.EndorsementsGiven, 1)
	assert.Equal(t, "Tom Wilson", ex.EndorsementsGiven[0].Name)
}

func TestLoadPositions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Positions.csv",
		"Company Name,Title,Started On,Finished On\n"+
			"Acme Corp,Senior Engineer,Mar 2019,Jun 2022\n"+
			"Netflix,Staff Engineer,Jul 2022,\n")

	ex, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, ex.OwnHistory, 2)
	assert.Equal(t, time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC), ex.OwnHistory[0].Start)
	assert.True(t, ex.OwnHistory[1].End.IsZero(), "open-ended stint")
}

func TestWriteSampleRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sample")
	require.NoError(t, WriteSample(dir))

	ex, err := Load(dir)
	require.NoError(t, err)

	assert.Len(t, ex.Connections, 10)
	assert.Len(t, ex.Messages, 10)
	assert.Len(t, ex.EndorsementsReceived, 8)
	assert.Len(t, ex.EndorsementsGiven, 3)
	assert.Len(t, ex.RecommendationsReceived, 1)
	assert.Len(t, ex.RecommendationsGiven, 1)
	assert.Len(t, ex.OwnHistory, 2)
}
