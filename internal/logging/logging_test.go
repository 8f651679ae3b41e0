// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"DEBUG", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"", logrus.InfoLevel},
		{"WARNING", logrus.WarnLevel},
		{"ERROR", logrus.ErrorLevel},
		{"CRITICAL", logrus.FatalLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("LOUD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestNewSuppressesDuplicates(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "INFO")
	require.NoError(t, err)

	logger.Warn("Multiple occupancies found in ALA 1.")
	logger.Warn("Multiple occupancies found in ALA 1.")
	logger.Info("Multiple occupancies found in ALA 1.")
	logger.Debug("hidden")

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "Multiple occupancies found in ALA 1."))
	assert.NotContains(t, out, "hidden")
}

func TestNewRepeatsAfterOtherMessage(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "INFO")
	require.NoError(t, err)

	logger.Info("Loading molecule")
	logger.Info("Setting up molecule.")
	logger.Info("Loading molecule")
	logger.Info("Loading molecule")

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "Loading molecule"))
	assert.Equal(t, 1, strings.Count(out, "Setting up molecule."))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "verbose")
	assert.Error(t, err)
}
