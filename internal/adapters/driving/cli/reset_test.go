package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetCmd_Use(t *testing.T) {
	assert.Equal(t, "reset", resetCmd.Use)
}

func TestResetCmd_ClearsMarker(t *testing.T) {
	mock := &mockSyncService{}
	cleanup := setupSyncTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"reset"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.True(t, mock.resetCalled)
	assert.False(t, mock.lastClear)
	assert.Contains(t, buf.String(), "Cleared the in-progress marker.")
}

func TestResetCmd_CursorFlag(t *testing.T) {
	mock := &mockSyncService{}
	cleanup := setupSyncTest(mock)
	defer func() {
		resetCursor = false
		cleanup()
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"reset", "--cursor"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.True(t, mock.resetCalled)
	assert.True(t, mock.lastClear)
	assert.Contains(t, buf.String(), "the sync cursor")
	assert.Contains(t, buf.String(), "whole library")
}

func TestResetCmd_ServiceError(t *testing.T) {
	mock := &mockSyncService{resetErr: errors.New("db locked")}
	cleanup := setupSyncTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"reset"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reset failed")
}

func TestResetCmd_ServiceNotConfigured(t *testing.T) {
	oldSync := syncService
	syncService = nil
	defer func() {
		syncService = oldSync
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"reset"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sync service not configured")
}
