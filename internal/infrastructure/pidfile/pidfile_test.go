package pidfile

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "redcycle.pid")
	lock := New(path)

	require.NoError(t, lock.Acquire())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid())+"\n", string(data))

	require.NoError(t, lock.Release())
	assert.NoFileExists(t, path)

	// Releasing twice is harmless
	assert.NoError(t, lock.Release())
}

func TestAcquire_HeldByLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redcycle.pid")
	// PID 1 is always running
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))

	err := New(path).Acquire()

	var held *HeldError
	require.True(t, errors.As(err, &held))
	assert.Equal(t, 1, held.PID)
	assert.FileExists(t, path)
}

func TestAcquire_ReplacesStaleOrGarbledLock(t *testing.T) {
	for name, content := range map[string]string{
		"garbled": "not-a-pid",
		"dead":    "0\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "redcycle.pid")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			lock := New(path)
			require.NoError(t, lock.Acquire())
			defer lock.Release()

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, strconv.Itoa(os.Getpid())+"\n", string(data))
		})
	}
}

func TestAcquire_ReentrantForSameProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redcycle.pid")
	first := New(path)
	require.NoError(t, first.Acquire())
	defer first.Release()

	// A lock naming this process is not treated as foreign
	assert.NoError(t, New(path).Acquire())
}
