package execute

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ellandq/Wizard-Duelling/internal/models"
	"github.com/Ellandq/Wizard-Duelling/internal/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyCommand(t *testing.T) {
	cmd, err := Command("")
	assert.NoError(t, err)
	assert.Nil(t, cmd)

	done, err := Spawn("")
	assert.NoError(t, err)
	assert.Nil(t, done)

	done, err = Template(nil)
	assert.NoError(t, err)
	assert.Nil(t, done)
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("command was not reaped")
		return nil
	}
}

func TestTemplateRunsCommand(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "cast")
	tmpl, err := pattern.New("fire", []models.GridPoint{{X: 0, Y: 0}, {X: 6, Y: 0}})
	require.NoError(t, err)
	tmpl.Command = "touch " + marker

	done, err := Template(tmpl)
	require.NoError(t, err)
	require.NotNil(t, done)
	require.NoError(t, wait(t, done))

	_, err = os.Stat(marker)
	assert.NoError(t, err)
}

func TestSpawnReapsFailedCommand(t *testing.T) {
	done, err := Spawn("exit 3")
	require.NoError(t, err)

	var exitErr *exec.ExitError
	require.True(t, errors.As(wait(t, done), &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
}
