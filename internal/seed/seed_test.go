package seed

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"example.com/backstage/services/crusher/config"
	"example.com/backstage/services/crusher/internal/models"
)

func TestStepsOrderAndContent(t *testing.T) {
	cfg := config.SeedConfig{AdminEmail: "ops@example.com", AdminName: "Ops"}
	steps := Steps(cfg)

	var names []string
	for _, s := range steps {
		names = append(names, s.Name)
		require.NotNil(t, s.Exists, s.Name)
		require.NotNil(t, s.Run, s.Name)
	}

	// the machine must exist before anything references DefaultMachineID
	require.Equal(t, []string{
		"default-crusher-machine",
		"super-admin-user",
		"sample-materials",
		"sample-customers",
		"sample-vendors",
	}, names)
}

func TestRunStepSkipsWhenRowsExist(t *testing.T) {
	ran := false
	step := Step{
		Name:   "noop",
		Exists: func(tx *gorm.DB) (bool, error) { return true, nil },
		Run: func(tx *gorm.DB) error {
			ran = true
			return nil
		},
	}

	applied, err := runStep(nil, step)
	require.NoError(t, err)
	require.False(t, applied)
	require.False(t, ran, "Run must not execute when rows exist")
}

func TestRunStepAppliesWhenMissing(t *testing.T) {
	ran := false
	step := Step{
		Name:   "apply",
		Exists: func(tx *gorm.DB) (bool, error) { return false, nil },
		Run: func(tx *gorm.DB) error {
			ran = true
			return nil
		},
	}

	applied, err := runStep(nil, step)
	require.NoError(t, err)
	require.True(t, applied)
	require.True(t, ran)
}

func TestRunStepPropagatesErrors(t *testing.T) {
	boom := errors.New("db down")

	_, err := runStep(nil, Step{
		Name:   "exists-fails",
		Exists: func(tx *gorm.DB) (bool, error) { return false, boom },
		Run:    func(tx *gorm.DB) error { return nil },
	})
	require.ErrorIs(t, err, boom)

	_, err = runStep(nil, Step{
		Name:   "run-fails",
		Exists: func(tx *gorm.DB) (bool, error) { return false, nil },
		Run:    func(tx *gorm.DB) error { return boom },
	})
	require.ErrorIs(t, err, boom)
}

func TestAdminStepUsesConfiguredIdentity(t *testing.T) {
	cfg := config.SeedConfig{AdminEmail: "boss@crusher.local", AdminName: "Boss"}
	steps := Steps(cfg)
	require.Equal(t, "super-admin-user", steps[1].Name)

	// sanity on the role constant the step inserts with
	require.True(t, models.UserRoleSuperAdmin.Valid())
}
