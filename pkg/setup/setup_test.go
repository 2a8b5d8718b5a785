package setup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunStepsContinuesPastFailure(t *testing.T) {
	var ran []string
	step := func(name string, err error) Step {
		return Step{Name: name, Run: func() error {
			ran = append(ran, name)
			return err
		}}
	}

	failed := RunSteps([]Step{
		step("one", nil),
		step("two", errors.New("boom")),
		step("three", nil),
		step("four", errors.New("boom again")),
	})

	require.Equal(t, 2, failed)
	require.Equal(t, []string{"one", "two", "three", "four"}, ran)
}

func TestRunStepsEmpty(t *testing.T) {
	require.Zero(t, RunSteps(nil))
}
