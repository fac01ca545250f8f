package inference

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnvironment struct {
	initialized bool
	initErr     error
	inits       int
	destroys    int
}

func useFakeEnvironment(t *testing.T, env *fakeEnvironment) {
	t.Helper()
	isInitialized, initialize, destroy := ortIsInitialized, ortInitialize, ortDestroy
	ortIsInitialized = func() bool { return env.initialized }
	ortInitialize = func() error {
		env.inits++
		if env.initErr != nil {
			return env.initErr
		}
		env.initialized = true
		return nil
	}
	ortDestroy = func() error {
		env.destroys++
		env.initialized = false
		return nil
	}
	t.Cleanup(func() {
		ortIsInitialized, ortInitialize, ortDestroy = isInitialized, initialize, destroy
	})
}

func TestEnvironmentOwnedWhenStartedHere(t *testing.T) {
	fake := &fakeEnvironment{}
	useFakeEnvironment(t, fake)

	env, err := acquireEnvironment()
	require.NoError(t, err)
	assert.Equal(t, 1, fake.inits)

	require.NoError(t, env.release())
	require.NoError(t, env.release())
	assert.Equal(t, 1, fake.destroys)
}

func TestEnvironmentLeftAloneWhenAlreadyRunning(t *testing.T) {
	fake := &fakeEnvironment{initialized: true}
	useFakeEnvironment(t, fake)

	env, err := acquireEnvironment()
	require.NoError(t, err)
	require.NoError(t, env.release())

	assert.Zero(t, fake.inits)
	assert.Zero(t, fake.destroys)
	assert.True(t, fake.initialized)
}

func TestEnvironmentInitFailure(t *testing.T) {
	fake := &fakeEnvironment{initErr: errors.New("libonnxruntime.so: cannot open shared object file")}
	useFakeEnvironment(t, fake)

	_, err := NewONNXBackend(ONNXOptions{ModelPath: "faces.onnx"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize ONNX environment")
	assert.Zero(t, fake.destroys)
}

func TestONNXCloseKeepsSharedEnvironment(t *testing.T) {
	fake := &fakeEnvironment{initialized: true}
	useFakeEnvironment(t, fake)

	shared := &ONNXBackend{}
	require.NoError(t, shared.Close())
	assert.Zero(t, fake.destroys)

	owner := &ONNXBackend{env: ortEnvironment{owned: true}}
	require.NoError(t, owner.Close())
	assert.Equal(t, 1, fake.destroys)
}
