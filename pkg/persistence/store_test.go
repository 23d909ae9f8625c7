package persistence_test

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/persistence"
	"github.com/stayzeef/rc-gamepad-configurator/pkg/persistence/mocks"
)

func configWithProtocol(p model.Protocol) model.Config {
	cfg := model.NewConfig()
	cfg.Protocol = p
	_ = cfg.Assign(model.InputThrottle, 9)
	return cfg
}

func TestStoreRoundTripOnDisk(t *testing.T) {
	for _, name := range []string{"joystick_config.json", "nested/dongle.yaml"} {
		t.Run(name, func(t *testing.T) {
			store := persistence.NewStore(filepath.Join(t.TempDir(), name), nil)
			cfg := configWithProtocol(model.ProtocolFPORT)

			require.NoError(t, store.Save(cfg))

			got := model.NewConfig()
			res, err := store.Load(&got)
			require.NoError(t, err)
			assert.Empty(t, res.Warnings)
			assert.True(t, got.Equal(cfg))
		})
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := persistence.NewStore(filepath.Join(t.TempDir(), "missing.json"), nil)
	cfg := model.NewConfig()

	_, err := store.Load(&cfg)
	var fe *persistence.FileError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "read", fe.Op)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestStoreSaveRefusesUnsetProtocol(t *testing.T) {
	fsys := mocks.NewMockFilesystem(t)
	store := persistence.NewStore("dongle.json", fsys)

	err := store.Save(configWithProtocol(model.ProtocolUnset))
	assert.ErrorIs(t, err, persistence.ErrProtocolUnset)
	fsys.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything)
}

func TestStoreSaveWritesJSON(t *testing.T) {
	fsys := mocks.NewMockFilesystem(t)
	var written []byte
	fsys.EXPECT().WriteFile("dongle.json", mock.Anything).
		Run(func(_ string, data []byte) { written = data }).
		Return(nil).Once()

	store := persistence.NewStore("dongle.json", fsys)
	require.NoError(t, store.Save(configWithProtocol(model.ProtocolDebug)))

	assert.Contains(t, string(written), `"protocol": "debug"`)
	assert.Contains(t, string(written), `"throttle": 9`)
}

func TestStoreSaveWriteError(t *testing.T) {
	fsys := mocks.NewMockFilesystem(t)
	diskFull := errors.New("no space left on device")
	fsys.EXPECT().WriteFile("dongle.json", mock.Anything).Return(diskFull).Once()

	store := persistence.NewStore("dongle.json", fsys)
	err := store.Save(configWithProtocol(model.ProtocolIBUS))

	var fe *persistence.FileError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "write", fe.Op)
	assert.Equal(t, "dongle.json", fe.Path)
	assert.ErrorIs(t, err, diskFull)
}

func TestStoreLoadStructuralErrorKeepsConfig(t *testing.T) {
	fsys := mocks.NewMockFilesystem(t)
	fsys.EXPECT().ReadFile("dongle.json").Return([]byte(`[]`), nil).Once()

	store := persistence.NewStore("dongle.json", fsys)
	cfg := configWithProtocol(model.ProtocolSBUS)
	before := cfg

	_, err := store.Load(&cfg)
	var fe *persistence.FileError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "dongle.json", fe.Path)
	assert.True(t, cfg.Equal(before))
}

func TestStoreLoadAppliesFields(t *testing.T) {
	fsys := mocks.NewMockFilesystem(t)
	fsys.EXPECT().ReadFile("dongle.yml").Return([]byte("protocol: sbus\nx_axis: 2\n"), nil).Once()

	store := persistence.NewStore("dongle.yml", fsys)
	assert.Equal(t, persistence.FormatYAML, store.Format())

	cfg := model.NewConfig()
	res, err := store.Load(&cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, model.ProtocolSBUS, cfg.Protocol)
	assert.Equal(t, model.Channel(2), cfg.Channel(model.InputXAxis))
}
