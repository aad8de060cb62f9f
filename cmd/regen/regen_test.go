package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/mmreg/device"
	"github.com/ezrec/mmreg/gen"
)

var testdata = filepath.Join("..", "..", "device", "testdata")

func TestLoadDevice(t *testing.T) {
	assert := assert.New(t)

	svd, err := loadDevice(filepath.Join(testdata, "stm32f072x_crc.svd"))
	require.NoError(t, err)
	assert.Equal("STM32F072x", svd.Name)

	star, err := loadDevice(filepath.Join(testdata, "stm32f072x_crc.star"))
	require.NoError(t, err)
	assert.Equal("STM32F072x", star.Name)

	path := filepath.Join(t.TempDir(), "crc.yml")
	require.NoError(t, dumpYAML(path, svd))
	back, err := loadDevice(path)
	require.NoError(t, err)
	assert.Equal(svd, back)

	_, err = loadDevice(filepath.Join(testdata, "missing.svd"))
	assert.ErrorIs(err, os.ErrNotExist)

	_, err = loadDevice(filepath.Join(testdata, "..", "device.go"))
	assert.ErrorIs(err, ErrFormat)
}

func newTestShell(t *testing.T) (sh *shell, out *bytes.Buffer) {
	dev, err := loadDevice(filepath.Join(testdata, "stm32f072x_crc.svd"))
	require.NoError(t, err)

	out = &bytes.Buffer{}
	sh = &shell{
		dev: dev,
		gen: &gen.Generator{Options: gen.Options{Package: "stm32f072x"}},
		out: out,
	}
	return
}

func TestShellCommands(t *testing.T) {
	assert := assert.New(t)

	sh, out := newTestShell(t)
	dir := filepath.Join(t.TempDir(), "with space")
	require.NoError(t, os.Mkdir(dir, 0o755))

	quit, err := sh.exec("l")
	assert.NoError(err)
	assert.False(quit)
	assert.Contains(out.String(), "CRC1")
	assert.Contains(out.String(), "CRC3@0x40004400")

	out.Reset()
	_, err = sh.exec("p crc1")
	assert.NoError(err)
	assert.Contains(out.String(), "name: CRC1")
	assert.Contains(out.String(), "access: read-clear")

	out.Reset()
	gopath := filepath.Join(dir, "crc.go")
	_, err = sh.exec(`w CRC1 "` + gopath + `"`)
	assert.NoError(err)
	assert.Contains(out.String(), "wrote")
	src, err := os.ReadFile(gopath)
	require.NoError(t, err)
	assert.Contains(string(src), "func NewCrc(base uintptr) (p *Crc) {")

	yamlPath := filepath.Join(dir, "crc.yaml")
	_, err = sh.exec("d '" + yamlPath + "'")
	assert.NoError(err)
	inf, err := os.Open(yamlPath)
	require.NoError(t, err)
	defer inf.Close()
	back, err := device.LoadYAML(inf)
	require.NoError(t, err)
	assert.Equal(sh.dev, back)

	out.Reset()
	_, err = sh.exec("d")
	assert.NoError(err)
	assert.Contains(out.String(), "name: STM32F072x")

	out.Reset()
	_, err = sh.exec("h")
	assert.NoError(err)
	assert.Contains(out.String(), "Commands:")

	quit, err = sh.exec("   ")
	assert.NoError(err)
	assert.False(quit)

	quit, err = sh.exec("q")
	assert.NoError(err)
	assert.True(quit)
}

func TestShellErrors(t *testing.T) {
	assert := assert.New(t)

	sh, _ := newTestShell(t)

	_, err := sh.exec("w")
	assert.ErrorIs(err, ErrArgument)

	_, err = sh.exec("p DMA1")
	assert.ErrorIs(err, device.ErrPeripheralMissing)

	_, err = sh.exec("x 1 2")
	assert.Equal(ErrCommand("x"), err)

	_, err = sh.exec(`w "CRC1`)
	assert.Error(err)
}
