package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pokercore/internal/config"
	"pokercore/internal/util"
)

func TestLoadInstance_notConfigured(t *testing.T) {
	unset1 := util.SetEnv("PCORE_CONFIG_FILE", "testdata/missing.yaml")
	defer unset1()
	unset2 := util.SetEnv("PCORE_PG_DSN", "")
	defer unset2()

	a := assert.New(t)
	a.NoError(config.Load())
	a.False(Configured())
	a.ErrorIs(LoadInstance(), ErrNotConfigured)
	a.Panics(func() { Instance() })
}

func TestOpen_badDSN(t *testing.T) {
	_, err := Open("postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1")
	assert.Error(t, err)
}
