package env

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ekisa-team/plantx/internal/envvar"
)

func TestParse(t *testing.T) {
	cases := map[string]Environment{
		"":           Development,
		"dev":        Development,
		"PRODUCTION": Production,
		" prod ":     Production,
		"test":       Test,
		"something":  Development,
	}
	for in, want := range cases {
		assert.Equal(t, want, Parse(in), "input %q", in)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(envvar.PlantXEnv, "production")
	assert.True(t, FromEnv().IsProduction())
}
