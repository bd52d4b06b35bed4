package envstruct_test

import (
	"github.com/myrjola/dialogtree/internal/envstruct"
	"github.com/stretchr/testify/require"
	"testing"
)

type testConfig struct {
	Out        string `env:"DIALOGTREE_OUT" envDefault:"dialogs.html"`
	Minify     bool   `env:"DIALOGTREE_MINIFY" envDefault:"false"`
	MaxPreview int    `env:"DIALOGTREE_MAX_PREVIEW" envDefault:"20"`
}

func TestPopulate(t *testing.T) {
	tests := []struct {
		name      string
		v         any
		lookupEnv func(string) (string, bool)
		want      any
		wantErr   error
	}{
		{
			name:      "nil",
			v:         nil,
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "not pointer",
			v:         struct{}{},
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "empty struct",
			v:         &struct{}{},
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      &struct{}{},
			wantErr:   nil,
		},
		{
			name: "missing env without default",
			v: &struct {
				EnvVar string `env:"ENV_VAR"`
			}{},
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      nil,
			wantErr:   envstruct.ErrEnvNotSet,
		},
		{
			name:      "defaults apply",
			v:         &testConfig{},
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want: &testConfig{
				Out:        "dialogs.html",
				Minify:     false,
				MaxPreview: 20,
			},
			wantErr: nil,
		},
		{
			name: "env overrides defaults",
			v:    &testConfig{},
			lookupEnv: func(name string) (string, bool) {
				env := map[string]string{
					"DIALOGTREE_OUT":         "out.html",
					"DIALOGTREE_MINIFY":      "true",
					"DIALOGTREE_MAX_PREVIEW": "5",
				}
				v, ok := env[name]
				return v, ok
			},
			want: &testConfig{
				Out:        "out.html",
				Minify:     true,
				MaxPreview: 5,
			},
			wantErr: nil,
		},
		{
			name: "malformed bool",
			v: &struct {
				Minify bool `env:"DIALOGTREE_MINIFY"`
			}{},
			lookupEnv: func(_ string) (string, bool) { return "yes please", true },
			want:      nil,
			wantErr:   nil, // wrapped strconv error, asserted below
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := envstruct.Populate(tt.v, tt.lookupEnv)
			if tt.name == "malformed bool" {
				require.Error(t, err)
				return
			}
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.want != nil {
				require.Equal(t, tt.want, tt.v)
			}
		})
	}
}
