package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyEnvironmentFillsEmptyFields(t *testing.T) {
	t.Setenv(envBigIPHost, "https://env.example.com")
	t.Setenv(envBigIPUsername, "envuser")
	t.Setenv(envBigIPPassword, "envpass")
	t.Setenv(envBigIPPartition, "EnvPartition")

	config := ServeConfig{VerifySSL: true}
	config.applyEnvironment(false)

	assert.Equal(t, "https://env.example.com", config.Host)
	assert.Equal(t, "envuser", config.Username)
	assert.Equal(t, "envpass", config.Password)
	assert.Equal(t, "EnvPartition", config.Partition)
}

func TestApplyEnvironmentNeverOverridesFlags(t *testing.T) {
	t.Setenv(envBigIPHost, "https://env.example.com")
	t.Setenv(envBigIPToken, "env-token")

	config := ServeConfig{
		Host:      "https://flag.example.com",
		Token:     "flag-token",
		VerifySSL: true,
	}
	config.applyEnvironment(false)

	assert.Equal(t, "https://flag.example.com", config.Host)
	assert.Equal(t, "flag-token", config.Token)
}

func TestApplyEnvironmentVerifySSL(t *testing.T) {
	tests := []struct {
		name          string
		envValue      string
		verifyFlagSet bool
		initial       bool
		want          bool
	}{
		{
			name:     "env disables verification when flag unset",
			envValue: "false",
			initial:  true,
			want:     false,
		},
		{
			name:          "explicit flag wins over env",
			envValue:      "false",
			verifyFlagSet: true,
			initial:       true,
			want:          true,
		},
		{
			name:     "unparseable env value is ignored",
			envValue: "maybe",
			initial:  true,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envBigIPVerifySSL, tt.envValue)

			config := ServeConfig{VerifySSL: tt.initial}
			config.applyEnvironment(tt.verifyFlagSet)

			assert.Equal(t, tt.want, config.VerifySSL)
		})
	}
}

func TestClientConfigConversion(t *testing.T) {
	config := ServeConfig{
		Host:          "https://bigip.example.com",
		Username:      "admin",
		Password:      "secret",
		Partition:     "Dev",
		LoginProvider: "tmos",
		VerifySSL:     false,
		Timeout:       10 * time.Second,
		MaxTailLines:  500,
	}

	clientCfg := config.clientConfig()

	assert.Equal(t, "https://bigip.example.com", clientCfg.Host)
	assert.Equal(t, "admin", clientCfg.Username)
	assert.Equal(t, "Dev", clientCfg.Partition)
	assert.True(t, clientCfg.InsecureSkipVerify, "verify-ssl off maps to InsecureSkipVerify on")
	assert.Equal(t, 10*time.Second, clientCfg.Timeout)
	assert.Equal(t, 500, clientCfg.MaxTailLines)
}

func TestRunServeRejectsIncompleteConfig(t *testing.T) {
	err := runServe(ServeConfig{Transport: transportStdio})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "BIG-IP client")
}
