// internal/pkg/config/config_test.go
package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testViper(env string, overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v, env)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg := FromViper(testViper("development", nil), "development")

	require.NoError(t, cfg.Validate())
	assert.Equal(t, ReorderAtomic, cfg.Admin.ReorderMode)
	assert.Equal(t, "motostock_admin", cfg.Admin.CookieName)
	assert.Equal(t, 12, cfg.Catalog.PageSize)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, "motos", cfg.Storage.Bucket)
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, 6, cfg.Asynq.Queues["critical"])
	assert.True(t, cfg.IsDevelopment())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		overrides map[string]any
		errorText string
	}{
		{
			name:      "unknown_reorder_mode",
			env:       "development",
			overrides: map[string]any{"ADMIN_REORDER_MODE": "parallel"},
			errorText: "reorder mode",
		},
		{
			name:      "sequential_mode_accepted",
			env:       "development",
			overrides: map[string]any{"ADMIN_REORDER_MODE": "sequential"},
		},
		{
			name:      "unknown_storage_driver",
			env:       "development",
			overrides: map[string]any{"STORAGE_DRIVER": "ftp"},
			errorText: "storage driver",
		},
		{
			name:      "bad_cron_spec",
			env:       "development",
			overrides: map[string]any{"CLEANUP_SCHEDULE": "every tuesday"},
			errorText: "cleanup schedule",
		},
		{
			name:      "missing_db_name",
			env:       "development",
			overrides: map[string]any{"DB_NAME": ""},
			errorText: "Database.Name",
		},
		{
			name:      "production_requires_admin_password",
			env:       "production",
			overrides: map[string]any{"DB_SSL_MODE": "require", "DB_PASSWORD": "s3cret"},
			errorText: "admin password",
		},
		{
			name: "production_rejects_wildcard_origin",
			env:  "production",
			overrides: map[string]any{
				"DB_SSL_MODE": "require", "DB_PASSWORD": "s3cret", "ADMIN_PASSWORD": "gate",
			},
			errorText: "wildcard origin",
		},
		{
			name: "production_valid",
			env:  "production",
			overrides: map[string]any{
				"DB_SSL_MODE": "require", "DB_PASSWORD": "s3cret", "ADMIN_PASSWORD": "gate",
				"ALLOWED_ORIGINS": "https://wsvendas.com.br",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := FromViper(testViper(tt.env, tt.overrides), tt.env)
			err := cfg.Validate()
			if tt.errorText == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorText)
		})
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSecretsAPI struct {
	value *string
	err   error
	calls int
}

func (f *fakeSecretsAPI) GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput,
	_ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.value}, nil
}

func TestApplySecrets_FromAWS(t *testing.T) {
	api := &fakeSecretsAPI{value: aws.String(`{"DB_PASSWORD":"db-pw","ADMIN_PASSWORD":"gate-pw"}`)}
	sm := newAWSSecretsManager(api, "motostock/prod", discardLogger())

	cfg := FromViper(testViper("development", nil), "development")
	require.NoError(t, ApplySecrets(context.Background(), cfg, sm))
	assert.Equal(t, "db-pw", cfg.Database.Password)
	assert.Equal(t, "gate-pw", cfg.Admin.Password)

	_, err := sm.GetSecrets(context.Background(), []string{SecretDBPassword})
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls, "second read served from cache")
}

func TestApplySecrets_Error(t *testing.T) {
	api := &fakeSecretsAPI{err: errors.New("access denied")}
	sm := newAWSSecretsManager(api, "motostock/prod", discardLogger())

	cfg := FromViper(testViper("development", nil), "development")
	err := ApplySecrets(context.Background(), cfg, sm)
	require.Error(t, err)
	assert.Equal(t, "motostock_dev", cfg.Database.Password)
}

func TestEnvSecretsManager(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "from-env")

	cfg := FromViper(testViper("development", nil), "development")
	require.NoError(t, ApplySecrets(context.Background(), cfg, EnvSecretsManager{}))
	assert.Equal(t, "from-env", cfg.Admin.Password)
}
