// Package secret provisions Secret Manager entries for values the widget
// API reads at startup, such as the Redis URL. Each secret is readable only
// by the API's service account; nothing writes secrets at runtime.
package secret

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/secretmanager"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// Manager creates secrets once the Secret Manager API is enabled.
type Manager struct {
	provider *gcp.Provider
	api      *projects.Service
	reader   pulumi.StringOutput
}

// SetupSecretManager enables the Secret Manager API and returns a Manager
// whose secrets apiSA may read.
func SetupSecretManager(ctx *pulumi.Context, prov *gcp.Provider, apiSA *serviceaccount.Account) (*Manager, error) {
	api, err := projects.NewService(ctx, "secretManagerService", &projects.ServiceArgs{
		Service:                  pulumi.String("secretmanager.googleapis.com"),
		DisableDependentServices: pulumi.Bool(false),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	return &Manager{
		provider: prov,
		api:      api,
		reader: apiSA.Email.ApplyT(func(email string) string {
			return fmt.Sprintf("serviceAccount:%s", email)
		}).(pulumi.StringOutput),
	}, nil
}

// AddSecret stores value under secretID and returns the id for a Cloud Run
// secret env ref. resourceName prefixes the Pulumi names of the secret, its
// version and its accessor binding.
func (m *Manager) AddSecret(ctx *pulumi.Context, resourceName, secretID string, value pulumi.StringInput) (pulumi.StringOutput, error) {
	empty := pulumi.String("").ToStringOutput()

	s, err := secretmanager.NewSecret(ctx, resourceName, &secretmanager.SecretArgs{
		SecretId: pulumi.String(secretID),
		Labels:   pulumi.StringMap{"app": pulumi.String("chat-widget")},
		Replication: &secretmanager.SecretReplicationArgs{
			Auto: &secretmanager.SecretReplicationAutoArgs{},
		},
	},
		pulumi.Provider(m.provider),
		pulumi.DependsOn([]pulumi.Resource{m.api}),
	)
	if err != nil {
		return empty, err
	}

	if _, err = secretmanager.NewSecretVersion(ctx, resourceName+"Version", &secretmanager.SecretVersionArgs{
		Secret:     s.ID(),
		SecretData: value,
	},
		pulumi.Provider(m.provider),
	); err != nil {
		return empty, err
	}

	if err = m.grantRead(ctx, resourceName, s); err != nil {
		return empty, err
	}
	return s.SecretId, nil
}

// grantRead binds secretAccessor on the single secret rather than the
// project.
func (m *Manager) grantRead(ctx *pulumi.Context, resourceName string, s *secretmanager.Secret) error {
	_, err := secretmanager.NewSecretIamMember(ctx, resourceName+"Accessor", &secretmanager.SecretIamMemberArgs{
		SecretId: s.SecretId,
		Role:     pulumi.String("roles/secretmanager.secretAccessor"),
		Member:   m.reader,
	},
		pulumi.Provider(m.provider),
	)
	return err
}
