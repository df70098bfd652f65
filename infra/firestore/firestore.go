package firestore

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/firestore"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// SetupFirestore enables the API and creates the "(default)" database the
// widget store writes to.
func SetupFirestore(ctx *pulumi.Context, prov *gcp.Provider) error {
	svc, err := enableFirestore(ctx, prov)
	if err != nil {
		return err
	}

	db, err := createDatabase(ctx, prov, svc)
	if err != nil {
		return err
	}

	ctx.Export("firestoreDatabase", db.Name)
	return nil
}

func enableFirestore(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "firestore", &projects.ServiceArgs{
		Service:          pulumi.String("firestore.googleapis.com"),
		DisableOnDestroy: pulumi.Bool(false),
	},
		pulumi.Provider(prov),
	)
}

func createDatabase(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*firestore.Database, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	return firestore.NewDatabase(ctx, "firestoreDatabase", &firestore.DatabaseArgs{
		Name:                  pulumi.String("(default)"),
		Project:               pulumi.String(projectID),
		LocationId:            pulumi.String(region),
		Type:                  pulumi.String("FIRESTORE_NATIVE"),
		ConcurrencyMode:       pulumi.String("OPTIMISTIC"),
		DeleteProtectionState: pulumi.String("DELETE_PROTECTION_ENABLED"),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}
