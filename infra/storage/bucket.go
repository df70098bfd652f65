package storage

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/storage"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// SetupUploadBucket creates the bucket profile images are written to. Objects
// are readable by anyone since the widget loads them on third-party pages.
func SetupUploadBucket(ctx *pulumi.Context, prov *gcp.Provider) (*storage.Bucket, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	bucket, err := storage.NewBucket(ctx, "uploadBucket", &storage.BucketArgs{
		Name:                     pulumi.String(fmt.Sprintf("%s-widget-uploads", projectID)),
		Location:                 pulumi.String(region),
		UniformBucketLevelAccess: pulumi.Bool(true),
		Cors: storage.BucketCorArray{
			&storage.BucketCorArgs{
				Origins:         pulumi.StringArray{pulumi.String("*")},
				Methods:         pulumi.StringArray{pulumi.String("GET"), pulumi.String("HEAD")},
				MaxAgeSeconds:   pulumi.Int(3600),
				ResponseHeaders: pulumi.StringArray{pulumi.String("Content-Type")},
			},
		},
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	_, err = storage.NewBucketIAMMember(ctx, "uploadBucketPublicRead", &storage.BucketIAMMemberArgs{
		Bucket: bucket.Name,
		Role:   pulumi.String("roles/storage.objectViewer"),
		Member: pulumi.String("allUsers"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	return bucket, nil
}
