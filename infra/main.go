package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/chat-widget/infra/cloudrun"
	"github.com/GregMSThompson/chat-widget/infra/docker"
	"github.com/GregMSThompson/chat-widget/infra/firestore"
	"github.com/GregMSThompson/chat-widget/infra/provider"
	"github.com/GregMSThompson/chat-widget/infra/storage"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable firestore and create a database for the widget documents
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// public bucket for uploaded profile images
		bucket, err := storage.SetupUploadBucket(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		svc, err := cloudrun.SetupCloudRun(ctx, prov, bucket, repo)
		if err != nil {
			return err
		}

		ctx.Export("uploadBucket", bucket.Name)
		ctx.Export("serviceUrl", svc.Statuses.Index(pulumi.Int(0)).Url())
		return nil
	})
}
