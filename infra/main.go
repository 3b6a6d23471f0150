package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/sales-weather/infra/cloudrun"
	"github.com/GregMSThompson/sales-weather/infra/docker"
	"github.com/GregMSThompson/sales-weather/infra/firestore"
	"github.com/GregMSThompson/sales-weather/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// firestore backs the "firestore" warehouse source
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, repo)
		if err != nil {
			return err
		}

		return nil
	})
}
