package firestore

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/firestore"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// SetupFirestore enables Firestore, creates the database holding the warehouse
// export and the index the dashboard queries need.
func SetupFirestore(ctx *pulumi.Context, prov *gcp.Provider) error {
	svc, err := enableFireStore(ctx, prov)
	if err != nil {
		return err
	}

	db, err := createDatabase(ctx, prov, svc)
	if err != nil {
		return err
	}

	return createSalesWeatherIndex(ctx, prov, db)
}

func enableFireStore(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "firestore", &projects.ServiceArgs{
		Service: pulumi.String("firestore.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createDatabase(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*firestore.Database, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	return firestore.NewDatabase(ctx, "firestoreDatabase", &firestore.DatabaseArgs{
		Project:    pulumi.String(projectID),
		Name:       pulumi.String("(default)"),
		LocationId: pulumi.String(region),
		Type:       pulumi.String("FIRESTORE_NATIVE"),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

// The sales-weather queries filter city_name by equality or IN and date by range.
func createSalesWeatherIndex(ctx *pulumi.Context, prov *gcp.Provider, db *firestore.Database) error {
	whCfg := config.New(ctx, "warehouse")
	collection := whCfg.Get("salesWeatherCollection")
	if collection == "" {
		collection = "daily_sales_by_weather"
	}

	_, err := firestore.NewIndex(ctx, "salesWeatherCityDate", &firestore.IndexArgs{
		Database:   db.Name,
		Collection: pulumi.String(collection),
		Fields: firestore.IndexFieldArray{
			&firestore.IndexFieldArgs{FieldPath: pulumi.String("city_name"), Order: pulumi.String("ASCENDING")},
			&firestore.IndexFieldArgs{FieldPath: pulumi.String("date"), Order: pulumi.String("ASCENDING")},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{db}),
	)
	return err
}
