package bootstrap

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Secret path
// projects/{project}/secrets/{secret}/versions/latest

func secretVersionName(projectID, secret string) string {
	if strings.HasPrefix(secret, "projects/") {
		return secret
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secret)
}

// AccessSecret reads a secret payload. secret is either a bare secret id or a
// full version resource name.
func AccessSecret(ctx context.Context, projectID, secret string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	name := secretVersionName(projectID, secret)
	res, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if status.Code(err) == codes.NotFound {
		return "", fmt.Errorf("secret %s not found", name)
	}
	if err != nil {
		return "", err
	}
	return string(res.Payload.Data), nil
}
