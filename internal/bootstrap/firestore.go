package bootstrap

import (
	"context"

	"cloud.google.com/go/firestore"
)

// InitFirestore honours FIRESTORE_EMULATOR_HOST through the client library.
func InitFirestore(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	return firestore.NewClient(ctx, projectID)
}
