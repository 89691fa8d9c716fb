// utils/firebase.go
package utils

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FirebaseMessaging initializes the Firebase App from a service account file
// and returns its Messaging client. An empty path disables push delivery.
func FirebaseMessaging(ctx context.Context, credentialsFile string) (*messaging.Client, error) {
	if credentialsFile == "" {
		return nil, nil
	}
	opt := option.WithCredentialsFile(credentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}
	return client, nil
}
