// Package mongo wraps the official driver with environment-driven
// configuration, a retried initial connect and a readiness probe.
//
//	client, db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Disconnect(context.Background())
//
// Collections themselves are owned by the stores that use them
// (account.MongoStore, auth.MongoSessions), which also create their indexes.
package mongo
