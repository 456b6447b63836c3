// Package redis connects the optional shared cache used by the country
// source.
//
// Config is populated from the environment through pkg/config. Connect pings
// the server with a bounded number of retries, and Healthcheck adapts the
// client to the readiness probe of pkg/httpserver:
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	src = countries.RedisCached(src, client, "", cfg.Countries.TTL, log)
//
// Errors are sentinel values joined with the go-redis error, so callers use
// errors.Is.
package redis
