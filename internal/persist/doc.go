// Package persist provides msapi.RefreshTokenStore implementations backed by
// a local YAML file or a NATS JetStream key-value bucket.
package persist
