// Package redis provides the Redis-backed program store and the distributed session
// locker used when several replicas serve the same sessions.
package redis
