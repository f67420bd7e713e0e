// Package storage provides the key/value backends behind session persistence.
//
// # Backends
//
//   - [Memory]: process-local map, for tests and embedded use.
//   - [File]: one file per key under a directory; survives process restarts.
//   - [Redis]: go-redis client with a key prefix.
//   - [Postgres]: a single key/value table reached through lib/pq.
//   - [Noop]: reports [ErrUnavailable] for every call; used when no durable
//     medium exists (headless or sandboxed execution).
//
// # Error contract
//
// A missing key is [ErrNotFound]. Any failure to reach the medium wraps
// [ErrUnavailable]. Callers above this package treat both as "absent".
//
// # What this package must NOT do
//
//   - Interpret stored values.
//   - Import session or pentaauth.
package storage
