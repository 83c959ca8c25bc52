// Package history records successful encodings.
//
// A [Record] captures the input, output, format and statistics of one encoding.
// Records go to a [Store]:
//
//   - [Log]: bounded in-memory history, the default for a single process
//   - [FileStore]: JSON array file, rewritten on each append
//   - [PostgresStore]: encoding_history table, schema applied with [Migrate]
//   - [RedisStore]: capped list of JSON documents
//   - [Multi]: concurrent fan-out to several stores
//
// [Export] uploads a batch of records to object storage, and [WriteCSV] and
// [Rows] render them as a table.
package history
