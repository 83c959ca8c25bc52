// Package api is the JSON surface of mnesd.
//
//	POST /api/encode           {"name": "...", "format": "short"} -> mnes.Result
//	GET  /api/formats          supported formats and the default
//	GET  /api/syllables        dictionary records, ?category= filters
//	GET  /api/stats            usage report, ?top= limits the ranking
//	GET  /api/history          recent encodings, ?limit= and ?as=csv
//	POST /api/history/export   queue an upload of history to object storage
//
// Errors are rendered by [ErrorHandler] as
//
//	{"error": {"code": "empty_input", "message": "...", "request_id": "..."}}
//
// Install it together with [NotFound] and [MethodNotAllowed] so every failure
// has the same shape.
package api
