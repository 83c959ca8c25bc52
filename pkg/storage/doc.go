// Package storage uploads documents to S3-compatible object storage.
//
//	st, err := storage.New(storage.Config{
//		Bucket:    "mnes-exports",
//		AccessKey: os.Getenv("S3_ACCESS_KEY"),
//		SecretKey: os.Getenv("S3_SECRET_KEY"),
//		Endpoint:  "http://localhost:9000",
//		PathStyle: true,
//	})
//
//	info, err := st.Put(ctx, bytes.NewReader(data), int64(len(data)),
//		storage.WithPrefix("exports"),
//		storage.WithContentType(storage.ContentTypeJSON),
//	)
//	// info.Key == "exports/01J...XYZ.json"
//
// Keys default to a ULID plus an extension derived from the content type.
// Errors wrap the package sentinels (ErrNotFound, ErrAccessDenied, ...) and
// are matched with errors.Is.
package storage
